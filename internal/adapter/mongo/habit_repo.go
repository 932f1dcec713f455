package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"habitme/internal/domain"
)

var _ domain.HabitRepository = (*DB)(nil)

type habitDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Completed        bool               `bson:"completed"`
	DailyCompletions map[string]bool    `bson:"dailyCompletions"`
	Reminder         reminderDoc        `bson:"reminder"`
	CreatedAt        time.Time          `bson:"createdAt"`
}

type reminderDoc struct {
	Enabled bool     `bson:"enabled"`
	Time    string   `bson:"time"`
	Days    []string `bson:"days"`
}

func toReminderDoc(r domain.Reminder) reminderDoc {
	doc := reminderDoc{Enabled: r.Enabled, Time: r.Time}
	if r.Days != nil {
		doc.Days = make([]string, 0, len(r.Days))
		for _, d := range r.Days {
			doc.Days = append(doc.Days, string(d))
		}
	}
	return doc
}

// toDomain keeps a missing dailyCompletions field as a nil ledger.
func (d habitDoc) toDomain() *domain.Habit {
	h := &domain.Habit{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Completed:        d.Completed,
		DailyCompletions: d.DailyCompletions,
		Reminder:         domain.Reminder{Enabled: d.Reminder.Enabled, Time: d.Reminder.Time},
		CreatedAt:        d.CreatedAt.UTC(),
	}
	if d.Reminder.Days != nil {
		h.Reminder.Days = make([]domain.Weekday, 0, len(d.Reminder.Days))
		for _, day := range d.Reminder.Days {
			h.Reminder.Days = append(h.Reminder.Days, domain.Weekday(day))
		}
	}
	return h
}

// objectID parses a habit id. Malformed ids cannot name a stored habit.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

// CreateHabit inserts a new habit with an empty ledger.
func (d *DB) CreateHabit(ctx context.Context, title string, reminder domain.Reminder, createdAt time.Time) (*domain.Habit, error) {
	doc := habitDoc{
		ID:               primitive.NewObjectID(),
		Title:            title,
		DailyCompletions: map[string]bool{},
		Reminder:         toReminderDoc(reminder),
		CreatedAt:        createdAt.UTC(),
	}
	if _, err := d.habits.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListHabits returns all habits in insertion order.
func (d *DB) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	cur, err := d.habits.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx) //nolint:errcheck

	out := make([]domain.Habit, 0)
	for cur.Next(ctx) {
		var doc habitDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *doc.toDomain())
	}
	return out, cur.Err()
}

// GetHabit returns a habit by id.
func (d *DB) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc habitDoc
	if err := d.habits.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toDomain(), nil
}

// UpdateHabit overwrites the title and/or reminder fields.
func (d *DB) UpdateHabit(ctx context.Context, id string, upd domain.HabitUpdate) (*domain.Habit, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Reminder != nil {
		set["reminder"] = toReminderDoc(*upd.Reminder)
	}
	if len(set) == 0 {
		return d.GetHabit(ctx, id)
	}

	var doc habitDoc
	err = d.habits.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	return doc.toDomain(), nil
}

// SetDayCompletion writes one ledger entry and recomputes completed in a
// single pipeline update so concurrent writers to other days are kept.
func (d *DB) SetDayCompletion(ctx context.Context, id string, day string, done bool) (*domain.Habit, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"dailyCompletions": bson.M{"$setField": bson.M{
				"field": day,
				"input": bson.M{"$ifNull": bson.A{"$dailyCompletions", bson.M{}}},
				"value": done,
			}},
		}}},
		{{Key: "$set", Value: bson.M{
			"completed": bson.M{"$anyElementTrue": bson.A{
				bson.M{"$map": bson.M{
					"input": bson.M{"$objectToArray": "$dailyCompletions"},
					"as":    "e",
					"in":    "$$e.v",
				}},
			}},
		}}},
	}

	var doc habitDoc
	err = d.habits.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	return doc.toDomain(), nil
}

// DeleteHabit removes a habit. Unknown or malformed ids are ignored.
func (d *DB) DeleteHabit(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return nil
	}
	_, err = d.habits.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
