// Package firestore implements the habit repository on Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

const habitsCollection = "habits"

// DB wraps a Firestore client.
type DB struct {
	client *firestore.Client
}

// Open creates a Firestore client for projectID. FIRESTORE_EMULATOR_HOST is
// honoured by the client library.
func Open(ctx context.Context, projectID string) (*DB, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &DB{client: client}, nil
}

// Close closes the client.
func (d *DB) Close() error {
	return d.client.Close()
}
