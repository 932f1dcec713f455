package app

import (
	"context"

	"go.uber.org/zap"

	"habitme/internal/domain"
)

// FallbackQuote is served when the quote source is unavailable.
var FallbackQuote = domain.Quote{
	Content: "Small steps lead to big changes. You're doing great!",
	Author:  "HabitMe",
}

// QuoteService serves motivational quotes.
type QuoteService struct {
	src domain.QuoteSource
	log *zap.Logger
}

// NewQuoteService creates a QuoteService. A nil src always yields the
// fallback quote.
func NewQuoteService(src domain.QuoteSource, log *zap.Logger) *QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuoteService{src: src, log: log}
}

// Random returns a quote from the source, or FallbackQuote if the source
// fails or returns an empty quote. It never returns an error.
func (s *QuoteService) Random(ctx context.Context) domain.Quote {
	if s.src == nil {
		return FallbackQuote
	}
	q, err := s.src.RandomQuote(ctx)
	if err != nil {
		s.log.Warn("quote source unavailable, using fallback", zap.Error(err))
		return FallbackQuote
	}
	if q.Content == "" {
		return FallbackQuote
	}
	return q
}
