package domain

import "context"

// Quote is a motivational quote shown next to the statistics.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// QuoteSource is the port for an external quote provider.
type QuoteSource interface {
	RandomQuote(ctx context.Context) (Quote, error)
}
