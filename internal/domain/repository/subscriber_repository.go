// internal/domain/repository/subscriber_repository.go
package repository

import (
	"context"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
)

// SubscriberRepository defines the interface for subscriber access
type SubscriberRepository interface {
	// Store saves a subscriber, replacing any existing entry for the chat
	Store(ctx context.Context, sub *entity.Subscriber) error

	// FindByChatID retrieves a subscriber by chat ID
	FindByChatID(ctx context.Context, chatID int64) (*entity.Subscriber, error)

	// List returns all subscribers
	List(ctx context.Context) ([]*entity.Subscriber, error)

	// Delete removes a subscriber
	Delete(ctx context.Context, chatID int64) error
}
