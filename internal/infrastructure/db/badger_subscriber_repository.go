// internal/infrastructure/db/badger_subscriber_repository.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
)

const subscriberPrefix = "sub:"

// BadgerSubscriberRepository implements the subscriber repository interface
// using BadgerDB
type BadgerSubscriberRepository struct {
	db *badger.DB
}

// NewBadgerSubscriberRepository creates a new BadgerDB subscriber repository
func NewBadgerSubscriberRepository(db *badger.DB) *BadgerSubscriberRepository {
	return &BadgerSubscriberRepository{db: db}
}

func subscriberKey(chatID int64) []byte {
	return []byte(subscriberPrefix + strconv.FormatInt(chatID, 10))
}

// Store saves a subscriber, replacing any existing entry for the chat
func (r *BadgerSubscriberRepository) Store(ctx context.Context, sub *entity.Subscriber) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal subscriber: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(subscriberKey(sub.ChatID), data)
	})

	if err != nil {
		return fmt.Errorf("failed to store subscriber: %w", err)
	}

	return nil
}

// FindByChatID retrieves a subscriber by chat ID
func (r *BadgerSubscriberRepository) FindByChatID(ctx context.Context, chatID int64) (*entity.Subscriber, error) {
	var sub entity.Subscriber

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(subscriberKey(chatID))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sub)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("subscriber not found: %d", chatID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve subscriber: %w", err)
	}

	return &sub, nil
}

// List returns all subscribers
func (r *BadgerSubscriberRepository) List(ctx context.Context) ([]*entity.Subscriber, error) {
	var subs []*entity.Subscriber

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(subscriberPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var sub entity.Subscriber
				if err := json.Unmarshal(val, &sub); err != nil {
					return err
				}
				subs = append(subs, &sub)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	return subs, nil
}

// Delete removes a subscriber
func (r *BadgerSubscriberRepository) Delete(ctx context.Context, chatID int64) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(subscriberKey(chatID))
	})

	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}

	return nil
}
