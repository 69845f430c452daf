package entity

import (
	"errors"
	"time"
)

// Subscriber represents a chat subscribed to the daily rate delivery.
// An empty Currencies list means the delivery defaults apply.
type Subscriber struct {
	ChatID       int64     `json:"chat_id"`
	Currencies   []string  `json:"currencies,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Validate ensures the subscriber meets all requirements
func (s *Subscriber) Validate() error {
	if s.ChatID == 0 {
		return errors.New("chat id must be set")
	}

	for _, c := range s.Currencies {
		if len(c) != 3 {
			return errors.New("currency codes must be 3 characters")
		}
	}

	return nil
}
