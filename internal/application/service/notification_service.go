// internal/application/service/notification_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/repository"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/logger"
)

// MessageSender defines an interface for delivering a text message to a chat
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// NotificationService delivers the daily rate summary to every subscriber
type NotificationService struct {
	subscribers       repository.SubscriberRepository
	rates             *RatesService
	sender            MessageSender
	defaultCurrencies []string
	logger            logger.Logger
}

// NewNotificationService creates a new daily notification service
func NewNotificationService(subscribers repository.SubscriberRepository, rates *RatesService, sender MessageSender, defaultCurrencies []string, log logger.Logger) *NotificationService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &NotificationService{
		subscribers:       subscribers,
		rates:             rates,
		sender:            sender,
		defaultCurrencies: defaultCurrencies,
		logger:            log,
	}
}

// SendDailyRates sends the latest rates to all subscribers. Per-subscriber
// delivery failures are logged and skipped; there is no user context to
// surface them to.
func (s *NotificationService) SendDailyRates(ctx context.Context) error {
	subs, err := s.subscribers.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list subscribers", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	if len(subs) == 0 {
		s.logger.Info("No subscribers for daily rates", nil)
		return nil
	}

	sent := 0
	for _, sub := range subs {
		currencies := sub.Currencies
		if len(currencies) == 0 {
			currencies = s.defaultCurrencies
		}

		latest, err := s.rates.GetLatestWithTrend(ctx, currencies)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				s.logger.Warn("No rate data for daily delivery, skipping", nil)
				return nil
			}
			return err
		}

		message := FormatRatesMessage(latest)
		if err := s.sender.SendMessage(ctx, sub.ChatID, message); err != nil {
			s.logger.Error("Failed to deliver daily rates", map[string]interface{}{
				"chat_id": sub.ChatID,
				"error":   err.Error(),
			})
			continue
		}
		sent++
	}

	s.logger.Info("Daily rates delivered", map[string]interface{}{
		"subscribers": len(subs),
		"sent":        sent,
	})

	return nil
}

// FormatRatesMessage renders the latest rates as an HTML chat message.
// Currencies without a stored record render as N/A.
func FormatRatesMessage(latest *LatestRates) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📅 Latest rates as of <b>%s</b>:\n", latest.Date)

	for _, quote := range latest.Quotes {
		b.WriteString("\n")
		if quote.Rate == nil {
			fmt.Fprintf(&b, "<b>%s</b>\n  Buying: N/A\n  Selling: N/A\n", quote.Code)
			continue
		}

		fmt.Fprintf(&b, "<b>%s (%s)</b>\n", quote.Code, quote.Rate.CountryName)

		if arrow := quote.BuyTrend.Arrow(); arrow != "" {
			fmt.Fprintf(&b, "  Buying: %.4g %s\n", quote.Rate.BuyingRate, arrow)
		} else {
			fmt.Fprintf(&b, "  Buying: %.4g\n", quote.Rate.BuyingRate)
		}
		fmt.Fprintf(&b, "  Selling: %.4g\n", quote.Rate.SellingRate)
	}

	return b.String()
}
