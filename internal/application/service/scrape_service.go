// internal/application/service/scrape_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/damon-houk/superrich-rate-tracker/internal/domain/repository"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/api"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/cache"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/logger"
	"github.com/google/uuid"
)

// CredentialSource defines an interface for discovering the upstream API
// credential
type CredentialSource interface {
	Extract(ctx context.Context) (entity.Credential, error)
}

// RateSource defines an interface for providers of rate quotation data
type RateSource interface {
	FetchRates(ctx context.Context, cred entity.Credential) (map[string]entity.RateRecord, error)
}

// ScrapeService orchestrates credential extraction, rate fetching and
// snapshot persistence for one scrape run
type ScrapeService struct {
	creds  CredentialSource
	rates  RateSource
	store  repository.SnapshotRepository
	cache  *cache.LatestEntryCache
	logger logger.Logger

	maxAttempts int
	backoffBase time.Duration
}

// NewScrapeService creates a new scrape pipeline service
func NewScrapeService(creds CredentialSource, rates RateSource, store repository.SnapshotRepository, latestCache *cache.LatestEntryCache, log logger.Logger) *ScrapeService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ScrapeService{
		creds:       creds,
		rates:       rates,
		store:       store,
		cache:       latestCache,
		logger:      log,
		maxAttempts: 3,
		backoffBase: time.Second,
	}
}

// RunScrapeOnce executes one full scrape: extract the credential, fetch the
// quotation and write today's snapshot. Transient failures are retried with
// exponential backoff; an upstream auth rejection triggers exactly one
// credential re-extraction; shape changes abort the run. The store is never
// mutated unless the whole run succeeds.
func (s *ScrapeService) RunScrapeOnce(ctx context.Context) (*entity.Snapshot, error) {
	runID := uuid.New().String()
	log := s.logger.WithField("run_id", runID)

	log.Info("Starting scrape run", nil)

	cred, err := s.extractCredential(ctx, log)
	if err != nil {
		return nil, err
	}

	rates, err := s.fetchRates(ctx, log, cred)
	if err != nil {
		return nil, err
	}

	snapshot := &entity.Snapshot{
		Timestamp: time.Now(),
		Rates:     rates,
	}

	if err := s.store.Write(ctx, snapshot); err != nil {
		log.Error("Failed to persist snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if s.cache != nil {
		s.cache.Clear()
	}

	log.Info("Scrape run completed", map[string]interface{}{
		"currencies": len(rates),
	})

	return snapshot, nil
}

// extractCredential discovers the credential, retrying transient fetch
// failures. A missing or malformed credential literal is fatal to the run;
// retrying without a site change cannot succeed.
func (s *ScrapeService) extractCredential(ctx context.Context, log logger.Logger) (entity.Credential, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		cred, err := s.creds.Extract(ctx)
		if err == nil {
			log.Debug("Credential extracted", map[string]interface{}{
				"username": cred.Username,
			})
			return cred, nil
		}

		lastErr = err
		if !api.IsRetryable(err) {
			log.Error("Credential extraction failed", map[string]interface{}{
				"error": err.Error(),
			})
			return entity.Credential{}, fmt.Errorf("credential extraction failed: %w", err)
		}

		log.Warn("Credential fetch failed, retrying", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
		if attempt < s.maxAttempts {
			s.wait(ctx, attempt)
		}
	}

	return entity.Credential{}, fmt.Errorf("credential extraction failed after %d attempts: %w", s.maxAttempts, lastErr)
}

// fetchRates pulls the quotation, retrying transient failures and
// refreshing the credential once if the upstream rejects it.
func (s *ScrapeService) fetchRates(ctx context.Context, log logger.Logger, cred entity.Credential) (map[string]entity.RateRecord, error) {
	refreshed := false
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		rates, err := s.rates.FetchRates(ctx, cred)
		if err == nil {
			return rates, nil
		}

		lastErr = err
		switch {
		case api.IsAuthFailure(err):
			if refreshed {
				log.Error("Upstream rejected a freshly extracted credential", map[string]interface{}{
					"error": err.Error(),
				})
				return nil, fmt.Errorf("credential refresh did not help: %w", err)
			}

			log.Warn("Credential rejected, re-running extraction", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})

			fresh, extractErr := s.extractCredential(ctx, log)
			if extractErr != nil {
				return nil, extractErr
			}
			cred = fresh
			refreshed = true

		case api.IsRetryable(err):
			log.Warn("Rate fetch failed, retrying", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			if attempt < s.maxAttempts {
				s.wait(ctx, attempt)
			}

		default:
			log.Error("Rate fetch failed", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, fmt.Errorf("rate fetch failed: %w", err)
		}
	}

	return nil, fmt.Errorf("rate fetch failed after %d attempts: %w", s.maxAttempts, lastErr)
}

// backoffFor returns the delay before the next attempt, doubling per
// attempt from the base
func (s *ScrapeService) backoffFor(attempt int) time.Duration {
	return time.Duration(1<<attempt) * s.backoffBase
}

// wait sleeps with exponential backoff, bailing out early if the caller
// abandoned the run
func (s *ScrapeService) wait(ctx context.Context, attempt int) {
	select {
	case <-ctx.Done():
	case <-time.After(s.backoffFor(attempt)):
	}
}
