package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"smartmail/internal/mailbox"
	"smartmail/internal/model"
	"smartmail/internal/mq"
	"smartmail/pkg/metrics"
)

// Fetcher performs one full mailbox fetch cycle.
type Fetcher interface {
	FetchUnseen(ctx context.Context) ([]mailbox.RawMessage, error)
}

// Publisher emits events to the message broker.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// IngestService runs ingestion cycles: fetch unseen mail, parse it,
// and persist whatever the store has not seen before.
type IngestService struct {
	repo     EmailStore
	fetcher  Fetcher
	producer Publisher // optional, nil disables events
	account  string
	logger   *zap.Logger
}

func NewIngestService(repo EmailStore, fetcher Fetcher, producer Publisher, account string, logger *zap.Logger) *IngestService {
	return &IngestService{
		repo:     repo,
		fetcher:  fetcher,
		producer: producer,
		account:  account,
		logger:   logger,
	}
}

// IngestUnseen runs one ingestion cycle and returns only the newly
// persisted records. Mailbox connection and protocol failures are
// contained: the cycle logs them and returns an empty set, and the next
// inbox read retries from scratch. A malformed message is skipped
// without aborting the rest of the batch. Dedup is a single conditional
// insert keyed on (from, subject, date), so re-running the cycle against
// the same unseen set persists each message at most once.
func (s *IngestService) IngestUnseen(ctx context.Context) ([]model.Email, error) {
	start := time.Now()
	defer func() {
		metrics.RecordIngestCycleDuration(time.Since(start))
	}()

	raws, err := s.fetcher.FetchUnseen(ctx)
	if err != nil {
		s.logger.Warn("Mailbox fetch failed, skipping ingestion cycle", zap.Error(err))
		return []model.Email{}, nil
	}

	newEmails := []model.Email{}
	for _, raw := range raws {
		parsed, err := mailbox.Parse(raw.Raw)
		if err != nil {
			s.logger.Warn("Skipping unparseable message",
				zap.Uint32("uid", uint32(raw.UID)),
				zap.Error(err),
			)
			metrics.IncrementEmailsIngested("parse_error")
			continue
		}

		date := parsed.Date
		if date.IsZero() {
			date = time.Now()
		}

		email := model.Email{
			To:      s.account,
			From:    parsed.From,
			Subject: parsed.Subject,
			Body:    parsed.Body,
			Date:    date,
			Name:    model.IngestedName,
			Starred: false,
			Bin:     false,
			Type:    model.TypeInbox,
		}

		id, inserted, err := s.repo.InsertIngested(ctx, &email)
		if err != nil {
			metrics.IncrementEmailsIngested("store_error")
			return newEmails, err
		}
		if !inserted {
			metrics.IncrementEmailsIngested("duplicate")
			continue
		}

		email.ID = id
		newEmails = append(newEmails, email)
		metrics.IncrementEmailsIngested("persisted")

		s.publishIngested(&email)
	}

	s.logger.Info("Ingestion cycle finished",
		zap.Int("fetched", len(raws)),
		zap.Int("persisted", len(newEmails)),
	)

	return newEmails, nil
}

// publishIngested emits an email.ingested event. Publish failures are
// logged and dropped; events never fail ingestion.
func (s *IngestService) publishIngested(e *model.Email) {
	if s.producer == nil {
		return
	}

	payload := mq.EmailIngestedPayload{
		EmailID:    e.ID,
		From:       e.From,
		Subject:    e.Subject,
		Date:       e.Date,
		IngestedAt: time.Now(),
	}

	if err := s.producer.Publish("email.ingested", payload); err != nil {
		s.logger.Warn("Failed to publish email.ingested event",
			zap.Int64("email_id", e.ID),
			zap.Error(err),
		)
	}
}
