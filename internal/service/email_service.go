package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"smartmail/internal/cache"
	"smartmail/internal/model"
)

// EmailStore is the message store contract the services depend on.
// *repository.EmailRepository satisfies it.
type EmailStore interface {
	FindByView(ctx context.Context, view string) ([]model.Email, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Email, error)
	Insert(ctx context.Context, e *model.Email) (int64, error)
	InsertIngested(ctx context.Context, e *model.Email) (int64, bool, error)
	SetStarred(ctx context.Context, id int64, value bool) error
	MoveToBin(ctx context.Context, ids []int64) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// ValidationError reports a save request with missing required fields.
// It surfaces to the caller as a client error and is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SaveRequest carries the caller-supplied fields of a save operation.
type SaveRequest struct {
	To      string    `json:"to"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Date    time.Time `json:"date"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
}

// EmailService serves the store-backed read views and the write
// operations, invalidating the affected cache keys on every write.
type EmailService struct {
	repo   EmailStore
	ingest *IngestService
	cache  *cache.Cache
	logger *zap.Logger
}

func NewEmailService(repo EmailStore, ingest *IngestService, c *cache.Cache, logger *zap.Logger) *EmailService {
	return &EmailService{
		repo:   repo,
		ingest: ingest,
		cache:  c,
		logger: logger,
	}
}

// GetEmails returns the emails for one read view. The inbox view first
// loads what the store already holds, then runs an ingestion cycle and
// appends whatever it persisted.
func (s *EmailService) GetEmails(ctx context.Context, view string) ([]model.Email, error) {
	if view != model.TypeInbox {
		return s.repo.FindByView(ctx, view)
	}

	existing, err := s.repo.FindByView(ctx, model.TypeInbox)
	if err != nil {
		return nil, err
	}

	fresh, err := s.ingest.IngestUnseen(ctx)
	if err != nil {
		return nil, err
	}

	return append(existing, fresh...), nil
}

// Save validates and persists a caller-supplied email record, then
// invalidates the views its type can stale.
func (s *EmailService) Save(ctx context.Context, req *SaveRequest) error {
	if req.Name == "" || req.Date.IsZero() || req.From == "" || req.To == "" || req.Type == "" || req.Subject == "" {
		return &ValidationError{Message: "Missing required fields"}
	}

	email := model.Email{
		To:      req.To,
		From:    req.From,
		Subject: req.Subject,
		Body:    req.Body,
		Date:    req.Date,
		Name:    req.Name,
		Type:    req.Type,
	}

	if _, err := s.repo.Insert(ctx, &email); err != nil {
		return err
	}

	if req.Type == model.TypeSent {
		s.cache.Invalidate(ctx, cache.WriteSaveSent)
	} else {
		s.cache.Invalidate(ctx, cache.WriteSaveOther)
	}
	return nil
}

// ToggleStarred sets the starred flag on one email. A missing id is a
// silent no-op, matching the bulk filter semantics of the store.
func (s *EmailService) ToggleStarred(ctx context.Context, id int64, value bool) error {
	if err := s.repo.SetStarred(ctx, id, value); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.WriteStarToggle)
	return nil
}

// Delete removes the given emails permanently. Delete can affect any
// view, so every view key is invalidated.
func (s *EmailService) Delete(ctx context.Context, ids []int64) error {
	if err := s.repo.DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.WriteBulkDelete)
	return nil
}

// MoveToBin soft-deletes the given emails: bin=true, starred=false,
// type cleared.
func (s *EmailService) MoveToBin(ctx context.Context, ids []int64) error {
	if err := s.repo.MoveToBin(ctx, ids); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.WriteMoveToBin)
	return nil
}
