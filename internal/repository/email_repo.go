package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartmail/internal/model"
)

type EmailRepository struct {
	db *pgxpool.Pool
}

func NewEmailRepository(db *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{db: db}
}

const emailColumns = `id, to_addr, from_addr, subject, body, date, name, starred, bin, type`

// FindByView returns the emails backing one read view.
// Views: inbox (inbox type, not binned), starred (starred, not binned),
// bin (binned), allmail (everything), anything else filters on type directly.
func (r *EmailRepository) FindByView(ctx context.Context, view string) ([]model.Email, error) {
	var (
		query string
		args  []any
	)

	switch view {
	case "starred":
		query = `SELECT ` + emailColumns + ` FROM emails WHERE starred = TRUE AND bin = FALSE ORDER BY date DESC`
	case "bin":
		query = `SELECT ` + emailColumns + ` FROM emails WHERE bin = TRUE ORDER BY date DESC`
	case "allmail":
		query = `SELECT ` + emailColumns + ` FROM emails ORDER BY date DESC`
	case "inbox":
		query = `SELECT ` + emailColumns + ` FROM emails WHERE type = 'inbox' AND bin = FALSE ORDER BY date DESC`
	default:
		query = `SELECT ` + emailColumns + ` FROM emails WHERE type = $1 ORDER BY date DESC`
		args = append(args, view)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmails(rows)
}

// FindByIDs returns the emails matching the given id set. Unknown ids are skipped.
func (r *EmailRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = ANY($1) ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmails(rows)
}

// Insert persists an email and returns the store-assigned id.
func (r *EmailRepository) Insert(ctx context.Context, e *model.Email) (int64, error) {
	query := `
        INSERT INTO emails (to_addr, from_addr, subject, body, date, name, starred, bin, type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		e.To, e.From, e.Subject, e.Body, e.Date, e.Name, e.Starred, e.Bin, e.Type,
	).Scan(&id)
	return id, err
}

// InsertIngested persists an ingested email unless a record with the same
// (from_addr, subject, date) triple already sits in the inbox. It reports
// whether a new row was written. A single conditional insert, so concurrent
// ingestion cycles cannot double-persist the same message.
func (r *EmailRepository) InsertIngested(ctx context.Context, e *model.Email) (int64, bool, error) {
	query := `
        INSERT INTO emails (to_addr, from_addr, subject, body, date, name, starred, bin, type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (from_addr, subject, date) WHERE type = 'inbox' DO NOTHING
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		e.To, e.From, e.Subject, e.Body, e.Date, e.Name, e.Starred, e.Bin, e.Type,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// SetStarred flips the starred flag on one email. A missing id is a no-op.
func (r *EmailRepository) SetStarred(ctx context.Context, id int64, value bool) error {
	query := `
        UPDATE emails
        SET starred = $1
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, value, id)
	return err
}

// MoveToBin soft-deletes the given emails: bin set, star cleared, type cleared.
func (r *EmailRepository) MoveToBin(ctx context.Context, ids []int64) error {
	query := `
        UPDATE emails
        SET bin = TRUE, starred = FALSE, type = ''
        WHERE id = ANY($1)
    `
	_, err := r.db.Exec(ctx, query, ids)
	return err
}

// DeleteByIDs removes the given emails permanently. Missing ids are no-ops.
func (r *EmailRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	query := `
        DELETE FROM emails
        WHERE id = ANY($1)
    `
	_, err := r.db.Exec(ctx, query, ids)
	return err
}

func scanEmails(rows pgx.Rows) ([]model.Email, error) {
	emails := []model.Email{}

	for rows.Next() {
		var e model.Email
		err := rows.Scan(
			&e.ID,
			&e.To,
			&e.From,
			&e.Subject,
			&e.Body,
			&e.Date,
			&e.Name,
			&e.Starred,
			&e.Bin,
			&e.Type,
		)
		if err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}

	return emails, rows.Err()
}
