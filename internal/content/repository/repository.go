package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"modtok/platform/apperr"
)

const entryNotFoundMessage = "content entry not found"

const entryColumns = `id, kind, slug, title, summary, body_markdown, status, published_at, created_at, updated_at`

// Repo implements the content repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new content repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// CreateEntry inserts a content entry.
func (r *Repo) CreateEntry(ctx context.Context, params CreateEntryParams) (Entry, error) {
	query := `
		INSERT INTO content_entries (kind, slug, title, summary, body_markdown, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + entryColumns

	row := r.pool.QueryRow(ctx, query,
		params.Kind, params.Slug, params.Title, params.Summary, params.BodyMarkdown,
		params.Status, params.PublishedAt,
	)
	entry, err := scanEntry(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Entry{}, apperr.Conflict("slug already in use")
		}
		return Entry{}, fmt.Errorf("create content entry: %w", err)
	}
	return entry, nil
}

// UpdateEntry applies a partial update.
func (r *Repo) UpdateEntry(ctx context.Context, params UpdateEntryParams) (Entry, error) {
	query := `
		UPDATE content_entries
		SET slug = COALESCE($3, slug),
			title = COALESCE($4, title),
			summary = COALESCE($5, summary),
			body_markdown = COALESCE($6, body_markdown),
			status = COALESCE($7, status),
			published_at = COALESCE($8, published_at),
			updated_at = now()
		WHERE id = $1 AND kind = $2
		RETURNING ` + entryColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Kind, params.Slug, params.Title, params.Summary,
		params.BodyMarkdown, params.Status, params.PublishedAt,
	)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFound(entryNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Entry{}, apperr.Conflict("slug already in use")
		}
		return Entry{}, fmt.Errorf("update content entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes a content entry.
func (r *Repo) DeleteEntry(ctx context.Context, kind EntryKind, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM content_entries WHERE id = $1 AND kind = $2`, id, kind)
	if err != nil {
		return fmt.Errorf("delete content entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(entryNotFoundMessage)
	}
	return nil
}

// GetEntryByID retrieves one entry.
func (r *Repo) GetEntryByID(ctx context.Context, kind EntryKind, id uuid.UUID) (Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM content_entries WHERE id = $1 AND kind = $2`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFound(entryNotFoundMessage)
		}
		return Entry{}, fmt.Errorf("get content entry by id: %w", err)
	}
	return entry, nil
}

// GetEntryBySlug retrieves one entry by slug.
func (r *Repo) GetEntryBySlug(ctx context.Context, kind EntryKind, slug string, publishedOnly bool) (Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM content_entries WHERE slug = $1 AND kind = $2`
	if publishedOnly {
		query += ` AND status = 'published'`
	}

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, slug, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFound(entryNotFoundMessage)
		}
		return Entry{}, fmt.Errorf("get content entry by slug: %w", err)
	}
	return entry, nil
}

// ListEntries lists entries of one kind with pagination, newest first.
func (r *Repo) ListEntries(ctx context.Context, params ListEntriesParams) ([]Entry, int, error) {
	whereClauses := []string{"kind = $1"}
	args := []interface{}{params.Kind}
	argIdx := 2

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.PublishedOnly {
		whereClauses = append(whereClauses, "status = 'published'")
	}

	whereClause := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM content_entries WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content entries: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM content_entries
		WHERE %s
		ORDER BY COALESCE(published_at, created_at) DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, entryColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list content entries: %w", err)
	}
	defer rows.Close()

	items := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan content entry: %w", err)
		}
		items = append(items, entry)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate content entries: %w", rows.Err())
	}

	return items, total, nil
}

// ListPublishedForFeeds returns published blog and news entries for feeds.
func (r *Repo) ListPublishedForFeeds(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM content_entries
		WHERE kind IN ('blog', 'news') AND status = 'published'
		ORDER BY COALESCE(published_at, created_at) DESC, id DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list feed entries: %w", err)
	}
	defer rows.Close()

	items := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed entry: %w", err)
		}
		items = append(items, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate feed entries: %w", rows.Err())
	}
	return items, nil
}

// CreateContactSubmission stores a public contact form message.
func (r *Repo) CreateContactSubmission(ctx context.Context, name, email, message string) (ContactSubmission, error) {
	query := `
		INSERT INTO contact_submissions (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, message, created_at`

	var submission ContactSubmission
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, query, name, email, message).Scan(
		&submission.ID, &submission.Name, &submission.Email, &submission.Message, &createdAt,
	)
	if err != nil {
		return ContactSubmission{}, fmt.Errorf("create contact submission: %w", err)
	}
	submission.CreatedAt = createdAt.Format(time.RFC3339)
	return submission, nil
}

// ListContactSubmissions lists stored messages, newest first.
func (r *Repo) ListContactSubmissions(ctx context.Context, offset, limit int) ([]ContactSubmission, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact submissions: %w", err)
	}

	query := `
		SELECT id, name, email, message, created_at
		FROM contact_submissions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	items := make([]ContactSubmission, 0)
	for rows.Next() {
		var submission ContactSubmission
		var createdAt time.Time
		if err := rows.Scan(&submission.ID, &submission.Name, &submission.Email, &submission.Message, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scan contact submission: %w", err)
		}
		submission.CreatedAt = createdAt.Format(time.RFC3339)
		items = append(items, submission)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate contact submissions: %w", rows.Err())
	}
	return items, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&entry.ID, &entry.Kind, &entry.Slug, &entry.Title, &entry.Summary,
		&entry.BodyMarkdown, &entry.Status, &entry.PublishedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	entry.CreatedAt = createdAt.Format(time.RFC3339)
	entry.UpdatedAt = updatedAt.Format(time.RFC3339)
	return entry, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
