package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"modtok/platform/apperr"
)

// EntryKind identifies which editorial collection an entry belongs to.
type EntryKind string

const (
	KindBlog EntryKind = "blog"
	KindNews EntryKind = "news"
	KindPage EntryKind = "page"
	KindFAQ  EntryKind = "faq"
)

// ParseEntryKind validates a raw entry kind string.
func ParseEntryKind(raw string) (EntryKind, error) {
	switch EntryKind(raw) {
	case KindBlog, KindNews, KindPage, KindFAQ:
		return EntryKind(raw), nil
	default:
		return "", apperr.Validation("unknown content kind: " + raw)
	}
}

// Entry is one editorial content row. For FAQs the title holds the
// question and the markdown body the answer.
type Entry struct {
	ID           uuid.UUID
	Kind         EntryKind
	Slug         string
	Title        string
	Summary      *string
	BodyMarkdown string
	Status       string
	PublishedAt  *time.Time
	CreatedAt    string
	UpdatedAt    string
}

// ContactSubmission is a stored public contact form message.
type ContactSubmission struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt string
}

type CreateEntryParams struct {
	Kind         EntryKind
	Slug         string
	Title        string
	Summary      *string
	BodyMarkdown string
	Status       string
	PublishedAt  *time.Time
}

// UpdateEntryParams are the nullable fields for an entry update. Nil
// fields keep their current value.
type UpdateEntryParams struct {
	ID           uuid.UUID
	Kind         EntryKind
	Slug         *string
	Title        *string
	Summary      *string
	BodyMarkdown *string
	Status       *string
	PublishedAt  *time.Time
}

type ListEntriesParams struct {
	Kind          EntryKind
	Status        string
	PublishedOnly bool
	Offset        int
	Limit         int
}

// Repository is the content persistence interface.
type Repository interface {
	CreateEntry(ctx context.Context, params CreateEntryParams) (Entry, error)
	UpdateEntry(ctx context.Context, params UpdateEntryParams) (Entry, error)
	DeleteEntry(ctx context.Context, kind EntryKind, id uuid.UUID) error
	GetEntryByID(ctx context.Context, kind EntryKind, id uuid.UUID) (Entry, error)
	GetEntryBySlug(ctx context.Context, kind EntryKind, slug string, publishedOnly bool) (Entry, error)
	ListEntries(ctx context.Context, params ListEntriesParams) ([]Entry, int, error)

	// ListPublishedForFeeds returns published blog and news entries, newest
	// first, for RSS and sitemap generation.
	ListPublishedForFeeds(ctx context.Context, limit int) ([]Entry, error)

	CreateContactSubmission(ctx context.Context, name, email, message string) (ContactSubmission, error)
	ListContactSubmissions(ctx context.Context, offset, limit int) ([]ContactSubmission, int, error)
}
