// Package service implements editorial content business logic.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogservice "modtok/internal/catalog/service"
	"modtok/internal/content/render"
	"modtok/internal/content/repository"
	"modtok/internal/content/transport"
	"modtok/internal/events"
	"modtok/internal/shared/dates"
	"modtok/platform/apperr"
	"modtok/platform/logger"
	"modtok/platform/sanitize"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides content operations for blog, news, pages, and FAQs.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new content service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateEntry creates an entry of the given kind. Publishing without an
// explicit date stamps today.
func (s *Service) CreateEntry(ctx context.Context, kind string, req transport.CreateEntryRequest) (*transport.EntryResponse, error) {
	entryKind, err := repository.ParseEntryKind(kind)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}

	slug := req.Slug
	if slug == "" {
		slug = catalogservice.Slugify(req.Title)
	}
	if slug == "" {
		return nil, apperr.Validation("title must contain at least one alphanumeric character")
	}

	publishedAt, err := parsePublishedAt(req.PublishedAt)
	if err != nil {
		return nil, err
	}
	if status == "published" && publishedAt == nil {
		now := dates.Today()
		publishedAt = &now
	}

	entry, err := s.repo.CreateEntry(ctx, repository.CreateEntryParams{
		Kind:         entryKind,
		Slug:         slug,
		Title:        sanitize.Text(req.Title),
		Summary:      sanitize.TextPtr(req.Summary),
		BodyMarkdown: req.BodyMarkdown,
		Status:       status,
		PublishedAt:  publishedAt,
	})
	if err != nil {
		return nil, err
	}

	resp := toEntryResponse(entry, false)
	return &resp, nil
}

// UpdateEntry applies a partial update.
func (s *Service) UpdateEntry(ctx context.Context, kind string, id uuid.UUID, req transport.UpdateEntryRequest) (*transport.EntryResponse, error) {
	entryKind, err := repository.ParseEntryKind(kind)
	if err != nil {
		return nil, err
	}

	publishedAt, err := parsePublishedAt(req.PublishedAt)
	if err != nil {
		return nil, err
	}

	var title *string
	if req.Title != nil {
		clean := sanitize.Text(*req.Title)
		title = &clean
	}

	entry, err := s.repo.UpdateEntry(ctx, repository.UpdateEntryParams{
		ID:           id,
		Kind:         entryKind,
		Slug:         req.Slug,
		Title:        title,
		Summary:      sanitize.TextPtr(req.Summary),
		BodyMarkdown: req.BodyMarkdown,
		Status:       req.Status,
		PublishedAt:  publishedAt,
	})
	if err != nil {
		return nil, err
	}

	resp := toEntryResponse(entry, false)
	return &resp, nil
}

// DeleteEntry removes an entry.
func (s *Service) DeleteEntry(ctx context.Context, kind string, id uuid.UUID) error {
	entryKind, err := repository.ParseEntryKind(kind)
	if err != nil {
		return err
	}
	return s.repo.DeleteEntry(ctx, entryKind, id)
}

// GetEntryByID retrieves one entry regardless of status.
func (s *Service) GetEntryByID(ctx context.Context, kind string, id uuid.UUID) (*transport.EntryResponse, error) {
	entryKind, err := repository.ParseEntryKind(kind)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.GetEntryByID(ctx, entryKind, id)
	if err != nil {
		return nil, err
	}
	resp := toEntryResponse(entry, false)
	return &resp, nil
}

// GetPublishedBySlug retrieves a published entry with its markdown body
// rendered to sanitized HTML.
func (s *Service) GetPublishedBySlug(ctx context.Context, kind, slug string) (*transport.EntryResponse, error) {
	entryKind, err := repository.ParseEntryKind(kind)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.GetEntryBySlug(ctx, entryKind, slug, true)
	if err != nil {
		return nil, err
	}
	resp := toEntryResponse(entry, true)
	return &resp, nil
}

// ListEntries lists entries of one kind with pagination.
func (s *Service) ListEntries(ctx context.Context, kind string, req transport.ListEntriesRequest, publishedOnly bool) (*transport.EntryListResponse, error) {
	entryKind, err := repository.ParseEntryKind(kind)
	if err != nil {
		return nil, err
	}

	page, pageSize := clampPaging(req.Page, req.PageSize)

	status := req.Status
	if publishedOnly {
		status = ""
	}

	items, total, err := s.repo.ListEntries(ctx, repository.ListEntriesParams{
		Kind:          entryKind,
		Status:        status,
		PublishedOnly: publishedOnly,
		Offset:        (page - 1) * pageSize,
		Limit:         pageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]transport.EntryResponse, 0, len(items))
	for _, entry := range items {
		responses = append(responses, toEntryResponse(entry, false))
	}

	return &transport.EntryListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// SubmitContact stores a public contact form message and announces it on
// the event bus; the mail notification is a subscriber.
func (s *Service) SubmitContact(ctx context.Context, req transport.ContactRequest) (*transport.ContactSubmissionResponse, error) {
	submission, err := s.repo.CreateContactSubmission(ctx,
		sanitize.Text(req.Name), req.Email, sanitize.Text(req.Message),
	)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.ContactSubmissionReceived{
		BaseEvent: events.NewBaseEvent(),
		Name:      submission.Name,
		Email:     submission.Email,
		Message:   submission.Message,
	})

	resp := toContactResponse(submission)
	return &resp, nil
}

// ListContactSubmissions lists stored messages for the admin panel.
func (s *Service) ListContactSubmissions(ctx context.Context, page, pageSize int) (*transport.ContactSubmissionListResponse, error) {
	page, pageSize = clampPaging(page, pageSize)

	items, total, err := s.repo.ListContactSubmissions(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.ContactSubmissionResponse, 0, len(items))
	for _, submission := range items {
		responses = append(responses, toContactResponse(submission))
	}

	return &transport.ContactSubmissionListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func parsePublishedAt(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := dates.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toEntryResponse(entry repository.Entry, rendered bool) transport.EntryResponse {
	resp := transport.EntryResponse{
		ID:        entry.ID,
		Kind:      string(entry.Kind),
		Slug:      entry.Slug,
		Title:     entry.Title,
		Summary:   entry.Summary,
		Status:    entry.Status,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
	if entry.PublishedAt != nil {
		formatted := dates.Format(*entry.PublishedAt)
		resp.PublishedAt = &formatted
	}
	if rendered {
		if html, err := render.HTML(entry.BodyMarkdown); err == nil {
			resp.BodyHTML = html
		}
	} else {
		resp.BodyMarkdown = entry.BodyMarkdown
	}
	return resp
}

func toContactResponse(submission repository.ContactSubmission) transport.ContactSubmissionResponse {
	return transport.ContactSubmissionResponse{
		ID:        submission.ID,
		Name:      submission.Name,
		Email:     submission.Email,
		Message:   submission.Message,
		CreatedAt: submission.CreatedAt,
	}
}
