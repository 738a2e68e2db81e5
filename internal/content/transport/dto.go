package transport

import "github.com/google/uuid"

type CreateEntryRequest struct {
	Slug         string  `json:"slug" validate:"omitempty,min=1,max=200"`
	Title        string  `json:"title" validate:"required,min=1,max=300"`
	Summary      *string `json:"summary,omitempty" validate:"omitempty,max=1000"`
	BodyMarkdown string  `json:"bodyMarkdown" validate:"required"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft published"`
	PublishedAt  *string `json:"publishedAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateEntryRequest struct {
	Slug         *string `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Title        *string `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Summary      *string `json:"summary,omitempty" validate:"omitempty,max=1000"`
	BodyMarkdown *string `json:"bodyMarkdown,omitempty"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	PublishedAt  *string `json:"publishedAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListEntriesRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=draft published"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type EntryResponse struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Summary      *string   `json:"summary,omitempty"`
	BodyMarkdown string    `json:"bodyMarkdown,omitempty"`
	BodyHTML     string    `json:"bodyHtml,omitempty"`
	Status       string    `json:"status"`
	PublishedAt  *string   `json:"publishedAt,omitempty"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

type EntryListResponse struct {
	Items      []EntryResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

type ContactSubmissionResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"createdAt"`
}

type ContactSubmissionListResponse struct {
	Items      []ContactSubmissionResponse `json:"items"`
	Total      int                         `json:"total"`
	Page       int                         `json:"page"`
	PageSize   int                         `json:"pageSize"`
	TotalPages int                         `json:"totalPages"`
}
