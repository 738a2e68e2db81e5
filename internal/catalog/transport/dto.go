package transport

import "github.com/google/uuid"

// Entities

type CreateEntityRequest struct {
	Name         string                 `json:"name" validate:"required,min=1,max=200"`
	Slug         string                 `json:"slug" validate:"omitempty,min=1,max=200"`
	Description  *string                `json:"description,omitempty" validate:"omitempty,max=5000"`
	Region       *string                `json:"region,omitempty" validate:"omitempty,max=100"`
	Comuna       *string                `json:"comuna,omitempty" validate:"omitempty,max=100"`
	Phone        *string                `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email        *string                `json:"email,omitempty" validate:"omitempty,email"`
	Website      *string                `json:"website,omitempty" validate:"omitempty,url,max=500"`
	PriceFromCLP *int64                 `json:"priceFromClp,omitempty" validate:"omitempty,min=0"`
	Tier         string                 `json:"tier" validate:"omitempty,oneof=standard destacado premium"`
	Status       string                 `json:"status" validate:"omitempty,oneof=draft published archived"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
}

type UpdateEntityRequest struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Slug         *string                `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string                `json:"description,omitempty" validate:"omitempty,max=5000"`
	Region       *string                `json:"region,omitempty" validate:"omitempty,max=100"`
	Comuna       *string                `json:"comuna,omitempty" validate:"omitempty,max=100"`
	Phone        *string                `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email        *string                `json:"email,omitempty" validate:"omitempty,email"`
	Website      *string                `json:"website,omitempty" validate:"omitempty,url,max=500"`
	PriceFromCLP *int64                 `json:"priceFromClp,omitempty" validate:"omitempty,min=0"`
	Tier         *string                `json:"tier,omitempty" validate:"omitempty,oneof=standard destacado premium"`
	Status       *string                `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
}

type ListEntitiesRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Region    string `form:"region" validate:"omitempty,max=100"`
	Tier      string `form:"tier" validate:"omitempty,oneof=standard destacado premium"`
	Status    string `form:"status" validate:"omitempty,oneof=draft published archived"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name createdAt updatedAt tier"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type EntityResponse struct {
	ID                       uuid.UUID              `json:"id"`
	Type                     string                 `json:"type"`
	Slug                     string                 `json:"slug"`
	Name                     string                 `json:"name"`
	Description              *string                `json:"description,omitempty"`
	Region                   *string                `json:"region,omitempty"`
	Comuna                   *string                `json:"comuna,omitempty"`
	Phone                    *string                `json:"phone,omitempty"`
	Email                    *string                `json:"email,omitempty"`
	Website                  *string                `json:"website,omitempty"`
	PriceFromCLP             *int64                 `json:"priceFromClp,omitempty"`
	Tier                     string                 `json:"tier"`
	HasQualityImages         bool                   `json:"hasQualityImages"`
	HasCompleteInfo          bool                   `json:"hasCompleteInfo"`
	EditorApprovedForPremium bool                   `json:"editorApprovedForPremium"`
	Status                   string                 `json:"status"`
	Attributes               map[string]interface{} `json:"attributes,omitempty"`
	CreatedAt                string                 `json:"createdAt"`
	UpdatedAt                string                 `json:"updatedAt"`
}

type EntityListResponse struct {
	Items      []EntityResponse `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// Assets

type AssetResponse struct {
	ID          uuid.UUID              `json:"id"`
	Kind        string                 `json:"kind"`
	FileName    string                 `json:"fileName"`
	ContentType string                 `json:"contentType"`
	SizeBytes   int64                  `json:"sizeBytes"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	DownloadURL string                 `json:"downloadUrl,omitempty"`
	CreatedAt   string                 `json:"createdAt"`
}
