package repository

import (
	"context"

	"github.com/google/uuid"

	"modtok/internal/shared/kinds"
)

// Entity is a catalog row: a provider, a house model, or a service
// product, identified by (Type, ID). Tier is the baseline tier the
// entity owns outright; promotional overrides live in the slot ledger.
type Entity struct {
	ID                       uuid.UUID
	Type                     kinds.EntityType
	Slug                     string
	Name                     string
	Description              *string
	Region                   *string
	Comuna                   *string
	Phone                    *string
	Email                    *string
	Website                  *string
	PriceFromCLP             *int64
	Tier                     kinds.Tier
	HasQualityImages         bool
	HasCompleteInfo          bool
	EditorApprovedForPremium bool
	Status                   string
	Attributes               map[string]interface{}
	CreatedAt                string
	UpdatedAt                string
}

// Baseline is the minimal projection the visibility resolver needs.
type Baseline struct {
	ID   uuid.UUID
	Tier kinds.Tier
}

// Summary is the projection hydrated into displayable slots.
type Summary struct {
	ID   uuid.UUID
	Type kinds.EntityType
	Slug string
	Name string
	Tier kinds.Tier
}

// PageRef is the minimal projection for sitemap generation.
type PageRef struct {
	Slug      string
	UpdatedAt string
}

// Asset is a stored file (image or document) attached to an entity.
type Asset struct {
	ID          uuid.UUID
	EntityType  kinds.EntityType
	EntityID    uuid.UUID
	Kind        string
	Bucket      string
	ObjectKey   string
	FileName    string
	ContentType string
	SizeBytes   int64
	Metadata    map[string]interface{}
	CreatedAt   string
}

type CreateEntityParams struct {
	Type         kinds.EntityType
	Slug         string
	Name         string
	Description  *string
	Region       *string
	Comuna       *string
	Phone        *string
	Email        *string
	Website      *string
	PriceFromCLP *int64
	Tier         kinds.Tier
	Status       string
	Attributes   map[string]interface{}
}

type UpdateEntityParams struct {
	ID           uuid.UUID
	Type         kinds.EntityType
	Slug         *string
	Name         *string
	Description  *string
	Region       *string
	Comuna       *string
	Phone        *string
	Email        *string
	Website      *string
	PriceFromCLP *int64
	Tier         *kinds.Tier
	Status       *string
	Attributes   map[string]interface{}
}

type ListEntitiesParams struct {
	Type          kinds.EntityType
	Search        string
	Region        string
	Tier          *kinds.Tier
	Status        string
	PublishedOnly bool
	Offset        int
	Limit         int
	SortBy        string
	SortOrder     string
}

// EditorialFlags carries partial updates of the three review flags.
// Nil fields keep their current value.
type EditorialFlags struct {
	HasQualityImages         *bool
	HasCompleteInfo          *bool
	EditorApprovedForPremium *bool
}

type CreateAssetParams struct {
	EntityType  kinds.EntityType
	EntityID    uuid.UUID
	Kind        string
	Bucket      string
	ObjectKey   string
	FileName    string
	ContentType string
	SizeBytes   int64
	Metadata    map[string]interface{}
}

// Repository is the catalog persistence interface.
type Repository interface {
	CreateEntity(ctx context.Context, params CreateEntityParams) (Entity, error)
	UpdateEntity(ctx context.Context, params UpdateEntityParams) (Entity, error)
	DeleteEntity(ctx context.Context, entityType kinds.EntityType, id uuid.UUID) error
	GetEntityByID(ctx context.Context, entityType kinds.EntityType, id uuid.UUID) (Entity, error)
	GetEntityBySlug(ctx context.Context, entityType kinds.EntityType, slug string, publishedOnly bool) (Entity, error)
	ListEntities(ctx context.Context, params ListEntitiesParams) ([]Entity, int, error)

	// GetBaselines returns baseline tiers for the ids that exist; unknown
	// ids are absent from the result, not errors.
	GetBaselines(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]Baseline, error)

	// GetSummaries returns display summaries for published entities.
	GetSummaries(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]Summary, error)

	// ListPublishedRefs returns slug references of all published entities of
	// one type for sitemap generation.
	ListPublishedRefs(ctx context.Context, entityType kinds.EntityType) ([]PageRef, error)

	// UpdateEditorialFlags applies a partial flag update to one entity.
	UpdateEditorialFlags(ctx context.Context, entityType kinds.EntityType, id uuid.UUID, flags EditorialFlags) (Entity, error)

	// BulkApproveEntities sets all three editorial flags true for the given
	// ids and reports which ids were not found.
	BulkApproveEntities(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (successCount int, failedIDs []uuid.UUID, err error)

	CreateAsset(ctx context.Context, params CreateAssetParams) (Asset, error)
	ListAssets(ctx context.Context, entityType kinds.EntityType, entityID uuid.UUID) ([]Asset, error)
	GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error
}
