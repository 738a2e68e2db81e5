// Package service implements catalog business logic.
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"modtok/internal/catalog/repository"
	"modtok/internal/catalog/transport"
	"modtok/internal/shared/kinds"
	"modtok/platform/apperr"
	"modtok/platform/config"
	"modtok/platform/logger"
	"modtok/platform/phone"
	"modtok/platform/sanitize"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides catalog operations for all three entity types.
type Service struct {
	repo    repository.Repository
	storage AssetStore
	buckets AssetBuckets
	site    config.SiteConfig
	log     *logger.Logger
}

// New creates a new catalog service. The store may be nil when object
// storage is not configured; asset operations then fail cleanly.
func New(repo repository.Repository, store AssetStore, buckets AssetBuckets, site config.SiteConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: store, buckets: buckets, site: site, log: log}
}

// CreateEntity creates a catalog entity of the given type.
func (s *Service) CreateEntity(ctx context.Context, entityType string, req transport.CreateEntityRequest) (*transport.EntityResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}

	tier := kinds.TierStandard
	if req.Tier != "" {
		tier, err = kinds.ParseTier(req.Tier)
		if err != nil {
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return nil, apperr.Validation("name must contain at least one alphanumeric character")
	}

	entity, err := s.repo.CreateEntity(ctx, repository.CreateEntityParams{
		Type:         kind,
		Slug:         slug,
		Name:         sanitize.Text(req.Name),
		Description:  sanitize.TextPtr(req.Description),
		Region:       req.Region,
		Comuna:       req.Comuna,
		Phone:        phone.NormalizeE164Ptr(req.Phone),
		Email:        req.Email,
		Website:      req.Website,
		PriceFromCLP: req.PriceFromCLP,
		Tier:         tier,
		Status:       status,
		Attributes:   req.Attributes,
	})
	if err != nil {
		return nil, err
	}

	resp := toEntityResponse(entity)
	return &resp, nil
}

// UpdateEntity applies a partial update.
func (s *Service) UpdateEntity(ctx context.Context, entityType string, id uuid.UUID, req transport.UpdateEntityRequest) (*transport.EntityResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}

	var tier *kinds.Tier
	if req.Tier != nil {
		parsed, err := kinds.ParseTier(*req.Tier)
		if err != nil {
			return nil, err
		}
		tier = &parsed
	}

	var name *string
	if req.Name != nil {
		clean := sanitize.Text(*req.Name)
		name = &clean
	}

	entity, err := s.repo.UpdateEntity(ctx, repository.UpdateEntityParams{
		ID:           id,
		Type:         kind,
		Slug:         req.Slug,
		Name:         name,
		Description:  sanitize.TextPtr(req.Description),
		Region:       req.Region,
		Comuna:       req.Comuna,
		Phone:        phone.NormalizeE164Ptr(req.Phone),
		Email:        req.Email,
		Website:      req.Website,
		PriceFromCLP: req.PriceFromCLP,
		Tier:         tier,
		Status:       req.Status,
		Attributes:   req.Attributes,
	})
	if err != nil {
		return nil, err
	}

	resp := toEntityResponse(entity)
	return &resp, nil
}

// DeleteEntity removes an entity.
func (s *Service) DeleteEntity(ctx context.Context, entityType string, id uuid.UUID) error {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return err
	}
	return s.repo.DeleteEntity(ctx, kind, id)
}

// GetEntityByID retrieves one entity regardless of status.
func (s *Service) GetEntityByID(ctx context.Context, entityType string, id uuid.UUID) (*transport.EntityResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}
	entity, err := s.repo.GetEntityByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	resp := toEntityResponse(entity)
	return &resp, nil
}

// GetPublishedEntityBySlug retrieves a published entity for public pages.
func (s *Service) GetPublishedEntityBySlug(ctx context.Context, entityType, slug string) (*transport.EntityResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}
	entity, err := s.repo.GetEntityBySlug(ctx, kind, slug, true)
	if err != nil {
		return nil, err
	}
	resp := toEntityResponse(entity)
	return &resp, nil
}

// ListEntities lists entities with filters and pagination. When
// publishedOnly is set the status filter is ignored.
func (s *Service) ListEntities(ctx context.Context, entityType string, req transport.ListEntitiesRequest, publishedOnly bool) (*transport.EntityListResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var tier *kinds.Tier
	if req.Tier != "" {
		parsed, err := kinds.ParseTier(req.Tier)
		if err != nil {
			return nil, err
		}
		tier = &parsed
	}

	status := req.Status
	if publishedOnly {
		status = ""
	}

	items, total, err := s.repo.ListEntities(ctx, repository.ListEntitiesParams{
		Type:          kind,
		Search:        req.Search,
		Region:        req.Region,
		Tier:          tier,
		Status:        status,
		PublishedOnly: publishedOnly,
		Offset:        (page - 1) * pageSize,
		Limit:         pageSize,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]transport.EntityResponse, 0, len(items))
	for _, entity := range items {
		responses = append(responses, toEntityResponse(entity))
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &transport.EntityListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// PublicPageQR renders a PNG QR code pointing at an entity's public page.
// Only published entities get a code.
func (s *Service) PublicPageQR(ctx context.Context, entityType, slug string) ([]byte, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}
	entity, err := s.repo.GetEntityBySlug(ctx, kind, slug, true)
	if err != nil {
		return nil, err
	}

	pageURL := fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.site.GetSiteBaseURL(), "/"), publicPathSegment(kind), entity.Slug)
	png, err := qrcode.Encode(pageURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

func publicPathSegment(kind kinds.EntityType) string {
	switch kind {
	case kinds.EntityHouse:
		return "casas"
	case kinds.EntityService:
		return "servicios"
	default:
		return "fabricantes"
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses everything outside [a-z0-9]
// into single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
	)
	slug = replacer.Replace(slug)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func toEntityResponse(entity repository.Entity) transport.EntityResponse {
	return transport.EntityResponse{
		ID:                       entity.ID,
		Type:                     string(entity.Type),
		Slug:                     entity.Slug,
		Name:                     entity.Name,
		Description:              entity.Description,
		Region:                   entity.Region,
		Comuna:                   entity.Comuna,
		Phone:                    entity.Phone,
		Email:                    entity.Email,
		Website:                  entity.Website,
		PriceFromCLP:             entity.PriceFromCLP,
		Tier:                     string(entity.Tier),
		HasQualityImages:         entity.HasQualityImages,
		HasCompleteInfo:          entity.HasCompleteInfo,
		EditorApprovedForPremium: entity.EditorApprovedForPremium,
		Status:                   entity.Status,
		Attributes:               entity.Attributes,
		CreatedAt:                entity.CreatedAt,
		UpdatedAt:                entity.UpdatedAt,
	}
}
