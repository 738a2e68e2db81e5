// Package adapters wires cross-module reads. Each adapter translates one
// module's repository types into the narrow interface another module
// consumes, keeping the bounded contexts decoupled.
package adapters

import (
	"context"

	"github.com/google/uuid"

	catalogrepo "modtok/internal/catalog/repository"
	"modtok/internal/shared/kinds"
	slotstransport "modtok/internal/slots/transport"
	visibilityservice "modtok/internal/visibility/service"
)

// CatalogReaderAdapter exposes catalog reads to the slots and visibility
// modules.
type CatalogReaderAdapter struct {
	repo catalogrepo.Repository
}

// NewCatalogReaderAdapter creates an adapter over the catalog repository.
func NewCatalogReaderAdapter(repo catalogrepo.Repository) *CatalogReaderAdapter {
	return &CatalogReaderAdapter{repo: repo}
}

// GetSummaries implements the slots module's EntitySummaryReader.
func (a *CatalogReaderAdapter) GetSummaries(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]slotstransport.EntitySummary, error) {
	summaries, err := a.repo.GetSummaries(ctx, entityType, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]slotstransport.EntitySummary, len(summaries))
	for id, s := range summaries {
		out[id] = slotstransport.EntitySummary{
			ID:   s.ID,
			Type: string(s.Type),
			Slug: s.Slug,
			Name: s.Name,
			Tier: string(s.Tier),
		}
	}
	return out, nil
}

// GetBaselines implements the visibility module's BaselineReader.
func (a *CatalogReaderAdapter) GetBaselines(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]visibilityservice.Baseline, error) {
	baselines, err := a.repo.GetBaselines(ctx, entityType, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]visibilityservice.Baseline, len(baselines))
	for id, b := range baselines {
		out[id] = visibilityservice.Baseline{ID: b.ID, Tier: b.Tier}
	}
	return out, nil
}

// GetFlags implements part of the visibility module's EditorialStore.
func (a *CatalogReaderAdapter) GetFlags(ctx context.Context, entityType kinds.EntityType, id uuid.UUID) (visibilityservice.EntityFlags, error) {
	entity, err := a.repo.GetEntityByID(ctx, entityType, id)
	if err != nil {
		return visibilityservice.EntityFlags{}, err
	}
	return entityFlags(entity), nil
}

// UpdateFlags implements part of the visibility module's EditorialStore.
func (a *CatalogReaderAdapter) UpdateFlags(ctx context.Context, entityType kinds.EntityType, id uuid.UUID, update visibilityservice.FlagUpdate) (visibilityservice.EntityFlags, error) {
	entity, err := a.repo.UpdateEditorialFlags(ctx, entityType, id, catalogrepo.EditorialFlags{
		HasQualityImages:         update.HasQualityImages,
		HasCompleteInfo:          update.HasCompleteInfo,
		EditorApprovedForPremium: update.EditorApprovedForPremium,
	})
	if err != nil {
		return visibilityservice.EntityFlags{}, err
	}
	return entityFlags(entity), nil
}

// BulkApprove implements part of the visibility module's EditorialStore.
func (a *CatalogReaderAdapter) BulkApprove(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (int, []uuid.UUID, error) {
	return a.repo.BulkApproveEntities(ctx, entityType, ids)
}

func entityFlags(entity catalogrepo.Entity) visibilityservice.EntityFlags {
	return visibilityservice.EntityFlags{
		ID:                       entity.ID,
		HasQualityImages:         entity.HasQualityImages,
		HasCompleteInfo:          entity.HasCompleteInfo,
		EditorApprovedForPremium: entity.EditorApprovedForPremium,
	}
}
