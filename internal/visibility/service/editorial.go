package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"modtok/internal/events"
	"modtok/internal/shared/kinds"
	"modtok/internal/visibility/resolver"
	"modtok/internal/visibility/transport"
)

// GetEditorialState reports an entity's flags and derived review state.
func (s *Service) GetEditorialState(ctx context.Context, entityType string, id uuid.UUID) (*transport.EditorialStateResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}

	flags, err := s.editorial.GetFlags(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	resp := toEditorialStateResponse(kind, flags)
	return &resp, nil
}

// UpdateEditorialFlags applies a partial flag update. Flags only move by
// explicit admin action; there is no automatic demotion.
func (s *Service) UpdateEditorialFlags(ctx context.Context, entityType string, id uuid.UUID, req transport.UpdateEditorialFlagsRequest) (*transport.EditorialStateResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}

	before, err := s.editorial.GetFlags(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	flags, err := s.editorial.UpdateFlags(ctx, kind, id, FlagUpdate{
		HasQualityImages:         req.HasQualityImages,
		HasCompleteInfo:          req.HasCompleteInfo,
		EditorApprovedForPremium: req.EditorApprovedForPremium,
	})
	if err != nil {
		return nil, err
	}

	if !before.EditorApprovedForPremium && flags.EditorApprovedForPremium {
		s.bus.Publish(ctx, events.EntityApprovedForPremium{
			BaseEvent:  events.NewBaseEvent(),
			EntityType: kind,
			EntityID:   id,
		})
	}

	resp := toEditorialStateResponse(kind, flags)
	return &resp, nil
}

// BulkApprove sets all three flags true for every id in every partition.
// Partitions run concurrently and fail independently: a store failure in
// one entity type never blocks the others.
func (s *Service) BulkApprove(ctx context.Context, req transport.BulkApproveRequest) (*transport.BulkApproveResponse, error) {
	partitions := make([]struct {
		kind kinds.EntityType
		ids  []uuid.UUID
	}, 0, len(req.Partitions))
	for _, p := range req.Partitions {
		kind, err := kinds.ParseEntityType(p.EntityType)
		if err != nil {
			return nil, err
		}
		partitions = append(partitions, struct {
			kind kinds.EntityType
			ids  []uuid.UUID
		}{kind, p.IDs})
	}

	results := make([]transport.BulkApprovePartitionResult, len(partitions))

	var g errgroup.Group
	for i, p := range partitions {
		g.Go(func() error {
			result := transport.BulkApprovePartitionResult{EntityType: string(p.kind)}
			successCount, failedIDs, err := s.editorial.BulkApprove(ctx, p.kind, p.ids)
			if err != nil {
				result.Error = err.Error()
				result.FailedIDs = p.ids
			} else {
				result.SuccessCount = successCount
				result.FailedIDs = failedIDs
			}
			results[i] = result
			// Partition failures are reported, never propagated: returning
			// an error here would cancel sibling partitions.
			return nil
		})
	}
	_ = g.Wait()

	partial := false
	for _, result := range results {
		if result.Error != "" || len(result.FailedIDs) > 0 {
			partial = true
		}
		if result.Error == "" && result.SuccessCount > 0 {
			s.log.AdminAction("bulk_approve", result.EntityType, "")
		}
	}

	return &transport.BulkApproveResponse{Results: results, PartialFailure: partial}, nil
}

func toEditorialStateResponse(kind kinds.EntityType, flags EntityFlags) transport.EditorialStateResponse {
	return transport.EditorialStateResponse{
		EntityID:                 flags.ID,
		EntityType:               string(kind),
		HasQualityImages:         flags.HasQualityImages,
		HasCompleteInfo:          flags.HasCompleteInfo,
		EditorApprovedForPremium: flags.EditorApprovedForPremium,
		State:                    string(resolver.DeriveEditorialState(flags.HasQualityImages, flags.HasCompleteInfo, flags.EditorApprovedForPremium)),
	}
}
