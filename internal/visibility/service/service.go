// Package service implements effective visibility resolution and the
// editorial review gate.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"modtok/internal/events"
	"modtok/internal/shared/dates"
	"modtok/internal/shared/kinds"
	"modtok/internal/visibility/resolver"
	"modtok/platform/apperr"
	"modtok/platform/cache"
	"modtok/platform/logger"
)

const maxBatchSize = 200

// Baseline is an entity's owned tier.
type Baseline struct {
	ID   uuid.UUID
	Tier kinds.Tier
}

// BaselineReader reads baseline tiers from the catalog. Unknown ids are
// absent from the result, not errors.
type BaselineReader interface {
	GetBaselines(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]Baseline, error)
}

// SlotAssignment is one active, in-range promotional assignment.
type SlotAssignment struct {
	OrderID       uuid.UUID
	EntityID      uuid.UUID
	SlotType      kinds.Tier
	RotationOrder int
	CreatedAt     time.Time
}

// SlotAssignmentReader reads active slot assignments for a batch of
// entities at an instant.
type SlotAssignmentReader interface {
	ListActiveForEntities(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID, asOf time.Time) ([]SlotAssignment, error)
}

// EntityFlags is the editorial flag triple of one entity.
type EntityFlags struct {
	ID                       uuid.UUID
	HasQualityImages         bool
	HasCompleteInfo          bool
	EditorApprovedForPremium bool
}

// FlagUpdate is a partial editorial flag change. Nil fields keep their
// current value.
type FlagUpdate struct {
	HasQualityImages         *bool
	HasCompleteInfo          *bool
	EditorApprovedForPremium *bool
}

// EditorialStore mutates and reads editorial flags in the catalog.
type EditorialStore interface {
	GetFlags(ctx context.Context, entityType kinds.EntityType, id uuid.UUID) (EntityFlags, error)
	UpdateFlags(ctx context.Context, entityType kinds.EntityType, id uuid.UUID, update FlagUpdate) (EntityFlags, error)
	BulkApprove(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (successCount int, failedIDs []uuid.UUID, err error)
}

// Service resolves effective tiers and drives the editorial gate.
type Service struct {
	baselines BaselineReader
	slots     SlotAssignmentReader
	editorial EditorialStore
	cache     *cache.Cache
	cacheTTL  time.Duration
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new visibility service. The cache may be nil.
func New(baselines BaselineReader, slots SlotAssignmentReader, editorial EditorialStore, c *cache.Cache, cacheTTL time.Duration, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		baselines: baselines,
		slots:     slots,
		editorial: editorial,
		cache:     c,
		cacheTTL:  cacheTTL,
		bus:       bus,
		log:       log,
	}
}

// ResolveEffective computes effective tiers for a batch of ids at asOf.
// Unknown ids are omitted from the result. Resolution is a pure read.
func (s *Service) ResolveEffective(ctx context.Context, entityType string, ids []uuid.UUID, asOf time.Time) (map[uuid.UUID]kinds.Tier, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return map[uuid.UUID]kinds.Tier{}, nil
	}
	if len(ids) > maxBatchSize {
		return nil, apperr.Validation(fmt.Sprintf("at most %d ids per request", maxBatchSize))
	}

	asOf = dates.Truncate(asOf)

	baselines, err := s.baselines.GetBaselines(ctx, kind, ids)
	if err != nil {
		return nil, err
	}

	assignments, err := s.slots.ListActiveForEntities(ctx, kind, ids, asOf)
	if err != nil {
		return nil, err
	}

	byEntity := make(map[uuid.UUID][]resolver.Candidate)
	for _, a := range assignments {
		byEntity[a.EntityID] = append(byEntity[a.EntityID], resolver.Candidate{
			OrderID:       a.OrderID,
			SlotType:      a.SlotType,
			RotationOrder: a.RotationOrder,
			CreatedAt:     a.CreatedAt,
		})
	}

	result := make(map[uuid.UUID]kinds.Tier, len(baselines))
	for id, baseline := range baselines {
		result[id] = resolver.Resolve(baseline.Tier, byEntity[id]).Tier
	}
	return result, nil
}

// ResolveEffectiveCached is ResolveEffective behind a short-TTL cache for
// the public read path. Cache failures degrade to a direct resolve.
func (s *Service) ResolveEffectiveCached(ctx context.Context, entityType string, ids []uuid.UUID, asOf time.Time) (map[uuid.UUID]kinds.Tier, error) {
	key := cacheKey(entityType, ids, asOf)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached map[uuid.UUID]kinds.Tier
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := s.ResolveEffective(ctx, entityType, ids, asOf)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			s.log.Warn("visibility cache write failed", "error", err)
		}
	}
	return result, nil
}

func cacheKey(entityType string, ids []uuid.UUID, asOf time.Time) string {
	sorted := make([]string, 0, len(ids))
	for _, id := range ids {
		sorted = append(sorted, id.String())
	}
	sort.Strings(sorted)

	h := fnv.New64a()
	h.Write([]byte(strings.Join(sorted, ",")))
	return fmt.Sprintf("vis:%s:%s:%x", entityType, dates.Format(asOf), h.Sum64())
}
