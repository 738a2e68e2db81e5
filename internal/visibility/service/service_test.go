package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"modtok/internal/events"
	"modtok/internal/shared/dates"
	"modtok/internal/shared/kinds"
	"modtok/internal/visibility/transport"
	"modtok/platform/apperr"
	"modtok/platform/logger"
)

type stubBaselineReader struct {
	baselines map[uuid.UUID]Baseline
	err       error
}

func (s *stubBaselineReader) GetBaselines(_ context.Context, _ kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]Baseline, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make(map[uuid.UUID]Baseline)
	for _, id := range ids {
		if b, ok := s.baselines[id]; ok {
			result[id] = b
		}
	}
	return result, nil
}

type stubSlotReader struct {
	assignments []SlotAssignment
	gotAsOf     time.Time
}

func (s *stubSlotReader) ListActiveForEntities(_ context.Context, _ kinds.EntityType, _ []uuid.UUID, asOf time.Time) ([]SlotAssignment, error) {
	s.gotAsOf = asOf
	return s.assignments, nil
}

type stubEditorialStore struct {
	flags      map[uuid.UUID]EntityFlags
	failTypes  map[kinds.EntityType]error
	approveLog []kinds.EntityType
}

func (s *stubEditorialStore) GetFlags(_ context.Context, _ kinds.EntityType, id uuid.UUID) (EntityFlags, error) {
	flags, ok := s.flags[id]
	if !ok {
		return EntityFlags{}, apperr.NotFound("entity not found")
	}
	return flags, nil
}

func (s *stubEditorialStore) UpdateFlags(_ context.Context, _ kinds.EntityType, id uuid.UUID, update FlagUpdate) (EntityFlags, error) {
	flags, ok := s.flags[id]
	if !ok {
		return EntityFlags{}, apperr.NotFound("entity not found")
	}
	if update.HasQualityImages != nil {
		flags.HasQualityImages = *update.HasQualityImages
	}
	if update.HasCompleteInfo != nil {
		flags.HasCompleteInfo = *update.HasCompleteInfo
	}
	if update.EditorApprovedForPremium != nil {
		flags.EditorApprovedForPremium = *update.EditorApprovedForPremium
	}
	s.flags[id] = flags
	return flags, nil
}

func (s *stubEditorialStore) BulkApprove(_ context.Context, entityType kinds.EntityType, ids []uuid.UUID) (int, []uuid.UUID, error) {
	if err, ok := s.failTypes[entityType]; ok {
		return 0, nil, err
	}
	s.approveLog = append(s.approveLog, entityType)
	var failed []uuid.UUID
	success := 0
	for _, id := range ids {
		if _, ok := s.flags[id]; ok {
			success++
		} else {
			failed = append(failed, id)
		}
	}
	return success, failed, nil
}

func newTestService(baselines *stubBaselineReader, slots *stubSlotReader, editorial *stubEditorialStore) *Service {
	log := logger.New("test")
	return New(baselines, slots, editorial, nil, time.Minute, events.NewInMemoryBus(log), log)
}

func TestResolveEffective_BaselineWhenNoSlots(t *testing.T) {
	id := uuid.New()
	svc := newTestService(
		&stubBaselineReader{baselines: map[uuid.UUID]Baseline{id: {ID: id, Tier: kinds.TierDestacado}}},
		&stubSlotReader{},
		&stubEditorialStore{},
	)

	result, err := svc.ResolveEffective(context.Background(), "provider", []uuid.UUID{id}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result[id] != kinds.TierDestacado {
		t.Fatalf("expected destacado baseline, got %s", result[id])
	}
}

func TestResolveEffective_ActiveSlotOverridesBaseline(t *testing.T) {
	id := uuid.New()
	svc := newTestService(
		&stubBaselineReader{baselines: map[uuid.UUID]Baseline{id: {ID: id, Tier: kinds.TierPremium}}},
		&stubSlotReader{assignments: []SlotAssignment{
			{OrderID: uuid.New(), EntityID: id, SlotType: kinds.TierDestacado, RotationOrder: 1},
		}},
		&stubEditorialStore{},
	)

	result, err := svc.ResolveEffective(context.Background(), "house", []uuid.UUID{id}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result[id] != kinds.TierDestacado {
		t.Fatalf("expected slot to override premium baseline down to destacado, got %s", result[id])
	}
}

func TestResolveEffective_UnknownIDsOmitted(t *testing.T) {
	known := uuid.New()
	unknown := uuid.New()
	svc := newTestService(
		&stubBaselineReader{baselines: map[uuid.UUID]Baseline{known: {ID: known, Tier: kinds.TierStandard}}},
		&stubSlotReader{},
		&stubEditorialStore{},
	)

	result, err := svc.ResolveEffective(context.Background(), "provider", []uuid.UUID{known, unknown}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected exactly the known id in the result, got %d entries", len(result))
	}
	if _, ok := result[unknown]; ok {
		t.Fatal("unknown id must be omitted, not errored")
	}
}

func TestResolveEffective_TruncatesAsOfToDate(t *testing.T) {
	id := uuid.New()
	slots := &stubSlotReader{}
	svc := newTestService(
		&stubBaselineReader{baselines: map[uuid.UUID]Baseline{id: {ID: id, Tier: kinds.TierStandard}}},
		slots,
		&stubEditorialStore{},
	)

	asOf := time.Date(2026, 6, 15, 17, 30, 45, 0, time.UTC)
	if _, err := svc.ResolveEffective(context.Background(), "provider", []uuid.UUID{id}, asOf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slots.gotAsOf.Equal(dates.Truncate(asOf)) {
		t.Fatalf("expected slot reader to see the truncated date, got %s", slots.gotAsOf)
	}
}

func TestResolveEffective_RejectsOversizedBatch(t *testing.T) {
	svc := newTestService(&stubBaselineReader{}, &stubSlotReader{}, &stubEditorialStore{})

	ids := make([]uuid.UUID, maxBatchSize+1)
	for i := range ids {
		ids[i] = uuid.New()
	}

	_, err := svc.ResolveEffective(context.Background(), "provider", ids, time.Now())
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for oversized batch, got %v", err)
	}
}

func TestResolveEffective_UnknownEntityType(t *testing.T) {
	svc := newTestService(&stubBaselineReader{}, &stubSlotReader{}, &stubEditorialStore{})

	_, err := svc.ResolveEffective(context.Background(), "warehouse", []uuid.UUID{uuid.New()}, time.Now())
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBulkApprove_PartitionFailuresAreIsolated(t *testing.T) {
	okID := uuid.New()
	store := &stubEditorialStore{
		flags:     map[uuid.UUID]EntityFlags{okID: {ID: okID}},
		failTypes: map[kinds.EntityType]error{kinds.EntityHouse: errors.New("store unavailable")},
	}
	svc := newTestService(&stubBaselineReader{}, &stubSlotReader{}, store)

	resp, err := svc.BulkApprove(context.Background(), transport.BulkApproveRequest{
		Partitions: []transport.BulkApprovePartition{
			{EntityType: "provider", IDs: []uuid.UUID{okID}},
			{EntityType: "house", IDs: []uuid.UUID{uuid.New()}},
		},
	})
	if err != nil {
		t.Fatalf("a failed partition must not fail the request: %v", err)
	}
	if !resp.PartialFailure {
		t.Fatal("expected partial failure to be flagged")
	}

	var providerResult, houseResult *transport.BulkApprovePartitionResult
	for i := range resp.Results {
		switch resp.Results[i].EntityType {
		case "provider":
			providerResult = &resp.Results[i]
		case "house":
			houseResult = &resp.Results[i]
		}
	}
	if providerResult == nil || providerResult.SuccessCount != 1 || providerResult.Error != "" {
		t.Fatalf("expected provider partition to succeed, got %+v", providerResult)
	}
	if houseResult == nil || houseResult.Error == "" || len(houseResult.FailedIDs) != 1 {
		t.Fatalf("expected house partition to report its failure, got %+v", houseResult)
	}
}

func TestBulkApprove_MissingIDsReportedPerPartition(t *testing.T) {
	okID := uuid.New()
	missing := uuid.New()
	store := &stubEditorialStore{flags: map[uuid.UUID]EntityFlags{okID: {ID: okID}}}
	svc := newTestService(&stubBaselineReader{}, &stubSlotReader{}, store)

	resp, err := svc.BulkApprove(context.Background(), transport.BulkApproveRequest{
		Partitions: []transport.BulkApprovePartition{
			{EntityType: "provider", IDs: []uuid.UUID{okID, missing}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.PartialFailure {
		t.Fatal("expected partial failure when an id is missing")
	}
	result := resp.Results[0]
	if result.SuccessCount != 1 {
		t.Fatalf("expected 1 success, got %d", result.SuccessCount)
	}
	if len(result.FailedIDs) != 1 || result.FailedIDs[0] != missing {
		t.Fatalf("expected the missing id to be reported, got %v", result.FailedIDs)
	}
}

func TestBulkApprove_UnknownEntityTypeFailsWholeRequest(t *testing.T) {
	svc := newTestService(&stubBaselineReader{}, &stubSlotReader{}, &stubEditorialStore{})

	_, err := svc.BulkApprove(context.Background(), transport.BulkApproveRequest{
		Partitions: []transport.BulkApprovePartition{
			{EntityType: "warehouse", IDs: []uuid.UUID{uuid.New()}},
		},
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error before any partition runs, got %v", err)
	}
}

func TestUpdateEditorialFlags_DerivedState(t *testing.T) {
	id := uuid.New()
	store := &stubEditorialStore{flags: map[uuid.UUID]EntityFlags{id: {ID: id}}}
	svc := newTestService(&stubBaselineReader{}, &stubSlotReader{}, store)

	yes := true
	resp, err := svc.UpdateEditorialFlags(context.Background(), "provider", id, transport.UpdateEditorialFlagsRequest{
		HasQualityImages: &yes,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.State != "partially_ready" {
		t.Fatalf("expected partially_ready, got %s", resp.State)
	}

	resp, err = svc.UpdateEditorialFlags(context.Background(), "provider", id, transport.UpdateEditorialFlagsRequest{
		HasCompleteInfo: &yes,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.State != "ready_for_approval" {
		t.Fatalf("expected ready_for_approval, got %s", resp.State)
	}
}
