package transport

import "github.com/google/uuid"

// EffectiveVisibilityRequest queries effective tiers for a batch of ids.
// IDs is a comma-separated list; AsOf defaults to today.
type EffectiveVisibilityRequest struct {
	Type string `form:"type" validate:"required,oneof=provider house service_product"`
	IDs  string `form:"ids" validate:"required"`
	AsOf string `form:"asOf" validate:"omitempty,datetime=2006-01-02"`
}

// EffectiveVisibilityResponse maps entity id to effective tier. Unknown
// ids are omitted.
type EffectiveVisibilityResponse struct {
	Tiers map[uuid.UUID]string `json:"tiers"`
	AsOf  string               `json:"asOf"`
}

// UpdateEditorialFlagsRequest is a partial update of the review flags.
// Nil fields are left unchanged.
type UpdateEditorialFlagsRequest struct {
	HasQualityImages         *bool `json:"hasQualityImages,omitempty"`
	HasCompleteInfo          *bool `json:"hasCompleteInfo,omitempty"`
	EditorApprovedForPremium *bool `json:"editorApprovedForPremium,omitempty"`
}

// EditorialStateResponse reports an entity's flags and derived state.
type EditorialStateResponse struct {
	EntityID                 uuid.UUID `json:"entityId"`
	EntityType               string    `json:"entityType"`
	HasQualityImages         bool      `json:"hasQualityImages"`
	HasCompleteInfo          bool      `json:"hasCompleteInfo"`
	EditorApprovedForPremium bool      `json:"editorApprovedForPremium"`
	State                    string    `json:"state"`
}

// BulkApprovePartition names one entity type's id batch.
type BulkApprovePartition struct {
	EntityType string      `json:"entityType" validate:"required,oneof=provider house service_product"`
	IDs        []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// BulkApproveRequest approves a batch of entities across types.
type BulkApproveRequest struct {
	Partitions []BulkApprovePartition `json:"partitions" validate:"required,min=1,dive"`
}

// BulkApprovePartitionResult reports one partition's outcome. Error is
// set when the whole partition failed at the store level.
type BulkApprovePartitionResult struct {
	EntityType   string      `json:"entityType"`
	SuccessCount int         `json:"successCount"`
	FailedIDs    []uuid.UUID `json:"failedIds,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// BulkApproveResponse reports every partition independently.
type BulkApproveResponse struct {
	Results        []BulkApprovePartitionResult `json:"results"`
	PartialFailure bool                         `json:"partialFailure"`
}
