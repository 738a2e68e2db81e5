package resolver

// EditorialState is the derived review state of an entity's three
// editorial flags.
type EditorialState string

const (
	StateUnreviewed       EditorialState = "unreviewed"
	StatePartiallyReady   EditorialState = "partially_ready"
	StateReadyForApproval EditorialState = "ready_for_approval"
	StateApproved         EditorialState = "approved"
)

// DeriveEditorialState maps the three flags onto the review workflow.
// Approval dominates: once editor_approved_for_premium is set the entity
// is approved regardless of the readiness flags.
func DeriveEditorialState(hasQualityImages, hasCompleteInfo, editorApproved bool) EditorialState {
	if editorApproved {
		return StateApproved
	}
	if hasQualityImages && hasCompleteInfo {
		return StateReadyForApproval
	}
	if hasQualityImages || hasCompleteInfo {
		return StatePartiallyReady
	}
	return StateUnreviewed
}
