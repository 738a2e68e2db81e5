package events

import (
	"github.com/google/uuid"

	"modtok/internal/shared/kinds"
	platformevents "modtok/platform/events"
)

// SlotOrderCreated is published when an admin creates a promotional slot order.
type SlotOrderCreated struct {
	platformevents.BaseEvent
	OrderID  uuid.UUID
	SlotType kinds.Tier
}

// EventName returns the event identifier.
func (SlotOrderCreated) EventName() string { return "slots.order_created" }

// EntityApprovedForPremium is published when the editorial gate approves an
// entity's baseline premium eligibility.
type EntityApprovedForPremium struct {
	platformevents.BaseEvent
	EntityType kinds.EntityType
	EntityID   uuid.UUID
}

// EventName returns the event identifier.
func (EntityApprovedForPremium) EventName() string { return "editorial.entity_approved" }

// ContactSubmissionReceived is published when a public visitor submits the
// contact form.
type ContactSubmissionReceived struct {
	platformevents.BaseEvent
	Name    string
	Email   string
	Message string
}

// EventName returns the event identifier.
func (ContactSubmissionReceived) EventName() string { return "content.contact_submission" }
