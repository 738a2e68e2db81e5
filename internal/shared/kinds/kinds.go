// Package kinds defines the catalog entity types and display tiers shared
// by the catalog, slots, and visibility modules.
package kinds

import "modtok/platform/apperr"

// EntityType identifies which catalog collection an entity belongs to.
type EntityType string

const (
	EntityProvider EntityType = "provider"
	EntityHouse    EntityType = "house"
	EntityService  EntityType = "service_product"
)

// EntityTypes lists all known entity types in a stable order.
var EntityTypes = []EntityType{EntityProvider, EntityHouse, EntityService}

// ParseEntityType validates a raw entity type string.
func ParseEntityType(raw string) (EntityType, error) {
	switch EntityType(raw) {
	case EntityProvider, EntityHouse, EntityService:
		return EntityType(raw), nil
	default:
		return "", apperr.Validation("unknown entity type: " + raw)
	}
}

// Tier is a display tier. Promotional slot types use the same values:
// a slot of type premium displays its entity at the premium tier.
type Tier string

const (
	TierStandard  Tier = "standard"
	TierDestacado Tier = "destacado"
	TierPremium   Tier = "premium"
)

// Tiers lists all tiers in ascending precedence order.
var Tiers = []Tier{TierStandard, TierDestacado, TierPremium}

// ParseTier validates a raw tier / slot type string.
func ParseTier(raw string) (Tier, error) {
	switch Tier(raw) {
	case TierStandard, TierDestacado, TierPremium:
		return Tier(raw), nil
	default:
		return "", apperr.Validation("unknown tier: " + raw)
	}
}

// Rank returns the tier's precedence. premium > destacado > standard.
func (t Tier) Rank() int {
	switch t {
	case TierPremium:
		return 2
	case TierDestacado:
		return 1
	default:
		return 0
	}
}
