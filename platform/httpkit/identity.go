// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated caller.
// The abstraction keeps handlers independent of how the middleware stores
// claims in the Gin context.
type Identity interface {
	// AdminID returns the authenticated admin's ID.
	AdminID() uuid.UUID
	// Roles returns the caller's assigned roles.
	Roles() []string
	// HasRole checks if the caller has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the caller is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	adminID       uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) AdminID() uuid.UUID {
	return i.adminID
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if claims are not present.
func GetIdentity(c *gin.Context) Identity {
	adminID, adminOK := c.Get(ContextAdminIDKey)
	roles, rolesOK := c.Get(ContextRolesKey)

	if !adminOK {
		return &identity{authenticated: false}
	}

	id, ok := adminID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if rolesOK {
		roleList, _ = roles.([]string)
	}

	return &identity{
		adminID:       id,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the caller is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
