package helpers

import (
	"casse-auctions/internal/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "casse.identity"

// SetIdentity stores the authenticated caller on the request context
func SetIdentity(c *gin.Context, identity models.Identity) {
	c.Set(identityKey, identity)
}

// CurrentIdentity returns the authenticated caller, or nil for anonymous requests
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(models.Identity)
	if !ok {
		return nil
	}
	return &identity
}
