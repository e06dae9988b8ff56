package utils

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractToken pulls the shared API key from the request. The Authorization
// header is the primary carrier; the access_token query parameter is kept for
// direct links (images, downloads) where headers cannot be set.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return c.Query("access_token")
}

// SecureCompare performs constant-time string comparison to prevent timing attacks.
// This MUST be used when comparing API keys.
//
// Returns true if both strings are equal, false otherwise.
func SecureCompare(a, b string) bool {
	aBytes := []byte(a)
	bBytes := []byte(b)

	// subtle.ConstantTimeCompare returns 1 if equal, 0 otherwise
	return subtle.ConstantTimeCompare(aBytes, bBytes) == 1
}
