package helpers

import "github.com/golang-jwt/jwt/v5"

// Claims is the subset of the identity provider's access token the API reads.
type Claims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider string   `json:"provider"`
		Roles    []string `json:"roles,omitempty"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

// HasRole checks the top-level role and the provider's app roles.
func (c *Claims) HasRole(role string) bool {
	if role == "" {
		return false
	}
	if c.Role == role {
		return true
	}
	for _, r := range c.AppMetadata.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (c *Claims) GetSafeRole() string {
	if c.Role == "" {
		return "guest"
	}
	return c.Role
}
