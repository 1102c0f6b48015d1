package helpers

import "strings"

// Identity is the resolved caller identity every mutating operation requires.
type Identity struct {
	UserID      string
	DisplayName string
}

// IdentityFromClaims builds an Identity from verified token claims. The
// display name comes from the provider's user metadata, falling back to the
// email local part so a chatter author is never blank.
func IdentityFromClaims(claims *CustomClaims) Identity {
	return Identity{
		UserID:      claims.Subject,
		DisplayName: displayNameFrom(claims),
	}
}

func displayNameFrom(claims *CustomClaims) string {
	for _, key := range []string{"display_name", "full_name", "name"} {
		if v, ok := claims.UserMetadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	if claims.Email != "" {
		if at := strings.Index(claims.Email, "@"); at > 0 {
			return claims.Email[:at]
		}
		return claims.Email
	}
	return claims.Subject
}
