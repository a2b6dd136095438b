package model

// Tier is the access level a route requires.
type Tier string

const (
	// TierPublic routes are readable without credentials.
	TierPublic Tier = "public"

	// TierAuthenticated routes require a valid access token.
	TierAuthenticated Tier = "authenticated"

	// TierAdministrative routes require an access token of a staff user.
	TierAdministrative Tier = "administrative"
)

// Allows reports whether an identity with the given flags satisfies the tier.
// Anonymous callers pass authenticated=false.
func (t Tier) Allows(authenticated, isStaff bool) bool {
	switch t {
	case TierPublic:
		return true
	case TierAuthenticated:
		return authenticated
	case TierAdministrative:
		return authenticated && isStaff
	default:
		return false
	}
}
