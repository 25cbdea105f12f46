package store

// Scope restricts queries to the rows a caller may see. It mirrors the
// row-level policies the database applies on the PostgREST path: referrers
// see rows keyed by their referrer/user id, businesses see their campaigns
// and the leads attached to them, admins see everything.
type Scope struct {
	All      bool
	Referrer string
	Business string
}

// ForRole maps an application role to a visibility scope.
func ForRole(role, userID string) Scope {
	switch role {
	case "admin":
		return Scope{All: true}
	case "business":
		return Scope{Business: userID}
	default:
		return Scope{Referrer: userID}
	}
}

// Owns reports whether a row keyed by the given referrer/user id is visible
// under this scope. Business ownership is checked against campaign rows
// separately.
func (sc Scope) Owns(ownerID *string) bool {
	if sc.All {
		return true
	}
	if ownerID == nil {
		return false
	}
	if sc.Referrer != "" {
		return *ownerID == sc.Referrer
	}
	if sc.Business != "" {
		return *ownerID == sc.Business
	}
	return false
}
