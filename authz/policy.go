// Package authz holds the single authorization policy for the API. Handlers
// and routes never match role strings themselves; everything funnels through
// Allow so the rules live in one table.
package authz

import (
	"net/http"
	"slices"

	"milonga/utils"

	"github.com/julienschmidt/httprouter"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionManage Action = "manage"
)

// Resources
const (
	ResourceEvents    = "events"
	ResourceNotices   = "notices"
	ResourceInfoPages = "infopages"
	ResourceCatalog   = "catalog"
	ResourcePurchases = "purchases"
)

// legacy permission string that grants full admin, kept for tokens minted by
// the previous deployment
const permAdminGranted = "admingranted"

var adminRoles = []string{"admin", "superadmin"}

// IsAdmin reports whether the role/permission set carries admin rights.
func IsAdmin(roles []string) bool {
	for _, r := range roles {
		if slices.Contains(adminRoles, r) || r == permAdminGranted {
			return true
		}
	}
	return false
}

// Allow decides whether a set of roles may perform action on resource.
// Reads on public resources are open; every write and every management
// operation requires admin. Authenticated users read notices and purchase
// resources scoped to themselves (the handlers enforce the self-scoping).
func Allow(roles []string, action Action, resource string) bool {
	if IsAdmin(roles) {
		return true
	}
	switch action {
	case ActionRead:
		switch resource {
		case ResourceEvents, ResourceInfoPages, ResourceCatalog:
			return true
		case ResourceNotices, ResourcePurchases:
			return len(roles) > 0
		}
	case ActionWrite, ActionManage:
		return false
	}
	return false
}

// Require builds a route middleware enforcing Allow for the request's roles.
// It must run after middleware.Authenticate so the roles are on the context.
func Require(action Action, resource string) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			roles := utils.GetRolesFromRequest(r)
			if !Allow(roles, action, resource) {
				utils.RespondWithError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next(w, r, ps)
		}
	}
}
