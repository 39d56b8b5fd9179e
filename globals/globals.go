package globals

import (
	"context"
)

// JwtSecret signs access tokens and receipt payloads. main overwrites it from
// configuration before the server starts; the default only serves tests.
var JwtSecret = []byte("change_me_in_production")

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RolesKey ContextKey = "roles"

var Ctx = context.Background()
