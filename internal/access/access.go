// Package access holds the per-request ownership decision. It is pure: handlers
// look the target resource up first and pass its owner here, so no persistence
// traversal happens inside the guard.
package access

type Operation int

const (
	OpRead Operation = iota
	OpWrite
	OpDelete
)

// Caller is the identity resolved from the bearer token.
type Caller struct {
	UserID  int64
	IsAdmin bool
}

// Resource is the ownership view of the target: who owns it, and whether it is
// publicly readable (recipes only; dogs are never public).
type Resource struct {
	OwnerID int64
	Public  bool
}

// Allowed decides whether the caller may perform op on the resource.
// Admins bypass ownership entirely. A public resource widens read access to any
// authenticated caller, never write or delete.
func Allowed(caller Caller, res Resource, op Operation) bool {
	if caller.IsAdmin {
		return true
	}
	if caller.UserID == res.OwnerID {
		return true
	}
	return op == OpRead && res.Public
}

// CanTouchUser covers the self-service exception: a caller may always read,
// update or delete their own user record; anyone else's requires admin.
func CanTouchUser(caller Caller, targetUserID int64) bool {
	return caller.IsAdmin || caller.UserID == targetUserID
}
