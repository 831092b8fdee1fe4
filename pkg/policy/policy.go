// Package policy is the authorization gate: a declarative table mapping each
// root operation to its credential requirement, consulted uniformly by the
// resolver layer before any sensitive work. Sensitivity is attached to entry
// points — nested traversal below an authorized root is not re-gated.
package policy

import (
	"context"

	"github.com/shashiranjanraj/tavola/pkg/auth"
	"github.com/shashiranjanraj/tavola/pkg/collection"
	"github.com/shashiranjanraj/tavola/pkg/faults"
)

// Requirement describes what a root operation demands of the caller.
type Requirement struct {
	// Public operations skip credential checks entirely.
	Public bool
	// Roles, when non-empty, is the set of roles any one of which grants
	// access. Empty with Public=false means any authenticated caller.
	Roles []string
	// SelfScoped operations must additionally restrict results to the
	// caller's own records unless the caller holds an admin role. The
	// resolver enforces the scoping; the gate only records it.
	SelfScoped bool
}

var adminRoles = []string{"ADMIN", "SUPER_ADMIN"}

// table is the complete operation policy. Unknown operations are denied.
var table = map[string]Requirement{
	// Public reads.
	"item":     {Public: true},
	"items":    {Public: true},
	"allItems": {Public: true},
	"menu":     {Public: true},

	// Credential bootstrap.
	"signUp": {Public: true},
	"logIn":  {Public: true},

	// Authenticated reads.
	"viewer": {},
	"user":   {SelfScoped: true},
	"order":  {SelfScoped: true},

	// Admin reads.
	"users":     {Roles: adminRoles},
	"allOrders": {Roles: adminRoles},

	// Mutations.
	"createItem":  {Roles: adminRoles},
	"editItem":    {Roles: adminRoles},
	"removeItem":  {Roles: adminRoles},
	"createOrder": {},
}

// Lookup returns the requirement for an operation.
func Lookup(operation string) (Requirement, bool) {
	req, ok := table[operation]
	return req, ok
}

// Authorize decides whether the presented credential may invoke operation.
// It returns the verified claims for gated operations, nil for public ones.
// Missing or invalid tokens yield UNAUTHENTICATED; valid tokens with an
// insufficient role yield FORBIDDEN.
func Authorize(operation, token string) (*auth.Claims, error) {
	req, ok := table[operation]
	if !ok {
		return nil, faults.Forbidden("Unknown operation")
	}
	if req.Public {
		return nil, nil
	}

	if token == "" {
		return nil, faults.Unauthenticated("Missing credential")
	}

	claims, err := auth.VerifyToken(token)
	if err != nil {
		return nil, faults.Unauthenticated("Invalid credential")
	}

	if len(req.Roles) > 0 && !hasAnyRole(claims.Roles, req.Roles) {
		return nil, faults.Forbidden("Insufficient role")
	}

	return claims, nil
}

// IsAdmin reports whether the claims carry an admin role, which lifts
// self-scoping on single-entity lookups.
func IsAdmin(claims *auth.Claims) bool {
	return claims != nil && hasAnyRole(claims.Roles, adminRoles)
}

func hasAnyRole(held, wanted []string) bool {
	return collection.Contains(held, func(r string) bool {
		return collection.Contains(wanted, func(w string) bool { return w == r })
	})
}

// ctxKey is the unexported key for the per-request credential token.
type ctxKey struct{}

// WithCredential stores the transport-extracted credential token in ctx.
// The resolution context carries exactly this one value.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// CredentialFromCtx returns the credential token installed by the transport,
// or "" when the request carried none.
func CredentialFromCtx(ctx context.Context) string {
	if token, ok := ctx.Value(ctxKey{}).(string); ok {
		return token
	}
	return ""
}
