package policy_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/tavola/pkg/auth"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/policy"
)

func mustToken(t *testing.T, subject string, roles []string) string {
	t.Helper()
	token, err := auth.IssueToken(subject, roles)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestPublicOperationsSkipCredentials(t *testing.T) {
	for _, op := range []string{"item", "items", "allItems", "menu", "signUp", "logIn"} {
		claims, err := policy.Authorize(op, "")
		if err != nil {
			t.Errorf("%s: expected public access, got %v", op, err)
		}
		if claims != nil {
			t.Errorf("%s: public operations should not produce claims", op)
		}
	}
}

func TestGatedOperationsRejectMissingToken(t *testing.T) {
	for _, op := range []string{"viewer", "user", "order", "users", "allOrders", "createItem", "createOrder"} {
		_, err := policy.Authorize(op, "")
		if !faults.Is(err, faults.CodeUnauthenticated) {
			t.Errorf("%s: expected UNAUTHENTICATED for missing token, got %v", op, err)
		}
	}
}

func TestGatedOperationsRejectGarbageToken(t *testing.T) {
	_, err := policy.Authorize("viewer", "garbage")
	if !faults.Is(err, faults.CodeUnauthenticated) {
		t.Errorf("expected UNAUTHENTICATED for invalid token, got %v", err)
	}
}

func TestAdminOperationsRequireAdminRole(t *testing.T) {
	userToken := mustToken(t, "u1", []string{"USER"})
	adminToken := mustToken(t, "a1", []string{"ADMIN"})

	for _, op := range []string{"users", "allOrders", "createItem", "editItem", "removeItem"} {
		if _, err := policy.Authorize(op, userToken); !faults.Is(err, faults.CodeForbidden) {
			t.Errorf("%s: expected FORBIDDEN for plain user, got %v", op, err)
		}
		if _, err := policy.Authorize(op, adminToken); err != nil {
			t.Errorf("%s: expected admin to pass, got %v", op, err)
		}
	}
}

func TestAnyAuthenticatedCaller(t *testing.T) {
	userToken := mustToken(t, "u1", []string{"USER"})

	claims, err := policy.Authorize("createOrder", userToken)
	if err != nil {
		t.Fatalf("expected authenticated user to pass, got %v", err)
	}
	if claims == nil || claims.Subject != "u1" {
		t.Errorf("expected claims for u1, got %+v", claims)
	}
}

func TestUnknownOperationDenied(t *testing.T) {
	token := mustToken(t, "a1", []string{"SUPER_ADMIN"})

	if _, err := policy.Authorize("dropTables", token); !faults.Is(err, faults.CodeForbidden) {
		t.Errorf("expected FORBIDDEN for unknown operation, got %v", err)
	}
}

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		roles []string
		want  bool
	}{
		{[]string{"USER"}, false},
		{[]string{"ADMIN"}, true},
		{[]string{"SUPER_ADMIN"}, true},
		{[]string{"USER", "ADMIN"}, true},
		{nil, false},
	}
	for _, tc := range cases {
		claims := &auth.Claims{Roles: tc.roles}
		if got := policy.IsAdmin(claims); got != tc.want {
			t.Errorf("IsAdmin(%v) = %v, want %v", tc.roles, got, tc.want)
		}
	}
	if policy.IsAdmin(nil) {
		t.Error("IsAdmin(nil) must be false")
	}
}

func TestCredentialContext(t *testing.T) {
	ctx := context.Background()
	if got := policy.CredentialFromCtx(ctx); got != "" {
		t.Errorf("expected empty credential on bare context, got %q", got)
	}

	ctx = policy.WithCredential(ctx, "tok-123")
	if got := policy.CredentialFromCtx(ctx); got != "tok-123" {
		t.Errorf("expected stored credential, got %q", got)
	}
}

func TestSelfScopedRequirementRecorded(t *testing.T) {
	for _, op := range []string{"user", "order"} {
		req, ok := policy.Lookup(op)
		if !ok {
			t.Fatalf("%s: missing from policy table", op)
		}
		if !req.SelfScoped {
			t.Errorf("%s: expected SelfScoped requirement", op)
		}
	}
}
