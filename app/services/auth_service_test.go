package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/app/repositories"
	"github.com/shashiranjanraj/tavola/app/services"
	"github.com/shashiranjanraj/tavola/pkg/auth"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/store"
	"github.com/shashiranjanraj/tavola/pkg/workerpool"
)

// fixture wires the full service stack over a fresh in-memory store.
type fixture struct {
	store    store.Store
	users    *repositories.UserRepository
	items    *repositories.ItemRepository
	orders   *repositories.OrderRepository
	auth     *services.AuthService
	orderSvc *services.OrderService
	menu     *services.MenuService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewMemory()
	pool := workerpool.New(4)
	t.Cleanup(pool.Shutdown)

	users := repositories.NewUserRepository(st)
	items := repositories.NewItemRepository(st, pool)
	orders := repositories.NewOrderRepository(st)

	return &fixture{
		store:    st,
		users:    users,
		items:    items,
		orders:   orders,
		auth:     services.NewAuthService(users),
		orderSvc: services.NewOrderService(orders, items),
		menu:     services.NewMenuService(items),
	}
}

func (f *fixture) seedItem(t *testing.T, item models.Item) models.Item {
	t.Helper()
	item.ID = store.NewID()
	require.NoError(t, f.store.Create(context.Background(), store.Items, item))
	return item
}

func signUpParams(username string) services.SignUpParams {
	return services.SignUpParams{
		Username:    username,
		Password:    "correct-horse-battery",
		FirstName:   "Jane",
		LastName:    "Doe",
		PhoneNumber: "5551234567",
	}
}

func TestSignUpCreatesUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.SignUp(ctx, signUpParams("jane"))
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane", user.Username)
	assert.Equal(t, []string{models.RoleUser}, user.Roles)
	assert.NotEqual(t, "correct-horse-battery", user.Password, "password must be stored as a digest")
}

func TestSignUpDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.SignUp(ctx, signUpParams("jane"))
	require.NoError(t, err)

	_, err = f.auth.SignUp(ctx, signUpParams("jane"))
	assert.True(t, faults.Is(err, faults.CodeConflict), "expected CONFLICT, got %v", err)
}

func TestSignUpStripsPrivilegedRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	params := signUpParams("mallory")
	params.Roles = []string{models.RoleAdmin, models.RoleSuperAdmin, models.RoleUser}

	user, err := f.auth.SignUp(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleUser}, user.Roles)
}

func TestLogInIssuesVerifiableToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.auth.SignUp(ctx, signUpParams("jane"))
	require.NoError(t, err)

	payload, err := f.auth.LogIn(ctx, "jane", "correct-horse-battery")
	require.NoError(t, err)
	require.NotNil(t, payload.User)
	assert.Equal(t, created.ID, payload.User.ID)

	claims, err := auth.VerifyToken(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.Subject)
	assert.Equal(t, []string{models.RoleUser}, claims.Roles)
}

func TestLogInFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.SignUp(ctx, signUpParams("jane"))
	require.NoError(t, err)

	_, unknownErr := f.auth.LogIn(ctx, "nobody", "whatever-pass")
	_, wrongErr := f.auth.LogIn(ctx, "jane", "wrong-password")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, faults.Is(unknownErr, faults.CodeUnauthenticated))
	assert.True(t, faults.Is(wrongErr, faults.CodeUnauthenticated))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error(),
		"unknown username and wrong password must read identically")
}
