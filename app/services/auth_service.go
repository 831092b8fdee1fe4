package services

import (
	"context"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/app/repositories"
	"github.com/shashiranjanraj/tavola/pkg/auth"
	"github.com/shashiranjanraj/tavola/pkg/collection"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/logger"
)

// AuthService implements sign-up and log-in on top of the user repository
// and the credential collaborator.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// SignUpParams is the validated argument bundle for SignUp.
type SignUpParams struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Roles       []string
}

// SignUp creates a new user. The username must be unique across all users.
// Privileged roles in the request are dropped: every sign-up yields a plain
// USER; admins are provisioned out-of-band by the seeder.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (*models.User, error) {
	existing, err := s.users.ByUsername(ctx, params.Username)
	if err != nil {
		logger.WithCtx(ctx).Error("sign-up lookup failed", "error", err)
		return nil, faults.Internal()
	}
	if existing != nil {
		return nil, faults.Conflict("Username is already taken")
	}

	digest, err := auth.HashPassword(params.Password)
	if err != nil {
		logger.WithCtx(ctx).Error("password hash failed", "error", err)
		return nil, faults.Internal()
	}

	roles := collection.Filter(params.Roles, func(r string) bool { return r == models.RoleUser })
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}

	user := &models.User{
		Roles:       roles,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Username:    params.Username,
		PhoneNumber: params.PhoneNumber,
		Password:    digest,
	}

	if err := s.users.Create(ctx, user); err != nil {
		logger.WithCtx(ctx).Error("sign-up create failed", "error", err)
		return nil, faults.Internal()
	}

	return s.freshRead(ctx, user.ID)
}

// LogIn verifies the credentials and issues a token. The failure message is
// identical for an unknown username and a wrong password.
func (s *AuthService) LogIn(ctx context.Context, username, password string) (*models.AuthPayload, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		logger.WithCtx(ctx).Error("log-in lookup failed", "error", err)
		return nil, faults.Internal()
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return nil, faults.Unauthenticated("Invalid username or password")
	}

	token, err := auth.IssueToken(user.ID, user.Roles)
	if err != nil {
		logger.WithCtx(ctx).Error("token issue failed", "error", err)
		return nil, faults.Internal()
	}

	return &models.AuthPayload{Token: token, User: user}, nil
}

// freshRead returns the user as a subsequent query would see it, so clients
// can immediately select nested relations of the just-created record.
func (s *AuthService) freshRead(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Error("sign-up read-back failed", "error", err)
		return nil, faults.Internal()
	}
	return user, nil
}
