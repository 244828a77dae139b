package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidRole        = validate.New("unknown role")
)

var validRoles = map[string]bool{
	auth.RoleAdmin:        true,
	auth.RolePhysician:    true,
	auth.RoleNurse:        true,
	auth.RoleReceptionist: true,
	auth.RoleLabTech:      true,
	auth.RolePharmacist:   true,
	auth.RoleBillingClerk: true,
}

type Service struct {
	repo   Repository
	issuer *auth.TokenIssuer
}

func NewService(repo Repository, issuer *auth.TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Register creates a staff account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password, fullName, role string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validate.New("a valid email is required")
	}
	if !validRoles[role] {
		return nil, ErrInvalidRole
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and mints an access token. Lookup failure and
// password mismatch return the same error to avoid leaking which emails
// exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if db.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Active {
		return "", nil, ErrAccountDisabled
	}
	token, err := s.issuer.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// FetchUser adapts the repository to the auth middleware's per-request
// account lookup.
func (s *Service) FetchUser(ctx context.Context, id uuid.UUID) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.UserInfo{ID: u.ID, Role: u.Role, Active: u.Active}, nil
}
