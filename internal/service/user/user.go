package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	"github.com/Alijeyrad/carepulse_backend/pkg/phone"
)

type Store interface {
	Create(ctx context.Context, u *repo.User) error
	Get(ctx context.Context, id string) (*repo.User, error)
}

type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*repo.User, error)
	Get(ctx context.Context, id string) (*repo.User, error)
}

type UserService struct {
	store     Store
	region    string
	authorize authorize.IAuthorization
}

// New builds the user service. region is the default for numbers written
// without a country code; authz may be nil.
func New(store Store, region string, authz authorize.IAuthorization) *UserService {
	if region == "" {
		region = phone.DefaultRegion
	}
	return &UserService{store: store, region: region, authorize: authz}
}

func (s *UserService) Create(ctx context.Context, req CreateRequest) (*repo.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: name, email and phone are required", ErrInvalidInput)
	}

	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return nil, ErrInvalidEmail
	}

	e164, err := phone.NormalizeE164(req.Phone, s.region)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	u := &repo.User{Name: req.Name, Email: req.Email, Phone: e164}
	if err := s.store.Create(ctx, u); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		slog.Error("user: create failed", "err", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.authorize != nil {
		if err := authorize.AssignUserSelfRole(ctx, s.authorize, u.ID.Hex()); err != nil {
			slog.Warn("user: assign self role failed", "user_id", u.ID.Hex(), "err", err)
		}
	}

	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*repo.User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}
