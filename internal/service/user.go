package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/util"
)

type UserService struct {
	Repo *repo.GormRepo
}

// ResolveSession records the sign-in of an authenticated identity and returns
// the stored user. Roles are never assigned here.
func (s *UserService) ResolveSession(ctx context.Context, id models.Identity) (*models.User, error) {
	if strings.TrimSpace(id.OpenID) == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrUnauthenticated)
	}
	return s.Repo.UpsertUser(ctx, &models.User{
		OpenID:      id.OpenID,
		Name:        id.Name,
		Email:       id.Email,
		LoginMethod: id.LoginMethod,
	}, false)
}

// BootstrapOwner makes sure the configured owner identity exists with the
// admin role. An empty open id disables the step.
func (s *UserService) BootstrapOwner(ctx context.Context, owner models.Identity) (*models.User, error) {
	l := logging.FromContext(ctx)
	if strings.TrimSpace(owner.OpenID) == "" {
		l.Warn("owner_bootstrap_skipped", "reason", "OWNER_OPEN_ID not set")
		return nil, nil
	}

	prev, err := s.Repo.GetUserByOpenID(ctx, owner.OpenID)
	if err != nil {
		return nil, err
	}

	u, err := s.Repo.UpsertUser(ctx, &models.User{
		OpenID:      owner.OpenID,
		Name:        owner.Name,
		Email:       owner.Email,
		LoginMethod: owner.LoginMethod,
		Role:        models.RoleAdmin,
	}, true)
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	l = l.With("user_id", u.ID, "open_id", u.OpenID, "users", total)
	switch {
	case prev == nil:
		l.Info("owner_created")
	case !prev.IsAdmin():
		l.Info("owner_promoted")
	default:
		l.Info("owner_refreshed")
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	p, err := page(limit, offset, util.MaxPageSize)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListUsers(ctx, p)
}
