// Package services contains server-side business logic. This file implements
// UserService: resolving a bearer credential to an application user profile
// and applying partial profile updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timebank/internal/common"
	"github.com/dmitrijs2005/timebank/internal/logging"
	"github.com/dmitrijs2005/timebank/internal/server/models"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/repomanager"
)

// IdentityProvider verifies a bearer credential against the external
// identity provider and returns the provider-confirmed subject id.
type IdentityProvider interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// UserService resolves credentials to user profiles and updates them.
// User rows are owned by the hosted identity service: there is no Create
// or Delete here on purpose.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	identity    IdentityProvider
	logger      logging.Logger
}

// NewUserService constructs a UserService using repositories and the
// identity provider client.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, identity IdentityProvider, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		identity:    identity,
		logger:      logger,
	}
}

// Resolve maps a bearer credential to an application user. Verification
// failures are logged and surface as ErrorUnauthenticated; a verified
// identity without a profile row is ErrorProfileNotFound — an inconsistent
// state, not a security failure.
func (s *UserService) Resolve(ctx context.Context, credential string) (*models.User, error) {
	if credential == "" {
		return nil, common.ErrorUnauthenticated
	}

	subject, err := s.identity.Verify(ctx, credential)
	if err != nil {
		s.logger.Warn(ctx, "credential verification failed", "error", err.Error())
		return nil, common.ErrorUnauthenticated
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorProfileNotFound
		}
		return nil, fmt.Errorf("error loading user profile: %w", err)
	}

	return user, nil
}

// UpdateProfile applies a partial profile update for the given user and
// returns the updated profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd *models.ProfileUpdate) (*models.User, error) {
	if upd.Empty() {
		return nil, common.ErrorNoFields
	}

	user, err := s.repomanager.Users(s.db).UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorNoFields) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating user profile: %w", err)
	}

	return user, nil
}
