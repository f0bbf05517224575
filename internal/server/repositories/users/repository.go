package users

import (
	"context"

	"github.com/dmitrijs2005/timebank/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd *models.ProfileUpdate) (*models.User, error)
}
