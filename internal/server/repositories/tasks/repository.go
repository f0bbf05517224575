package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/timebank/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error)
	ListByParticipant(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, id string, upd *models.TaskUpdate) (*models.Task, error)
	Claim(ctx context.Context, id string, userID string) (*models.Task, error)
	Finalize(ctx context.Context, id string, status string, result *models.ValidationResult, completedAt *time.Time) (*models.Task, error)
}
