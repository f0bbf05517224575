package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timebank/internal/common"
	"github.com/dmitrijs2005/timebank/internal/dbx"
	"github.com/dmitrijs2005/timebank/internal/logging"
	"github.com/dmitrijs2005/timebank/internal/server/models"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	minTaskDuration = 15
	maxTaskDuration = 60

	// listLimit caps the public task listing; there is no pagination.
	listLimit = 100
)

// TaskService enforces the task lifecycle: open -> assigned -> validated or
// needs_review. Credit movement happens exactly once, inside Validate, via
// the ledger repository.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	evidence    EvidenceChecker
	logger      logging.Logger
}

// NewTaskService constructs a TaskService using repositories and the
// evidence-checking collaborator.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, evidence EvidenceChecker, logger logging.Logger) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		evidence:    evidence,
		logger:      logger,
	}
}

// Create validates the payload, stamps id/creator/status and persists the
// task. For "request" tasks the creator's balance must cover the offered
// credits at creation time; the actual debit only happens at validation,
// so the balance may drift in between (see the ledger function, which
// re-checks before moving credits).
func (s *TaskService) Create(ctx context.Context, creator *models.User, in *models.TaskCreate) (*models.Task, error) {
	if in.Duration < minTaskDuration || in.Duration > maxTaskDuration {
		return nil, common.ErrorInvalidDuration
	}

	if in.TaskType != models.TaskTypeOffer && in.TaskType != models.TaskTypeRequest {
		return nil, common.ErrorInvalidTaskType
	}

	if in.TaskType == models.TaskTypeRequest && creator.TimeCredits < in.CreditsOffered {
		return nil, common.ErrorInsufficientCredits
	}

	skills := in.SkillsRequired
	if skills == nil {
		skills = []string{}
	}

	task := &models.Task{
		ID:             uuid.New().String(),
		Title:          in.Title,
		Description:    in.Description,
		Duration:       in.Duration,
		CreditsOffered: in.CreditsOffered,
		TaskType:       in.TaskType,
		SkillsRequired: skills,
		Location:       in.Location,
		CreatedBy:      creator.ID,
		Status:         models.StatusOpen,
	}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return created, nil
}

// List returns up to 100 tasks, newest first. An empty status filters for
// open tasks; task_type "all" disables the type filter.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error) {
	if filter.Status == "" {
		filter.Status = models.StatusOpen
	}
	if filter.TaskType == "all" {
		filter.TaskType = ""
	}
	filter.Limit = listLimit

	result, err := s.repomanager.Tasks(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return result, nil
}

// ListMine returns every task the user created or claimed, newest first.
func (s *TaskService) ListMine(ctx context.Context, user *models.User) ([]*models.Task, error) {
	result, err := s.repomanager.Tasks(s.db).ListByParticipant(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return result, nil
}

// Assign claims an open task for the claimant. Creators can never claim
// their own task, whatever its status. The claim itself is a conditional
// update keyed on status = open, so two concurrent claims cannot both
// succeed: the loser gets ErrorNotAvailable.
func (s *TaskService) Assign(ctx context.Context, taskID string, claimant *models.User) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}

	if task.CreatedBy == claimant.ID {
		return nil, common.ErrorSelfAssignment
	}
	if task.Status != models.StatusOpen {
		return nil, common.ErrorNotAvailable
	}

	claimed, err := repo.Claim(ctx, taskID, claimant.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("error claiming task: %w", err)
	}

	return claimed, nil
}

// Update applies a partial update on behalf of the task's creator or
// assignee; everyone else is ErrorForbidden.
func (s *TaskService) Update(ctx context.Context, taskID string, actor *models.User, upd *models.TaskUpdate) (*models.Task, error) {
	if upd.Empty() {
		return nil, common.ErrorNoFields
	}

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}

	if actor.ID != task.CreatedBy && (task.AssignedTo == nil || actor.ID != *task.AssignedTo) {
		return nil, common.ErrorForbidden
	}

	if upd.AssignedTo != nil && *upd.AssignedTo == task.CreatedBy {
		return nil, common.ErrorSelfAssignment
	}

	updated, err := repo.Update(ctx, taskID, upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return updated, nil
}

// Validate runs the evidence check on an assigned task with both photos
// present. A valid outcome transfers the offered credits from creator to
// assignee and marks the task validated; an invalid outcome parks it in
// needs_review with no transfer. Transfer and status write share one
// transaction, transfer first, so a failure of either leaves the task
// assigned and the credits unmoved: the transfer can never be repeated for
// a task that failed to finalize. The outcome is persisted either way.
func (s *TaskService) Validate(ctx context.Context, taskID string, actor *models.User) (*models.ValidationResult, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}

	if task.BeforePhoto == nil || *task.BeforePhoto == "" || task.AfterPhoto == nil || *task.AfterPhoto == "" {
		return nil, common.ErrorMissingEvidence
	}
	if task.Status != models.StatusAssigned {
		return nil, common.ErrorWrongStatus
	}
	// A partial update can set status = assigned without an assignee, so the
	// row is checked rather than trusted.
	if task.AssignedTo == nil || *task.AssignedTo == "" {
		return nil, common.ErrorWrongStatus
	}

	result, err := s.evidence.Check(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error checking evidence: %w", err)
	}

	if result.Valid {
		completedAt := time.Now().UTC()

		err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := s.repomanager.Ledger(tx).Transfer(ctx, task.CreatedBy, *task.AssignedTo, task.CreditsOffered); err != nil {
				return fmt.Errorf("error transferring credits: %w", err)
			}
			if _, err := s.repomanager.Tasks(tx).Finalize(ctx, taskID, models.StatusValidated, result, &completedAt); err != nil {
				return fmt.Errorf("error finalizing task: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.Info(ctx, "task validated", "task_id", taskID, "credits", task.CreditsOffered)
		return result, nil
	}

	if _, err := repo.Finalize(ctx, taskID, models.StatusNeedsReview, result, nil); err != nil {
		return nil, fmt.Errorf("error finalizing task: %w", err)
	}

	s.logger.Info(ctx, "task needs review", "task_id", taskID, "reason", result.Reason)
	return result, nil
}
