package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrijs2005/timebank/internal/dbx"
	"github.com/dmitrijs2005/timebank/internal/logging"
	"github.com/dmitrijs2005/timebank/internal/server/models"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/users"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func strptr(s string) *string { return &s }

// --- fake repositories ---

type fakeUsersRepo struct {
	getOut *models.User
	getErr error

	updateOut *models.User
	updateErr error
	updateIn  *models.ProfileUpdate
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, id string, upd *models.ProfileUpdate) (*models.User, error) {
	f.updateIn = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

type fakeTasksRepo struct {
	createOut *models.Task
	createErr error
	createIn  *models.Task

	getOut *models.Task
	getErr error

	listOut    []*models.Task
	listErr    error
	listFilter models.TaskFilter

	mineOut []*models.Task
	mineErr error

	updateOut *models.Task
	updateErr error
	updateIn  *models.TaskUpdate

	claimOut    *models.Task
	claimErr    error
	claimUserID string

	finalizeOut         *models.Task
	finalizeErr         error
	finalizeStatus      string
	finalizeResult      *models.ValidationResult
	finalizeCompletedAt *time.Time
	finalizeCalls       int
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.createIn = task
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeTasksRepo) List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error) {
	f.listFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTasksRepo) ListByParticipant(ctx context.Context, userID string) ([]*models.Task, error) {
	if f.mineErr != nil {
		return nil, f.mineErr
	}
	return f.mineOut, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, id string, upd *models.TaskUpdate) (*models.Task, error) {
	f.updateIn = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeTasksRepo) Claim(ctx context.Context, id string, userID string) (*models.Task, error) {
	f.claimUserID = userID
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return f.claimOut, nil
}

func (f *fakeTasksRepo) Finalize(ctx context.Context, id string, status string, result *models.ValidationResult, completedAt *time.Time) (*models.Task, error) {
	f.finalizeCalls++
	f.finalizeStatus = status
	f.finalizeResult = result
	f.finalizeCompletedAt = completedAt
	if f.finalizeErr != nil {
		return nil, f.finalizeErr
	}
	return f.finalizeOut, nil
}

type fakeLedgerRepo struct {
	transferErr    error
	transferCalls  int
	transferSender string
	transferRecv   string
	transferAmount int
}

func (f *fakeLedgerRepo) Transfer(ctx context.Context, senderID string, receiverID string, amount int) error {
	f.transferCalls++
	f.transferSender = senderID
	f.transferRecv = receiverID
	f.transferAmount = amount
	return f.transferErr
}

// --- fake repository manager ---

type fakeRepoManager struct {
	usersRepo  users.Repository
	tasksRepo  tasks.Repository
	ledgerRepo ledger.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository   { return f.usersRepo }
func (f *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository   { return f.tasksRepo }
func (f *fakeRepoManager) Ledger(dbx.DBTX) ledger.Repository { return f.ledgerRepo }

// --- fake identity provider and evidence checker ---

type fakeIdentity struct {
	subject string
	err     error
}

func (f *fakeIdentity) Verify(ctx context.Context, credential string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.subject, nil
}

type fakeEvidenceChecker struct {
	result *models.ValidationResult
	err    error
}

func (f *fakeEvidenceChecker) Check(ctx context.Context, task *models.Task) (*models.ValidationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
