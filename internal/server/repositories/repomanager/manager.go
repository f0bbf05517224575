package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/timebank/internal/dbx"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Ledger(db dbx.DBTX) ledger.Repository
}
