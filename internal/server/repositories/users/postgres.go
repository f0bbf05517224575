// Package users provides the PostgreSQL-backed repository for application
// user profiles. Rows are created by the hosted identity service; this
// repository reads them and updates profile fields, nothing else.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/timebank/internal/arrayx"
	"github.com/dmitrijs2005/timebank/internal/common"
	"github.com/dmitrijs2005/timebank/internal/dbx"
	"github.com/dmitrijs2005/timebank/internal/server/models"
)

const userColumns = `id, email, name, picture, skills, location, availability, verified, time_credits, created_at`

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var skills sql.NullString

	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Picture, &skills,
		&user.Location, &user.Availability, &user.Verified, &user.TimeCredits, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	user.Skills = arrayx.Decode(skills.String)
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// UpdateProfile applies only the fields present in upd and returns the
// updated row. Empty updates are the caller's problem and are rejected
// here with ErrorNoFields as a backstop.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, upd *models.ProfileUpdate) (*models.User, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Skills != nil {
		add("skills", arrayx.Encode(upd.Skills))
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Availability != nil {
		add("availability", *upd.Availability)
	}

	if len(set) == 0 {
		return nil, common.ErrorNoFields
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(set, ", "), len(args))

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
