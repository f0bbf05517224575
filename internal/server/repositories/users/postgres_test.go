package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/timebank/internal/common"
	"github.com/dmitrijs2005/timebank/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "name", "picture", "skills", "location",
		"availability", "verified", "time_credits", "created_at"})
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `SELECT\s+.*\s+FROM users WHERE id = \$1`

	rows := userRows().
		AddRow("u-1", "alice@example.com", "Alice", "", `{gardening,"dog walking"}`, "Riga", "evenings", true, 60, time.Now())
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "u-1" || got.Email != "alice@example.com" || got.TimeCredits != 60 {
		t.Fatalf("unexpected user: %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "gardening" || got.Skills[1] != "dog walking" {
		t.Fatalf("skills not decoded: %+v", got.Skills)
	}
}

func TestGetByID_NullSkills(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := userRows().
		AddRow("u-1", "alice@example.com", "Alice", "", nil, "", "", false, 60, time.Now())
	mock.ExpectQuery(`SELECT`).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Skills == nil || len(got.Skills) != 0 {
		t.Fatalf("expected empty non-nil skills, got %#v", got.Skills)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("u-1").WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func strptr(s string) *string { return &s }

func TestUpdateProfile_PartialFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `UPDATE users SET name = \$1, skills = \$2 WHERE id = \$3 RETURNING`

	rows := userRows().
		AddRow("u-1", "alice@example.com", "Alice B", "", `{cooking}`, "Riga", "", true, 60, time.Now())
	mock.ExpectQuery(q).WithArgs("Alice B", `{cooking}`, "u-1").WillReturnRows(rows)

	got, err := repo.UpdateProfile(context.Background(), "u-1", &models.ProfileUpdate{
		Name:   strptr("Alice B"),
		Skills: []string{"cooking"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if got.Name != "Alice B" || len(got.Skills) != 1 || got.Skills[0] != "cooking" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUpdateProfile_NoFields(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.UpdateProfile(context.Background(), "u-1", &models.ProfileUpdate{})
	if !errors.Is(err, common.ErrorNoFields) {
		t.Fatalf("want common.ErrorNoFields, got %v", err)
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE users SET`).WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateProfile(context.Background(), "ghost", &models.ProfileUpdate{Name: strptr("x")})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
