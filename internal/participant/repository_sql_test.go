package participant

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wichananm65/participant-registry/internal/infrastructure/database"
)

var participantColumns = []string{"participant_id", "email", "first_name", "last_name", "phone", "registration"}

func TestSQLRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db, database.MySQL)

	rows := sqlmock.NewRows(participantColumns).
		AddRow(1, "a@b.com", "A", "B", "(123) 456-7890", "2024").
		AddRow(2, nil, "C", nil, nil, nil)
	mock.ExpectQuery("SELECT participant_id, email, first_name, last_name, phone, registration\\s+FROM participants").
		WillReturnRows(rows)

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(all))
	}
	if all[1].Email != "" || all[1].FirstName != "C" {
		t.Fatalf("NULL columns should read as empty strings: %+v", all[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db, database.MySQL)

	mock.ExpectQuery("WHERE participant_id = \\?").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(participantColumns))

	_, found, err := repo.GetByID(context.Background(), 9)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_CreateMySQLUsesLastInsertID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db, database.MySQL)

	mock.ExpectExec("INSERT INTO participants").
		WithArgs("a@b.com", "A", "B", "1234567890", "2024").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), Participant{Email: "a@b.com", FirstName: "A", LastName: "B", Phone: "1234567890", Registration: "2024"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_CreatePostgresUsesReturning(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db, database.Postgres)

	mock.ExpectQuery("VALUES \\(\\$1, \\$2, \\$3, \\$4, \\$5\\)\\s+RETURNING participant_id").
		WithArgs("a@b.com", "A", "B", "1234567890", "2024").
		WillReturnRows(sqlmock.NewRows([]string{"participant_id"}).AddRow(7))

	id, err := repo.Create(context.Background(), Participant{Email: "a@b.com", FirstName: "A", LastName: "B", Phone: "1234567890", Registration: "2024"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_UpdateIgnoresRowsAffected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db, database.Postgres)

	mock.ExpectExec("UPDATE participants\\s+SET email = \\$1, first_name = \\$2, last_name = \\$3, phone = \\$4, registration = \\$5\\s+WHERE participant_id = \\$6").
		WithArgs("e", "f", "l", "p", "r", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), 404, Participant{Email: "e", FirstName: "f", LastName: "l", Phone: "p", Registration: "r"}); err != nil {
		t.Fatalf("update of missing row should succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_DeletePropagatesDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewSQLRepository(db, database.MySQL)

	driverErr := errors.New("Error 1146 (42S02): Table 'registry.participants' doesn't exist")
	mock.ExpectExec("DELETE FROM participants WHERE participant_id = \\?").WithArgs(int64(1)).WillReturnError(driverErr)

	err = repo.Delete(context.Background(), 1)
	if err == nil || err.Error() != driverErr.Error() {
		t.Fatalf("expected raw driver error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLRepository_SQLiteRoundTrip(t *testing.T) {
	opts := database.Options{Dialect: database.SQLite, DSN: filepath.Join(t.TempDir(), "participants.db")}
	if err := database.Migrate(opts, database.Up); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := NewSQLRepository(db, database.SQLite)

	in := Participant{Email: "a@b.com", FirstName: "A", LastName: "B", Phone: "1234567890", Registration: "2024"}
	id, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, found, err := repo.GetByID(ctx, id)
	if err != nil || !found {
		t.Fatalf("get after create: found=%v err=%v", found, err)
	}
	in.ID = id
	if got != in {
		t.Fatalf("expected %+v, got %+v", in, got)
	}

	upd := Participant{Email: "c@d.com", FirstName: "C", LastName: "B", Phone: "1234567890", Registration: "2025"}
	if err := repo.Update(ctx, id, upd); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _, _ = repo.GetByID(ctx, id)
	upd.ID = id
	if got != upd {
		t.Fatalf("expected %+v after update, got %+v", upd, got)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := repo.GetByID(ctx, id); found {
		t.Fatalf("participant %d still present after delete", id)
	}
}

func TestSQLRepository_SQLiteConcurrentCreatesGetUniqueIDs(t *testing.T) {
	opts := database.Options{Dialect: database.SQLite, DSN: filepath.Join(t.TempDir(), "participants.db")}
	if err := database.Migrate(opts, database.Up); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	repo := NewSQLRepository(db, database.SQLite)
	checkConcurrentCreates(t, repo, 32)

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 32 {
		t.Fatalf("expected 32 rows, got %d", len(all))
	}
}
