package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/piciu1221/firesignal/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func stargardAlarm() models.Alarm {
	return models.Alarm{
		City:        "Stargard",
		Street:      "Wyszynskiego 10",
		Description: "Flames visible from the upper floors.",
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm over sqlmock: %v", err)
	}

	return gdb, mock
}

func TestFirefightersByDepartmentsQuery(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := NewStore(gdb)

	rows := sqlmock.NewRows([]string{"id", "department_id", "name", "username"}).
		AddRow(1, 1, "Alice", "alice").
		AddRow(2, 2, "Bob", "bob")

	mock.ExpectQuery(`SELECT \* FROM "firefighters" WHERE department_id IN`).
		WillReturnRows(rows)

	firefighters, err := store.FirefightersByDepartments(context.Background(), []uint{1, 2})

	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(firefighters) != 2 {
		t.Fatalf("got %d firefighters, want 2", len(firefighters))
	}
	if firefighters[0].Username != "alice" || firefighters[1].Username != "bob" {
		t.Errorf("unexpected rows: %+v", firefighters)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateAssignmentsSkipsEmptyBatch(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := NewStore(gdb)

	if err := store.CreateAssignments(context.Background(), nil); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no SQL should have been issued: %v", err)
	}
}

func TestTransactRollsBackOnAlarmInsertFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := NewStore(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "alarms"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Transact(context.Background(), func(tx Store) error {
		alarm := stargardAlarm()
		return tx.CreateAlarm(context.Background(), &alarm)
	})

	if err == nil {
		t.Fatal("expected insert failure to propagate")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTransactCommitsAndAssignsAlarmID(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := NewStore(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "alarms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, time.Now()))
	mock.ExpectCommit()

	alarm := stargardAlarm()

	err := store.Transact(context.Background(), func(tx Store) error {
		return tx.CreateAlarm(context.Background(), &alarm)
	})

	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
	if alarm.ID != 42 {
		t.Errorf("alarm ID = %d, want the persistence-assigned 42", alarm.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
