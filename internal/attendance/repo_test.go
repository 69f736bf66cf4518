package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"hrsystem/internal/store"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func strPtr(s string) *string { return &s }

func TestRecordUpsert(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(3, "2026-08-30", strPtr("09:02:00"), pgxmock.AnyArg(), strPtr("HQ"),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(21))

	id, err := repo.Record(context.Background(), Upsert{
		EmployeeID:  3,
		Date:        "2026-08-30",
		CheckinTime: strPtr("09:02:00"),
		Location:    strPtr("HQ"),
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if id != 21 {
		t.Errorf("expected id 21, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordUnknownEmployee(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(999, "2026-08-30", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "attendance_employee_id_fkey"})

	_, err := repo.Record(context.Background(), Upsert{EmployeeID: 999, Date: "2026-08-30"})
	if !errors.Is(err, store.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestSetCheckoutNotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectExec("UPDATE attendance SET checkout_time").
		WithArgs(99, "18:00:00").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.SetCheckout(context.Background(), 99, "18:00:00"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersByEmployeeAndDate(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewRepository(mock)

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "employee_id", "date", "checkin_time", "checkout_time", "location", "fullname", "created_at"}).
		AddRow(21, 3, "2026-08-30", strPtr("09:02:00"), strPtr("18:00:00"), strPtr("HQ"), strPtr("Jane Doe"), now)

	mock.ExpectQuery("SELECT .+ FROM attendance").
		WithArgs(3, "2026-08-30").
		WillReturnRows(rows)

	employeeID := 3
	got, err := repo.List(context.Background(), Filter{EmployeeID: &employeeID, Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].ID != 21 || got[0].EmployeeID != 3 {
		t.Errorf("unexpected record: %+v", got[0])
	}
	if got[0].CheckoutTime == nil || *got[0].CheckoutTime != "18:00:00" {
		t.Errorf("expected checkout_time 18:00:00, got %v", got[0].CheckoutTime)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
