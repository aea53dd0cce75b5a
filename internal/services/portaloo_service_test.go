package services

import (
	"testing"
	"time"

	"brooksportal/internal/domain"
	"brooksportal/internal/domain/models"
	"brooksportal/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var portalooCols = []string{
	"id", "status", "price", "rental_start_date", "rental_end_date",
	"location", "notes", "colour", "paid_status",
}

func rentedRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(portalooCols).AddRow(
		id, models.StatusRented, "120.00", "2024-05-01", "2024-06-03",
		"Haverfordwest site", "gate code 4411", "Blue", "Unpaid",
	)
}

func availableRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(portalooCols).AddRow(
		id, models.StatusAvailable, nil, "", "", "", "", "", "",
	)
}

func newPortalooService(t *testing.T, now time.Time) (PortalooService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := PortalooService{
		Repo: repositories.PortalooRepository{DB: db},
		Now:  func() time.Time { return now },
	}
	return svc, mock, func() { db.Close() }
}

func TestBookNonAvailableUnitFails(t *testing.T) {
	svc, mock, done := newPortalooService(t, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM portaloos WHERE id=").
		WillReturnRows(rentedRow(4))

	_, err := svc.Book(4, models.RentalInput{Location: "Tenby"})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid-state error, got %v", err)
	}
	// no UPDATE was expected; the unit must be untouched
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB calls: %v", err)
	}
}

func TestBookAvailableUnitSetsRented(t *testing.T) {
	svc, mock, done := newPortalooService(t, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM portaloos WHERE id=").
		WillReturnRows(availableRow(4))
	mock.ExpectExec("UPDATE portaloos SET").
		WithArgs(models.StatusRented, nil, "2024-05-01", "2024-06-03",
			"Haverfordwest site", nil, "Blue", "Unpaid", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM portaloos WHERE id=").
		WillReturnRows(rentedRow(4))

	out, err := svc.Book(4, models.RentalInput{
		RentalStartDate: "2024-05-01",
		RentalEndDate:   "2024-06-03",
		Location:        "Haverfordwest site",
		Colour:          "Blue",
		PaidStatus:      "Unpaid",
	})
	if err != nil {
		t.Fatalf("Book error: %v", err)
	}
	if out.Status != models.StatusRented {
		t.Fatalf("expected Rented, got %s", out.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRentedToAvailableClearsRentalFields(t *testing.T) {
	svc, mock, done := newPortalooService(t, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM portaloos WHERE id=").
		WillReturnRows(rentedRow(4))
	// every rental field is forced to NULL, whatever the caller sent
	mock.ExpectExec("UPDATE portaloos SET").
		WithArgs(models.StatusAvailable, nil, nil, nil, nil, nil, nil, nil, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM portaloos WHERE id=").
		WillReturnRows(availableRow(4))

	available := models.StatusAvailable
	keepLocation := "should be ignored"
	out, err := svc.Update(4, models.PortalooUpdate{
		Status:   &available,
		Location: &keepLocation,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if out.Location != "" || out.RentalEndDate != "" || out.Price.Valid {
		t.Fatalf("rental fields not cleared: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRentedToOutOfOrderKeepsRentalFields(t *testing.T) {
	svc, mock, done := newPortalooService(t, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM portaloos WHERE id=").
		WillReturnRows(rentedRow(4))
	mock.ExpectExec("UPDATE portaloos SET").
		WithArgs(models.StatusOutOfOrder, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM portaloos WHERE id=").
		WillReturnRows(sqlmock.NewRows(portalooCols).AddRow(
			4, models.StatusOutOfOrder, "120.00", "2024-05-01", "2024-06-03",
			"Haverfordwest site", "gate code 4411", "Blue", "Unpaid",
		))

	outOfOrder := models.StatusOutOfOrder
	out, err := svc.Update(4, models.PortalooUpdate{Status: &outOfOrder})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if out.Location == "" || out.RentalEndDate == "" {
		t.Fatalf("rental fields wrongly cleared: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEndingWindows(t *testing.T) {
	ref, _ := time.ParseInLocation("2006-01-02", "2024-06-01", time.Local)
	svc, mock, done := newPortalooService(t, ref)
	defer done()

	// today itself belongs to EndingToday
	mock.ExpectQuery("SELECT (.+) FROM portaloos").
		WithArgs(models.StatusRented, "2024-06-01").
		WillReturnRows(sqlmock.NewRows(portalooCols))
	if _, err := svc.EndingToday(); err != nil {
		t.Fatalf("EndingToday error: %v", err)
	}

	// the 2-day window is (2024-06-01, 2024-06-03]: 06-03 in, 06-01 and 06-04 out
	mock.ExpectQuery("SELECT (.+) FROM portaloos").
		WithArgs(models.StatusRented, "2024-06-01", "2024-06-03").
		WillReturnRows(rentedRow(4))
	out, err := svc.EndingWithin(2)
	if err != nil {
		t.Fatalf("EndingWithin error: %v", err)
	}
	if len(out) != 1 || out[0].RentalEndDate != "2024-06-03" {
		t.Fatalf("unexpected ending-soon result: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEndingWithinRejectsNonPositiveHorizon(t *testing.T) {
	svc, _, done := newPortalooService(t, time.Now())
	defer done()

	if _, err := svc.EndingWithin(0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListByStatusAndColourAdmitsUncolouredUnits(t *testing.T) {
	svc, mock, done := newPortalooService(t, time.Now())
	defer done()

	// a unit with no colour set passes any colour filter
	uncoloured := sqlmock.NewRows(portalooCols).
		AddRow(4, models.StatusAvailable, nil, "", "", "", "", "Blue", "").
		AddRow(9, models.StatusAvailable, nil, "", "", "", "", "", "")
	mock.ExpectQuery(`SELECT (.+) FROM portaloos WHERE status IN (.+) AND \(colour IN (.+) OR colour IS NULL OR colour=''\)`).
		WithArgs(models.StatusAvailable, "Blue").
		WillReturnRows(uncoloured)

	out, err := svc.ListByStatusAndColour([]string{models.StatusAvailable}, []string{"Blue"})
	if err != nil {
		t.Fatalf("ListByStatusAndColour error: %v", err)
	}
	if len(out) != 2 || out[1].Colour != "" {
		t.Fatalf("uncoloured unit filtered out: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListByStatusAndColourRejectsUnknownStatus(t *testing.T) {
	svc, _, done := newPortalooService(t, time.Now())
	defer done()

	if _, err := svc.ListByStatusAndColour([]string{"Broken"}, nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
