package services

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"brooksportal/internal/domain"
	"brooksportal/internal/domain/models"
	"brooksportal/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var wtnCols = []string{
	"id", "booking_id", "client_name", "description_of_waste", "quantity",
	"carrier_name", "carrier_reg_no", "producer_name", "producer_address",
	"receiver_name", "receiver_address", "date_created", "notes",
	"signature_url", "created_at",
}

type fakeStore struct {
	base       string
	objects    map[string][]byte
	uploadKeys []string
	failUpload bool
	failFetch  bool
}

func (f *fakeStore) Upload(key string, data []byte) (string, error) {
	if f.failUpload {
		return "", fmt.Errorf("bucket unavailable")
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = data
	f.uploadKeys = append(f.uploadKeys, key)
	return f.base + "/" + key, nil
}

func (f *fakeStore) Fetch(key string) ([]byte, error) {
	if f.failFetch {
		return nil, fmt.Errorf("object missing")
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("object missing")
	}
	return data, nil
}

func newWTNService(t *testing.T, store *fakeStore, now time.Time) (WTNService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := WTNService{
		Repo:     repositories.WTNRepository{DB: db},
		Bookings: repositories.BookingRepository{DB: db},
		Store:    store,
		Now:      func() time.Time { return now },
	}
	return svc, mock, func() { db.Close() }
}

func TestCreateNoteForUnknownBookingIsNotFound(t *testing.T) {
	svc, mock, done := newWTNService(t, &fakeStore{}, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := svc.CreateForBooking(99, models.WTNInput{}, nil)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCreateNoteRejectsEmptySignatureBeforeUpload(t *testing.T) {
	store := &fakeStore{base: "http://localhost:8080/files/signatures"}
	svc, mock, done := newWTNService(t, store, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WillReturnRows(bookingRow(7, false, ""))

	_, err := svc.CreateForBooking(7, models.WTNInput{}, []byte{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.uploadKeys) != 0 {
		t.Fatalf("blank signature was uploaded: %v", store.uploadKeys)
	}
	// no INSERT was expected either
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB calls: %v", err)
	}
}

func TestCreateNoteUploadsSignatureBeforeInsert(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	store := &fakeStore{base: "http://localhost:8080/files/signatures"}
	svc, mock, done := newWTNService(t, store, now)
	defer done()

	key := fmt.Sprintf("signature_7_%d.png", now.UnixMilli())
	url := store.base + "/" + key

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WillReturnRows(bookingRow(7, true, "2024-06-01 10:00:00"))
	mock.ExpectExec("INSERT INTO waste_transfer_notes").
		WithArgs(int64(7), "Acme Ltd", "General waste", "2 x 1100L",
			"Brooks Waste", "CBDU123456", "Acme Ltd", "1 High St, Haverfordwest",
			"SWW Recycling", "Unit 4, Milford Haven", "2024-06-01", nil, url).
		WillReturnResult(sqlmock.NewResult(12, 1))

	note, err := svc.CreateForBooking(7, models.WTNInput{
		DescriptionOfWaste: "General waste",
		Quantity:           "2 x 1100L",
		CarrierName:        "Brooks Waste",
		CarrierRegNo:       "CBDU123456",
		ProducerName:       "Acme Ltd",
		ProducerAddress:    "1 High St, Haverfordwest",
		ReceiverName:       "SWW Recycling",
		ReceiverAddress:    "Unit 4, Milford Haven",
	}, []byte{0x89, 0x50, 0x4e, 0x47})
	if err != nil {
		t.Fatalf("CreateForBooking error: %v", err)
	}
	if note.ID != 12 || note.SignatureURL != url {
		t.Fatalf("unexpected note: %+v", note)
	}
	// client name falls back to the booking's when the input leaves it blank
	if note.ClientName != "Acme Ltd" {
		t.Fatalf("client name not defaulted: %q", note.ClientName)
	}
	if len(store.uploadKeys) != 1 || store.uploadKeys[0] != key {
		t.Fatalf("unexpected upload keys: %v", store.uploadKeys)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateNoteUploadFailureSkipsInsert(t *testing.T) {
	store := &fakeStore{failUpload: true}
	svc, mock, done := newWTNService(t, store, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WillReturnRows(bookingRow(7, true, "2024-06-01 10:00:00"))

	_, err := svc.CreateForBooking(7, models.WTNInput{}, []byte{1})
	if !domain.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("insert ran despite failed upload: %v", err)
	}
}

func TestGetForBookingWithoutNote(t *testing.T) {
	svc, mock, done := newWTNService(t, &fakeStore{}, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM waste_transfer_notes WHERE booking_id=").
		WillReturnRows(sqlmock.NewRows(wtnCols))

	_, found, err := svc.GetForBooking(7)
	if err != nil {
		t.Fatalf("GetForBooking error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for booking with no note")
	}
}

func TestGetForBookingReturnsEarliestNote(t *testing.T) {
	svc, mock, done := newWTNService(t, &fakeStore{}, time.Now())
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM waste_transfer_notes WHERE booking_id=").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(wtnCols).AddRow(
			3, 7, "Acme Ltd", "General waste", "2 x 1100L",
			"Brooks Waste", "CBDU123456", "Acme Ltd", "1 High St",
			"SWW Recycling", "Unit 4", "2024-06-01", "",
			"http://localhost:8080/files/signatures/signature_7_1.png",
			"2024-06-01 10:00:00",
		))

	note, found, err := svc.GetForBooking(7)
	if err != nil || !found {
		t.Fatalf("GetForBooking: found=%v err=%v", found, err)
	}
	if note.ID != 3 || note.DescriptionOfWaste != "General waste" || note.CarrierRegNo != "CBDU123456" {
		t.Fatalf("unexpected note: %+v", note)
	}
}

func TestRenderDocumentWithoutSignature(t *testing.T) {
	svc := WTNService{}

	doc, filename, err := svc.RenderDocument(models.WasteTransferNote{
		BookingID:   7,
		ClientName:  "Acme Ltd",
		DateCreated: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("RenderDocument error: %v", err)
	}
	if filename != "waste_transfer_note_7.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestRenderDocumentSurvivesSignatureFetchFailure(t *testing.T) {
	svc := WTNService{Store: &fakeStore{failFetch: true}}

	doc, _, err := svc.RenderDocument(models.WasteTransferNote{
		BookingID:    7,
		ClientName:   "Acme Ltd",
		SignatureURL: "http://localhost:8080/files/signatures/signature_7_1.png",
	})
	if err != nil {
		t.Fatalf("RenderDocument error: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("expected a document despite the missing signature image")
	}
}
