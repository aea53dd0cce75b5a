package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"

	"brooksportal/internal/domain"
	"brooksportal/internal/domain/models"
	"brooksportal/internal/repositories"
	"brooksportal/internal/storage"
	"brooksportal/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// WTNService creates and renders waste transfer notes. A note is written
// once per completed job and never edited afterwards.
type WTNService struct {
	Repo      repositories.WTNRepository
	Bookings  repositories.BookingRepository
	Store     storage.ObjectStore
	RequestID string
	Now       func() time.Time
}

func (s WTNService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateForBooking persists a note for the booking. A nil signature means no
// signature was captured (the admin ad-hoc path); a non-nil empty one is a
// rejected blank canvas. The upload must fully succeed before the row is
// written so a note can never reference a missing object.
func (s WTNService) CreateForBooking(bookingID int64, in models.WTNInput, signature []byte) (models.WasteTransferNote, error) {
	booking, err := s.Bookings.GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WasteTransferNote{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.WasteTransferNote{}, domain.PersistenceError{Msg: "failed to load booking", Err: err}
	}

	if signature != nil && len(signature) == 0 {
		return models.WasteTransferNote{}, domain.ValidationError{Field: "signature", Msg: "signature is empty"}
	}

	if in.ClientName == "" {
		in.ClientName = booking.ClientName
	}
	if in.DateCreated == "" {
		in.DateCreated = utils.FormatDate(s.now())
	} else if _, err := utils.ParseDate(in.DateCreated); err != nil {
		return models.WasteTransferNote{}, domain.ValidationError{Field: "date_created", Msg: "expected YYYY-MM-DD"}
	}

	signatureURL := ""
	if signature != nil {
		key := fmt.Sprintf("signature_%d_%d.png", bookingID, s.now().UnixMilli())
		url, err := s.Store.Upload(key, signature)
		if err != nil {
			return models.WasteTransferNote{}, domain.StorageError{Op: "upload", Err: err}
		}
		signatureURL = url
	}

	id, err := s.Repo.Insert(bookingID, in, signatureURL)
	if err != nil {
		if signatureURL != "" {
			// The stored image is now orphaned. It is inert without a
			// referencing row, so log it rather than attempt a rollback.
			utils.LogEvent(s.RequestID, "wtn", "orphaned_signature", signatureURL)
		}
		return models.WasteTransferNote{}, domain.PersistenceError{Msg: "failed to save waste transfer note", Err: err}
	}
	utils.LogEvent(s.RequestID, "wtn", "create",
		"id="+strconv.FormatInt(id, 10)+" booking_id="+strconv.FormatInt(bookingID, 10))

	note := models.WasteTransferNote{
		ID:                 id,
		BookingID:          bookingID,
		ClientName:         in.ClientName,
		DescriptionOfWaste: in.DescriptionOfWaste,
		Quantity:           in.Quantity,
		CarrierName:        in.CarrierName,
		CarrierRegNo:       in.CarrierRegNo,
		ProducerName:       in.ProducerName,
		ProducerAddress:    in.ProducerAddress,
		ReceiverName:       in.ReceiverName,
		ReceiverAddress:    in.ReceiverAddress,
		DateCreated:        in.DateCreated,
		Notes:              in.Notes,
		SignatureURL:       signatureURL,
	}
	return note, nil
}

// GetForBooking returns the booking's note when one exists. No note yet is a
// legitimate state, reported through the found flag rather than an error.
func (s WTNService) GetForBooking(bookingID int64) (models.WasteTransferNote, bool, error) {
	note, found, err := s.Repo.GetByBookingID(bookingID)
	if err != nil {
		return models.WasteTransferNote{}, false, domain.PersistenceError{Msg: "failed to load waste transfer note", Err: err}
	}
	return note, found, nil
}

// RenderDocument produces the printable PDF for a note. A signature-fetch
// failure never blocks the render; the document carries a placeholder line
// instead.
func (s WTNService) RenderDocument(note models.WasteTransferNote) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Waste Transfer Note", false)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "Waste Transfer Note", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)

	rows := []struct {
		label string
		value string
	}{
		{"Client name", note.ClientName},
		{"Description of waste", note.DescriptionOfWaste},
		{"Quantity", note.Quantity},
		{"Carrier name", note.CarrierName},
		{"Carrier reg no", note.CarrierRegNo},
		{"Producer name", note.ProducerName},
		{"Producer address", note.ProducerAddress},
		{"Receiver name", note.ReceiverName},
		{"Receiver address", note.ReceiverAddress},
		{"Date created", note.DateCreated},
		{"Notes", note.Notes},
	}

	boxTop := pdf.GetY()
	for _, row := range rows {
		y := pdf.GetY()
		pdf.Text(10, y+7, row.label+":")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(60, y+7, safeValue(row.value))
		pdf.SetFont("Helvetica", "", 12)

		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(10, y+10, pageWidth-10, y+10)
		pdf.SetY(y + 12)
	}
	pdf.SetDrawColor(100, 100, 100)
	pdf.Rect(8, boxTop-2, pageWidth-16, pdf.GetY()-boxTop+4, "D")
	pdf.Ln(8)

	s.renderSignature(pdf, note)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render waste transfer note: %w", err)
	}

	filename := fmt.Sprintf("waste_transfer_note_%d.pdf", note.BookingID)
	return buf.Bytes(), filename, nil
}

func (s WTNService) renderSignature(pdf *gofpdf.Fpdf, note models.WasteTransferNote) {
	y := pdf.GetY()

	if note.SignatureURL == "" {
		pdf.Text(10, y+7, "Signature: None provided")
		return
	}

	img, err := s.fetchSignature(note.SignatureURL)
	if err != nil {
		utils.LogEvent(s.RequestID, "wtn", "signature_fetch_failed", note.SignatureURL)
		pdf.Text(10, y+7, "Signature could not be loaded.")
		return
	}

	pdf.Text(10, y+7, "Signature:")
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(img))
	// fixed 60x30mm box, matching the portal's print layout
	pdf.ImageOptions("signature", 10, y+9, 60, 30, false, opts, 0, "")
}

func (s WTNService) fetchSignature(url string) ([]byte, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("no object store configured")
	}
	return s.Store.Fetch(path.Base(url))
}

func safeValue(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
