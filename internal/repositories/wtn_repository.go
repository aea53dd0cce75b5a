package repositories

import (
	"database/sql"
	"errors"

	intconfig "brooksportal/internal/config"
	intdb "brooksportal/internal/db"
	"brooksportal/internal/domain/models"
)

const wtnColumns = `
	id,
	booking_id,
	COALESCE(client_name,''),
	COALESCE(description_of_waste,''),
	COALESCE(quantity,''),
	COALESCE(carrier_name,''),
	COALESCE(carrier_reg_no,''),
	COALESCE(producer_name,''),
	COALESCE(producer_address,''),
	COALESCE(receiver_name,''),
	COALESCE(receiver_address,''),
	COALESCE(DATE_FORMAT(date_created,'%Y-%m-%d'),''),
	COALESCE(notes,''),
	COALESCE(signature_url,''),
	COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

type WTNRepository struct {
	DB *sql.DB
}

func (r WTNRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanWTN(row rowScanner) (models.WasteTransferNote, error) {
	var n models.WasteTransferNote
	err := row.Scan(
		&n.ID,
		&n.BookingID,
		&n.ClientName,
		&n.DescriptionOfWaste,
		&n.Quantity,
		&n.CarrierName,
		&n.CarrierRegNo,
		&n.ProducerName,
		&n.ProducerAddress,
		&n.ReceiverName,
		&n.ReceiverAddress,
		&n.DateCreated,
		&n.Notes,
		&n.SignatureURL,
		&n.CreatedAt,
	)
	if err != nil {
		return models.WasteTransferNote{}, err
	}
	return n, nil
}

func (r WTNRepository) Insert(bookingID int64, in models.WTNInput, signatureURL string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO waste_transfer_notes
			(booking_id, client_name, description_of_waste, quantity,
			 carrier_name, carrier_reg_no, producer_name, producer_address,
			 receiver_name, receiver_address, date_created, notes,
			 signature_url, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		bookingID,
		intdb.NullIfEmpty(in.ClientName),
		intdb.NullIfEmpty(in.DescriptionOfWaste),
		intdb.NullIfEmpty(in.Quantity),
		intdb.NullIfEmpty(in.CarrierName),
		intdb.NullIfEmpty(in.CarrierRegNo),
		intdb.NullIfEmpty(in.ProducerName),
		intdb.NullIfEmpty(in.ProducerAddress),
		intdb.NullIfEmpty(in.ReceiverName),
		intdb.NullIfEmpty(in.ReceiverAddress),
		intdb.NullIfEmpty(in.DateCreated),
		intdb.NullIfEmpty(in.Notes),
		intdb.NullIfEmpty(signatureURL),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByBookingID returns the earliest note for the booking. A booking with
// no note yet is found=false with a nil error, not a failure.
func (r WTNRepository) GetByBookingID(bookingID int64) (models.WasteTransferNote, bool, error) {
	if bookingID <= 0 {
		return models.WasteTransferNote{}, false, nil
	}
	row := r.db().QueryRow(
		`SELECT `+wtnColumns+` FROM waste_transfer_notes WHERE booking_id=? ORDER BY id ASC LIMIT 1`,
		bookingID)
	n, err := scanWTN(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WasteTransferNote{}, false, nil
	}
	if err != nil {
		return models.WasteTransferNote{}, false, err
	}
	return n, true, nil
}
