package repositories

import (
	"database/sql"
	"strings"

	intconfig "brooksportal/internal/config"
	intdb "brooksportal/internal/db"
	"brooksportal/internal/domain/models"
)

const bookingColumns = `
	id,
	COALESCE(client_name,''),
	COALESCE(client_phone,''),
	COALESCE(client_email,''),
	COALESCE(job_address,''),
	COALESCE(postcode,''),
	COALESCE(job_type,''),
	COALESCE(tank_size,''),
	COALESCE(waste_type,''),
	COALESCE(portaloo_numbers,'[]'),
	COALESCE(portaloo_colour,''),
	COALESCE(special_notes,''),
	COALESCE(DATE_FORMAT(dropoff_date,'%Y-%m-%d'),''),
	COALESCE(DATE_FORMAT(pickup_date,'%Y-%m-%d'),''),
	COALESCE(DATE_FORMAT(service_date,'%Y-%m-%d'),''),
	COALESCE(assigned_driver,'[]'),
	COALESCE(payment_status,''),
	COALESCE(payment_method,''),
	completed,
	COALESCE(DATE_FORMAT(completed_at,'%Y-%m-%d %H:%i:%s'),''),
	is_archived,
	COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	var portalooNumbers, assignedDriver intdb.StringList
	err := row.Scan(
		&b.ID,
		&b.ClientName,
		&b.ClientPhone,
		&b.ClientEmail,
		&b.JobAddress,
		&b.Postcode,
		&b.JobType,
		&b.TankSize,
		&b.WasteType,
		&portalooNumbers,
		&b.PortalooColour,
		&b.SpecialNotes,
		&b.DropoffDate,
		&b.PickupDate,
		&b.ServiceDate,
		&assignedDriver,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.Completed,
		&b.CompletedAt,
		&b.IsArchived,
		&b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.PortalooNumbers = portalooNumbers
	b.AssignedDriver = assignedDriver
	return b, nil
}

func (r BookingRepository) Insert(in models.BookingInput) (int64, error) {
	numbers, err := intdb.StringList(in.PortalooNumbers).Value()
	if err != nil {
		return 0, err
	}
	drivers, err := intdb.StringList(in.AssignedDriver).Value()
	if err != nil {
		return 0, err
	}

	res, err := r.db().Exec(`
		INSERT INTO bookings
			(client_name, client_phone, client_email, job_address, postcode,
			 job_type, tank_size, waste_type, portaloo_numbers, portaloo_colour,
			 special_notes, dropoff_date, pickup_date, service_date,
			 assigned_driver, payment_status, payment_method,
			 completed, is_archived, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,0,0,NOW())`,
		in.ClientName,
		in.ClientPhone,
		intdb.NullIfEmpty(in.ClientEmail),
		intdb.NullIfEmpty(in.JobAddress),
		intdb.NullIfEmpty(in.Postcode),
		in.JobType,
		intdb.NullIfEmpty(in.TankSize),
		intdb.NullIfEmpty(in.WasteType),
		numbers,
		intdb.NullIfEmpty(in.PortalooColour),
		intdb.NullIfEmpty(in.SpecialNotes),
		intdb.NullIfEmpty(in.DropoffDate),
		intdb.NullIfEmpty(in.PickupDate),
		intdb.NullIfEmpty(in.ServiceDate),
		drivers,
		intdb.NullIfEmpty(in.PaymentStatus),
		intdb.NullIfEmpty(in.PaymentMethod),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, sql.ErrNoRows
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

// Update applies only the fields present on the patch. The id and created_at
// columns are never touched.
func (r BookingRepository) Update(id int64, patch models.BookingUpdate) error {
	if id <= 0 {
		return sql.ErrNoRows
	}

	sets := []string{}
	args := []any{}
	set := func(column string, val any) {
		sets = append(sets, column+"=?")
		args = append(args, val)
	}

	if patch.ClientName != nil {
		set("client_name", *patch.ClientName)
	}
	if patch.ClientPhone != nil {
		set("client_phone", *patch.ClientPhone)
	}
	if patch.ClientEmail != nil {
		set("client_email", intdb.NullIfEmpty(*patch.ClientEmail))
	}
	if patch.JobAddress != nil {
		set("job_address", intdb.NullIfEmpty(*patch.JobAddress))
	}
	if patch.Postcode != nil {
		set("postcode", intdb.NullIfEmpty(*patch.Postcode))
	}
	if patch.JobType != nil {
		set("job_type", *patch.JobType)
	}
	if patch.TankSize != nil {
		set("tank_size", intdb.NullIfEmpty(*patch.TankSize))
	}
	if patch.WasteType != nil {
		set("waste_type", intdb.NullIfEmpty(*patch.WasteType))
	}
	if patch.PortalooNumbers != nil {
		v, err := intdb.StringList(*patch.PortalooNumbers).Value()
		if err != nil {
			return err
		}
		set("portaloo_numbers", v)
	}
	if patch.PortalooColour != nil {
		set("portaloo_colour", intdb.NullIfEmpty(*patch.PortalooColour))
	}
	if patch.SpecialNotes != nil {
		set("special_notes", intdb.NullIfEmpty(*patch.SpecialNotes))
	}
	if patch.DropoffDate != nil {
		set("dropoff_date", intdb.NullIfEmpty(*patch.DropoffDate))
	}
	if patch.PickupDate != nil {
		set("pickup_date", intdb.NullIfEmpty(*patch.PickupDate))
	}
	if patch.ServiceDate != nil {
		set("service_date", intdb.NullIfEmpty(*patch.ServiceDate))
	}
	if patch.AssignedDriver != nil {
		v, err := intdb.StringList(*patch.AssignedDriver).Value()
		if err != nil {
			return err
		}
		set("assigned_driver", v)
	}
	if patch.PaymentStatus != nil {
		set("payment_status", intdb.NullIfEmpty(*patch.PaymentStatus))
	}
	if patch.PaymentMethod != nil {
		set("payment_method", intdb.NullIfEmpty(*patch.PaymentMethod))
	}

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

// MarkComplete stamps completed/completed_at once. Returns false when the
// booking was already completed (the stamp is left untouched).
func (r BookingRepository) MarkComplete(id int64) (bool, error) {
	res, err := r.db().Exec(
		`UPDATE bookings SET completed=1, completed_at=NOW() WHERE id=? AND completed=0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Archive soft-deletes the booking. The row and its history stay in place.
func (r BookingRepository) Archive(id int64) error {
	_, err := r.db().Exec(`UPDATE bookings SET is_archived=1 WHERE id=?`, id)
	return err
}

// ListByArchived returns the active or the archived view, newest first.
func (r BookingRepository) ListByArchived(archived bool) ([]models.Booking, error) {
	rows, err := r.db().Query(
		`SELECT `+bookingColumns+` FROM bookings WHERE is_archived=? ORDER BY created_at DESC`,
		archived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
