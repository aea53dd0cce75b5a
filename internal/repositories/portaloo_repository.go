package repositories

import (
	"database/sql"
	"strings"

	intconfig "brooksportal/internal/config"
	intdb "brooksportal/internal/db"
	"brooksportal/internal/domain/models"
)

const portalooColumns = `
	id,
	COALESCE(status,''),
	price,
	COALESCE(DATE_FORMAT(rental_start_date,'%Y-%m-%d'),''),
	COALESCE(DATE_FORMAT(rental_end_date,'%Y-%m-%d'),''),
	COALESCE(location,''),
	COALESCE(notes,''),
	COALESCE(colour,''),
	COALESCE(paid_status,'')`

type PortalooRepository struct {
	DB *sql.DB
}

func (r PortalooRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanPortaloo(row rowScanner) (models.Portaloo, error) {
	var p models.Portaloo
	err := row.Scan(
		&p.ID,
		&p.Status,
		&p.Price,
		&p.RentalStartDate,
		&p.RentalEndDate,
		&p.Location,
		&p.Notes,
		&p.Colour,
		&p.PaidStatus,
	)
	if err != nil {
		return models.Portaloo{}, err
	}
	return p, nil
}

func (r PortalooRepository) Insert(p models.Portaloo) (int64, error) {
	var price any
	if p.Price.Valid {
		price = p.Price.Decimal.String()
	}
	res, err := r.db().Exec(`
		INSERT INTO portaloos
			(status, price, rental_start_date, rental_end_date, location, notes, colour, paid_status)
		VALUES (?,?,?,?,?,?,?,?)`,
		p.Status,
		price,
		intdb.NullIfEmpty(p.RentalStartDate),
		intdb.NullIfEmpty(p.RentalEndDate),
		intdb.NullIfEmpty(p.Location),
		intdb.NullIfEmpty(p.Notes),
		intdb.NullIfEmpty(p.Colour),
		intdb.NullIfEmpty(p.PaidStatus),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PortalooRepository) GetByID(id int64) (models.Portaloo, error) {
	if id <= 0 {
		return models.Portaloo{}, sql.ErrNoRows
	}
	row := r.db().QueryRow(`SELECT `+portalooColumns+` FROM portaloos WHERE id=? LIMIT 1`, id)
	return scanPortaloo(row)
}

// Update applies only the fields present on the patch. A status change and
// any forced field clearing travel in the same statement.
func (r PortalooRepository) Update(id int64, patch models.PortalooUpdate) error {
	if id <= 0 {
		return sql.ErrNoRows
	}

	sets := []string{}
	args := []any{}
	set := func(column string, val any) {
		sets = append(sets, column+"=?")
		args = append(args, val)
	}

	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.Price != nil {
		if patch.Price.Valid {
			set("price", patch.Price.Decimal.String())
		} else {
			set("price", nil)
		}
	}
	if patch.RentalStartDate != nil {
		set("rental_start_date", intdb.NullIfEmpty(*patch.RentalStartDate))
	}
	if patch.RentalEndDate != nil {
		set("rental_end_date", intdb.NullIfEmpty(*patch.RentalEndDate))
	}
	if patch.Location != nil {
		set("location", intdb.NullIfEmpty(*patch.Location))
	}
	if patch.Notes != nil {
		set("notes", intdb.NullIfEmpty(*patch.Notes))
	}
	if patch.Colour != nil {
		set("colour", intdb.NullIfEmpty(*patch.Colour))
	}
	if patch.PaidStatus != nil {
		set("paid_status", intdb.NullIfEmpty(*patch.PaidStatus))
	}

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE portaloos SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

func (r PortalooRepository) List() ([]models.Portaloo, error) {
	return r.query(`SELECT ` + portalooColumns + ` FROM portaloos ORDER BY id ASC`)
}

// EndingOn returns Rented units whose rental ends exactly on date.
func (r PortalooRepository) EndingOn(date string) ([]models.Portaloo, error) {
	return r.query(`SELECT `+portalooColumns+`
		FROM portaloos
		WHERE status=? AND rental_end_date=?
		ORDER BY id ASC`,
		models.StatusRented, date)
}

// EndingBetween returns Rented units with after < rental_end_date <= upTo,
// soonest first.
func (r PortalooRepository) EndingBetween(after, upTo string) ([]models.Portaloo, error) {
	return r.query(`SELECT `+portalooColumns+`
		FROM portaloos
		WHERE status=? AND rental_end_date > ? AND rental_end_date <= ?
		ORDER BY rental_end_date ASC`,
		models.StatusRented, after, upTo)
}

// ListByStatusAndColour returns units whose status is in statuses AND whose
// colour is in colours or unset. Empty slices mean no constraint on that
// attribute.
func (r PortalooRepository) ListByStatusAndColour(statuses, colours []string) ([]models.Portaloo, error) {
	where := []string{}
	args := []any{}

	if len(statuses) > 0 {
		ph := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
		where = append(where, "status IN ("+ph+")")
		for _, s := range statuses {
			args = append(args, s)
		}
	}
	if len(colours) > 0 {
		ph := strings.TrimSuffix(strings.Repeat("?,", len(colours)), ",")
		where = append(where, "(colour IN ("+ph+") OR colour IS NULL OR colour='')")
		for _, c := range colours {
			args = append(args, c)
		}
	}

	query := `SELECT ` + portalooColumns + ` FROM portaloos`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id ASC`
	return r.query(query, args...)
}

func (r PortalooRepository) query(query string, args ...any) ([]models.Portaloo, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Portaloo{}
	for rows.Next() {
		p, err := scanPortaloo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
