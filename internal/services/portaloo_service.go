package services

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"brooksportal/internal/domain"
	"brooksportal/internal/domain/models"
	"brooksportal/internal/repositories"
	"brooksportal/internal/utils"

	"github.com/shopspring/decimal"
)

// PortalooService owns the unit state machine. Status is authoritative:
// Available units carry no rental fields, and only Book moves a unit to
// Rented.
type PortalooService struct {
	Repo      repositories.PortalooRepository
	RequestID string
	Now       func() time.Time
}

func (s PortalooService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s PortalooService) Add(p models.Portaloo) (models.Portaloo, error) {
	if p.Status == "" {
		p.Status = models.StatusAvailable
	}
	if !models.ValidStatus(p.Status) {
		return models.Portaloo{}, domain.ValidationError{Field: "status", Msg: "unknown status " + p.Status}
	}
	if err := validateRentalDates(p.RentalStartDate, p.RentalEndDate); err != nil {
		return models.Portaloo{}, err
	}

	id, err := s.Repo.Insert(p)
	if err != nil {
		return models.Portaloo{}, domain.PersistenceError{Msg: "failed to add portaloo", Err: err}
	}
	utils.LogEvent(s.RequestID, "portaloo", "add", "id="+strconv.FormatInt(id, 10))
	return s.get(id)
}

// Book rents out an Available unit. Any other starting status is refused and
// the unit is left untouched.
func (s PortalooService) Book(unitID int64, in models.RentalInput) (models.Portaloo, error) {
	unit, err := s.get(unitID)
	if err != nil {
		return models.Portaloo{}, err
	}
	if unit.Status != models.StatusAvailable {
		return models.Portaloo{}, domain.InvalidStateError{
			Resource: "portaloo",
			Msg:      "unit #" + strconv.FormatInt(unitID, 10) + " is " + unit.Status + ", not Available",
		}
	}
	if err := validateRentalDates(in.RentalStartDate, in.RentalEndDate); err != nil {
		return models.Portaloo{}, err
	}

	rented := models.StatusRented
	patch := models.PortalooUpdate{
		Status:          &rented,
		Price:           &in.Price,
		RentalStartDate: &in.RentalStartDate,
		RentalEndDate:   &in.RentalEndDate,
		Location:        &in.Location,
		Notes:           &in.Notes,
		Colour:          &in.Colour,
		PaidStatus:      &in.PaidStatus,
	}
	if err := s.Repo.Update(unitID, patch); err != nil {
		return models.Portaloo{}, domain.PersistenceError{Msg: "failed to book portaloo", Err: err}
	}
	utils.LogEvent(s.RequestID, "portaloo", "book", "id="+strconv.FormatInt(unitID, 10))
	return s.get(unitID)
}

// Update edits unit fields. Moving a Rented unit back to Available clears
// every rental field in the same statement, whatever the caller supplied for
// them; the front end confirms this with the operator before calling. Any
// other status change leaves rental fields as given.
func (s PortalooService) Update(unitID int64, patch models.PortalooUpdate) (models.Portaloo, error) {
	unit, err := s.get(unitID)
	if err != nil {
		return models.Portaloo{}, err
	}

	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return models.Portaloo{}, domain.ValidationError{Field: "status", Msg: "unknown status " + *patch.Status}
	}
	var start, end string
	if patch.RentalStartDate != nil {
		start = *patch.RentalStartDate
	}
	if patch.RentalEndDate != nil {
		end = *patch.RentalEndDate
	}
	if err := validateRentalDates(start, end); err != nil {
		return models.Portaloo{}, err
	}

	if patch.Status != nil &&
		unit.Status == models.StatusRented && *patch.Status == models.StatusAvailable {
		patch = clearedRentalPatch()
	}

	if err := s.Repo.Update(unitID, patch); err != nil {
		return models.Portaloo{}, domain.PersistenceError{Msg: "failed to update portaloo", Err: err}
	}
	utils.LogEvent(s.RequestID, "portaloo", "update", "id="+strconv.FormatInt(unitID, 10))
	return s.get(unitID)
}

func (s PortalooService) List() ([]models.Portaloo, error) {
	out, err := s.Repo.List()
	if err != nil {
		return nil, domain.PersistenceError{Msg: "failed to list portaloos", Err: err}
	}
	return out, nil
}

// EndingToday returns Rented units whose rental ends today.
func (s PortalooService) EndingToday() ([]models.Portaloo, error) {
	out, err := s.Repo.EndingOn(utils.FormatDate(s.now()))
	if err != nil {
		return nil, domain.PersistenceError{Msg: "failed to load ending-today units", Err: err}
	}
	return out, nil
}

// EndingWithin returns Rented units ending after today and up to today+days
// inclusive, soonest first. Today itself belongs to EndingToday.
func (s PortalooService) EndingWithin(days int) ([]models.Portaloo, error) {
	if days <= 0 {
		return nil, domain.ValidationError{Field: "days", Msg: "must be positive"}
	}
	today := s.now()
	out, err := s.Repo.EndingBetween(
		utils.FormatDate(today),
		utils.FormatDate(today.AddDate(0, 0, days)),
	)
	if err != nil {
		return nil, domain.PersistenceError{Msg: "failed to load ending-soon units", Err: err}
	}
	return out, nil
}

// ListByStatusAndColour filters the dashboard grid. Units with no colour set
// always pass the colour filter.
func (s PortalooService) ListByStatusAndColour(statuses, colours []string) ([]models.Portaloo, error) {
	for _, st := range statuses {
		if !models.ValidStatus(st) {
			return nil, domain.ValidationError{Field: "status", Msg: "unknown status " + st}
		}
	}
	out, err := s.Repo.ListByStatusAndColour(statuses, colours)
	if err != nil {
		return nil, domain.PersistenceError{Msg: "failed to filter portaloos", Err: err}
	}
	return out, nil
}

func (s PortalooService) get(id int64) (models.Portaloo, error) {
	p, err := s.Repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Portaloo{}, domain.NotFoundError{Resource: "portaloo", Err: err}
	}
	if err != nil {
		return models.Portaloo{}, domain.PersistenceError{Msg: "failed to load portaloo", Err: err}
	}
	return p, nil
}

func clearedRentalPatch() models.PortalooUpdate {
	available := models.StatusAvailable
	empty := ""
	noPrice := decimal.NullDecimal{}
	return models.PortalooUpdate{
		Status:          &available,
		Price:           &noPrice,
		RentalStartDate: &empty,
		RentalEndDate:   &empty,
		Location:        &empty,
		Notes:           &empty,
		Colour:          &empty,
		PaidStatus:      &empty,
	}
}

func validateRentalDates(dates ...string) error {
	for _, d := range dates {
		if d == "" {
			continue
		}
		if _, err := utils.ParseDate(d); err != nil {
			return domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD, got " + d}
		}
	}
	return nil
}
