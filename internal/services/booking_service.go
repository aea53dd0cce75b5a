package services

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	intconfig "brooksportal/internal/config"
	"brooksportal/internal/domain"
	"brooksportal/internal/domain/models"
	"brooksportal/internal/repositories"
	"brooksportal/internal/utils"
)

// BookingService owns the booking lifecycle: active -> completed -> archived.
type BookingService struct {
	Repo      repositories.BookingRepository
	Ref       intconfig.Reference
	RequestID string
}

func (s BookingService) Create(in models.BookingInput) (models.Booking, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.JobType = strings.TrimSpace(in.JobType)

	if in.ClientName == "" {
		return models.Booking{}, domain.ValidationError{Field: "client_name", Msg: "required"}
	}
	if in.ClientPhone == "" {
		return models.Booking{}, domain.ValidationError{Field: "client_phone", Msg: "required"}
	}
	if in.JobType == "" {
		return models.Booking{}, domain.ValidationError{Field: "job_type", Msg: "required"}
	}
	if err := s.validateCommon(in.PaymentStatus, in.PaymentMethod, in.AssignedDriver,
		in.DropoffDate, in.PickupDate, in.ServiceDate); err != nil {
		return models.Booking{}, err
	}

	in.PortalooNumbers = utils.CleanList(in.PortalooNumbers)
	in.AssignedDriver = utils.CleanList(in.AssignedDriver)

	id, err := s.Repo.Insert(in)
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Msg: "failed to save booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "create", "id="+strconv.FormatInt(id, 10))

	return s.get(id)
}

func (s BookingService) Update(id int64, patch models.BookingUpdate) (models.Booking, error) {
	if _, err := s.get(id); err != nil {
		return models.Booking{}, err
	}

	if patch.ClientName != nil && strings.TrimSpace(*patch.ClientName) == "" {
		return models.Booking{}, domain.ValidationError{Field: "client_name", Msg: "required"}
	}
	if patch.ClientPhone != nil && strings.TrimSpace(*patch.ClientPhone) == "" {
		return models.Booking{}, domain.ValidationError{Field: "client_phone", Msg: "required"}
	}
	if patch.JobType != nil && strings.TrimSpace(*patch.JobType) == "" {
		return models.Booking{}, domain.ValidationError{Field: "job_type", Msg: "required"}
	}

	var paymentStatus, paymentMethod string
	var drivers []string
	var dropoff, pickup, service string
	if patch.PaymentStatus != nil {
		paymentStatus = *patch.PaymentStatus
	}
	if patch.PaymentMethod != nil {
		paymentMethod = *patch.PaymentMethod
	}
	if patch.AssignedDriver != nil {
		drivers = *patch.AssignedDriver
	}
	if patch.DropoffDate != nil {
		dropoff = *patch.DropoffDate
	}
	if patch.PickupDate != nil {
		pickup = *patch.PickupDate
	}
	if patch.ServiceDate != nil {
		service = *patch.ServiceDate
	}
	if err := s.validateCommon(paymentStatus, paymentMethod, drivers, dropoff, pickup, service); err != nil {
		return models.Booking{}, err
	}
	if patch.AssignedDriver != nil {
		cleaned := utils.CleanList(*patch.AssignedDriver)
		patch.AssignedDriver = &cleaned
	}
	if patch.PortalooNumbers != nil {
		cleaned := utils.CleanList(*patch.PortalooNumbers)
		patch.PortalooNumbers = &cleaned
	}

	if err := s.Repo.Update(id, patch); err != nil {
		return models.Booking{}, domain.PersistenceError{Msg: "failed to update booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "update", "id="+strconv.FormatInt(id, 10))

	return s.get(id)
}

// MarkComplete stamps completed_at once. Repeating the call is a no-op, the
// original stamp survives.
func (s BookingService) MarkComplete(id int64) (models.Booking, error) {
	if _, err := s.get(id); err != nil {
		return models.Booking{}, err
	}

	changed, err := s.Repo.MarkComplete(id)
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Msg: "failed to mark booking complete", Err: err}
	}
	if changed {
		utils.LogEvent(s.RequestID, "booking", "complete", "id="+strconv.FormatInt(id, 10))
	}

	return s.get(id)
}

// Archive soft-deletes the booking. Completion is not required first; the
// admin flow allows archiving an incomplete job.
func (s BookingService) Archive(id int64) error {
	if _, err := s.get(id); err != nil {
		return err
	}
	if err := s.Repo.Archive(id); err != nil {
		return domain.PersistenceError{Msg: "failed to archive booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "archive", "id="+strconv.FormatInt(id, 10))
	return nil
}

func (s BookingService) Get(id int64) (models.Booking, error) {
	return s.get(id)
}

// List fetches one archival view and applies the optional predicates. Every
// supplied predicate must hold.
func (s BookingService) List(filter models.BookingFilter) ([]models.Booking, error) {
	all, err := s.Repo.ListByArchived(filter.Archived)
	if err != nil {
		return nil, domain.PersistenceError{Msg: "failed to list bookings", Err: err}
	}

	out := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if matchBooking(b, filter) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s BookingService) get(id int64) (models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Msg: "failed to load booking", Err: err}
	}
	return b, nil
}

func (s BookingService) validateCommon(paymentStatus, paymentMethod string, drivers []string,
	dates ...string) error {
	switch paymentStatus {
	case "", models.PaymentPaid, models.PaymentUnpaid:
	default:
		return domain.ValidationError{Field: "payment_status", Msg: "must be paid or unpaid"}
	}
	if paymentMethod != "" && !s.Ref.HasPaymentMethod(paymentMethod) {
		return domain.ValidationError{Field: "payment_method", Msg: "unknown payment method"}
	}
	for _, d := range drivers {
		if strings.TrimSpace(d) == "" {
			continue
		}
		if !s.Ref.HasDriver(d) {
			return domain.ValidationError{Field: "assigned_driver", Msg: "unknown driver " + d}
		}
	}
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

func matchBooking(b models.Booking, f models.BookingFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.ClientName), needle) &&
			!strings.Contains(strings.ToLower(b.Postcode), needle) {
			return false
		}
	}
	if f.PaymentStatus != "" && b.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.ServiceDate != "" && utils.DateOnly(b.ServiceDate) != f.ServiceDate {
		return false
	}
	if f.AssignedDriver != "" {
		found := false
		for _, d := range b.AssignedDriver {
			if d == f.AssignedDriver {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
