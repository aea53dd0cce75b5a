package handlers

import (
	"net/http"

	"brooksportal/internal/domain/models"
	"brooksportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (a API) CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	booking, err := a.bookings(c).Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings and GET /api/bookings/archived
//
// Filters mirror the dashboard controls: free-text search over client name
// and postcode, exact payment status and service date, and assigned driver
// membership. All supplied filters must hold at once.
func (a API) ListBookings(archived bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.BookingFilter{
			Archived:       archived,
			Search:         c.Query("search"),
			PaymentStatus:  c.Query("payment_status"),
			ServiceDate:    c.Query("service_date"),
			AssignedDriver: c.Query("assigned_driver"),
		}
		bookings, err := a.bookings(c).List(filter)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

// GET /api/bookings/:id
func (a API) GetBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PATCH /api/bookings/:id
func (a API) UpdateBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var patch models.BookingUpdate
	if !BindJSONOrError(c, &patch) {
		return
	}
	booking, err := a.bookings(c).Update(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/complete
func (a API) CompleteBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).MarkComplete(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/archive
func (a API) ArchiveBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := a.bookings(c).Archive(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking archived"})
}

// GET /api/driver/jobs
//
// The driver sees only their own assignments, split into jobs still to do
// and jobs already signed off. The name comes from the token, never from a
// query parameter. Archiving a booking at the office does not pull it from
// the driver's history, so both archival views are read.
func (a API) DriverJobs(c *gin.Context) {
	name := middleware.GetUserName(c)
	if name == "" {
		RespondError(c, http.StatusUnauthorized, "no driver identity on token", nil)
		return
	}

	svc := a.bookings(c)
	bookings, err := svc.List(models.BookingFilter{AssignedDriver: name})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	archived, err := svc.List(models.BookingFilter{Archived: true, AssignedDriver: name})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	bookings = append(bookings, archived...)

	active := []models.Booking{}
	completed := []models.Booking{}
	for _, b := range bookings {
		if b.Completed {
			completed = append(completed, b)
		} else {
			active = append(active, b)
		}
	}
	c.JSON(http.StatusOK, gin.H{"active": active, "completed": completed})
}
