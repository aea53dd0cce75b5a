package models

import "github.com/shopspring/decimal"

// Portaloo unit statuses. Status is the single source of truth for
// availability; there is no separate is_booked flag.
const (
	StatusAvailable  = "Available"
	StatusRented     = "Rented"
	StatusOutOfOrder = "Out of Order"
)

// Paid status values for a rental. Empty string means unset.
const (
	RentalPaid   = "Paid"
	RentalUnpaid = "Unpaid"
)

// Portaloo is a rentable sanitation unit. The rental fields only carry
// meaning while the unit is Rented.
type Portaloo struct {
	ID              int64               `json:"id"`
	Status          string              `json:"status"`
	Price           decimal.NullDecimal `json:"price"`
	RentalStartDate string              `json:"rental_start_date"`
	RentalEndDate   string              `json:"rental_end_date"`
	Location        string              `json:"location"`
	Notes           string              `json:"notes"`
	Colour          string              `json:"colour"`
	PaidStatus      string              `json:"paid_status"`
}

// RentalInput carries the fields applied when a unit is booked out.
type RentalInput struct {
	Price           decimal.NullDecimal `json:"price"`
	RentalStartDate string              `json:"rental_start_date"`
	RentalEndDate   string              `json:"rental_end_date"`
	Location        string              `json:"location"`
	Notes           string              `json:"notes"`
	Colour          string              `json:"colour"`
	PaidStatus      string              `json:"paid_status"`
}

// PortalooUpdate supports PATCH-style updates via key presence.
type PortalooUpdate struct {
	Status          *string              `json:"status"`
	Price           *decimal.NullDecimal `json:"price"`
	RentalStartDate *string              `json:"rental_start_date"`
	RentalEndDate   *string              `json:"rental_end_date"`
	Location        *string              `json:"location"`
	Notes           *string              `json:"notes"`
	Colour          *string              `json:"colour"`
	PaidStatus      *string              `json:"paid_status"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusOutOfOrder:
		return true
	}
	return false
}
