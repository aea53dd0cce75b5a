package models

// Payment status values stored on bookings. Empty string means unset.
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// Booking is a scheduled service job for a client.
type Booking struct {
	ID              int64    `json:"id"`
	ClientName      string   `json:"client_name"`
	ClientPhone     string   `json:"client_phone"`
	ClientEmail     string   `json:"client_email"`
	JobAddress      string   `json:"job_address"`
	Postcode        string   `json:"postcode"`
	JobType         string   `json:"job_type"`
	TankSize        string   `json:"tank_size"`
	WasteType       string   `json:"waste_type"`
	PortalooNumbers []string `json:"portaloo_numbers"`
	PortalooColour  string   `json:"portaloo_colour"`
	SpecialNotes    string   `json:"special_notes"`
	DropoffDate     string   `json:"dropoff_date"`
	PickupDate      string   `json:"pickup_date"`
	ServiceDate     string   `json:"service_date"`
	AssignedDriver  []string `json:"assigned_driver"`
	PaymentStatus   string   `json:"payment_status"`
	PaymentMethod   string   `json:"payment_method"`
	Completed       bool     `json:"completed"`
	CompletedAt     string   `json:"completed_at"`
	IsArchived      bool     `json:"is_archived"`
	CreatedAt       string   `json:"created_at"`
}

// BookingInput carries the writable fields for creation.
type BookingInput struct {
	ClientName      string   `json:"client_name"`
	ClientPhone     string   `json:"client_phone"`
	ClientEmail     string   `json:"client_email"`
	JobAddress      string   `json:"job_address"`
	Postcode        string   `json:"postcode"`
	JobType         string   `json:"job_type"`
	TankSize        string   `json:"tank_size"`
	WasteType       string   `json:"waste_type"`
	PortalooNumbers []string `json:"portaloo_numbers"`
	PortalooColour  string   `json:"portaloo_colour"`
	SpecialNotes    string   `json:"special_notes"`
	DropoffDate     string   `json:"dropoff_date"`
	PickupDate      string   `json:"pickup_date"`
	ServiceDate     string   `json:"service_date"`
	AssignedDriver  []string `json:"assigned_driver"`
	PaymentStatus   string   `json:"payment_status"`
	PaymentMethod   string   `json:"payment_method"`
}

// BookingUpdate supports PATCH-style updates via key presence. The id and
// created_at columns are never updatable.
type BookingUpdate struct {
	ClientName      *string   `json:"client_name"`
	ClientPhone     *string   `json:"client_phone"`
	ClientEmail     *string   `json:"client_email"`
	JobAddress      *string   `json:"job_address"`
	Postcode        *string   `json:"postcode"`
	JobType         *string   `json:"job_type"`
	TankSize        *string   `json:"tank_size"`
	WasteType       *string   `json:"waste_type"`
	PortalooNumbers *[]string `json:"portaloo_numbers"`
	PortalooColour  *string   `json:"portaloo_colour"`
	SpecialNotes    *string   `json:"special_notes"`
	DropoffDate     *string   `json:"dropoff_date"`
	PickupDate      *string   `json:"pickup_date"`
	ServiceDate     *string   `json:"service_date"`
	AssignedDriver  *[]string `json:"assigned_driver"`
	PaymentStatus   *string   `json:"payment_status"`
	PaymentMethod   *string   `json:"payment_method"`
}

// BookingFilter narrows list results. Archived selects between the active
// and archived views; every other predicate is optional and ANDed.
type BookingFilter struct {
	Archived       bool
	Search         string // case-insensitive substring over client_name OR postcode
	PaymentStatus  string
	ServiceDate    string // exact YYYY-MM-DD
	AssignedDriver string // booking's assigned_driver must contain this name
}
