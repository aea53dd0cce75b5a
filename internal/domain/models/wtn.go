package models

// WasteTransferNote is the permanent compliance record for one booking.
// Notes are created once and never updated or archived.
type WasteTransferNote struct {
	ID                 int64  `json:"id"`
	BookingID          int64  `json:"booking_id"`
	ClientName         string `json:"client_name"`
	DescriptionOfWaste string `json:"description_of_waste"`
	Quantity           string `json:"quantity"`
	CarrierName        string `json:"carrier_name"`
	CarrierRegNo       string `json:"carrier_reg_no"`
	ProducerName       string `json:"producer_name"`
	ProducerAddress    string `json:"producer_address"`
	ReceiverName       string `json:"receiver_name"`
	ReceiverAddress    string `json:"receiver_address"`
	DateCreated        string `json:"date_created"`
	Notes              string `json:"notes"`
	SignatureURL       string `json:"signature_url"`
	CreatedAt          string `json:"created_at"`
}

// WTNInput carries the content fields for note creation. The signature image
// travels separately as raw bytes.
type WTNInput struct {
	ClientName         string `json:"client_name"`
	DescriptionOfWaste string `json:"description_of_waste"`
	Quantity           string `json:"quantity"`
	CarrierName        string `json:"carrier_name"`
	CarrierRegNo       string `json:"carrier_reg_no"`
	ProducerName       string `json:"producer_name"`
	ProducerAddress    string `json:"producer_address"`
	ReceiverName       string `json:"receiver_name"`
	ReceiverAddress    string `json:"receiver_address"`
	DateCreated        string `json:"date_created"`
	Notes              string `json:"notes"`
}
