// Package booking defines the booking record model shared by the backend
// client, the edit buffer, and the UI.
package booking

import (
	"encoding/json"
	"time"
)

// Statuses a booking moves through. The backend stores these as plain text;
// the set here drives the status-cycling keys in the UI.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Payment statuses. Capitalized to match the column values the backend uses.
const (
	PaymentUnpaid   = "Unpaid"
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentRefunded = "Refunded"
)

// FieldStatus and FieldPayment are the only columns an operator may edit.
const (
	FieldStatus  = "status"
	FieldPayment = "payment_status"
)

// StatusCycle is the order the UI steps through when cycling a booking's status.
var StatusCycle = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// PaymentCycle is the order the UI steps through for payment status.
var PaymentCycle = []string{PaymentUnpaid, PaymentPending, PaymentPaid, PaymentRefunded}

// MutableField reports whether name is a column the edit buffer accepts.
func MutableField(name string) bool {
	return name == FieldStatus || name == FieldPayment
}

// Booking is one row from the bookings table. ID is stable and unique within
// a fetch result; everything except the two status fields is immutable from
// this application's point of view.
type Booking struct {
	ID            string   `json:"id"`
	GuestName     string   `json:"guest_name"`
	GuestEmail    string   `json:"guest_email"`
	GuestPhone    string   `json:"guest_phone"`
	PartySize     int      `json:"party_size"`
	EventDate     string   `json:"event_date"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"payment_status"`
	Notes         string   `json:"notes"`
	Address       Address  `json:"-"`
	Services      []string `json:"-"`
	CreatedAt     string   `json:"created_at"`
}

// Address is the normalized delivery/venue address. Legacy rows store it as a
// raw string; see UnmarshalJSON.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
func (b Booking) ParsedCreatedAt() time.Time {
	return parseTime(b.CreatedAt)
}

// ParsedEventDate returns the event date as time.Time when possible.
func (b Booking) ParsedEventDate() time.Time {
	return parseTime(b.EventDate)
}

// Field returns the current value of a mutable field, or "" for anything else.
func (b Booking) Field(name string) string {
	switch name {
	case FieldStatus:
		return b.Status
	case FieldPayment:
		return b.PaymentStatus
	}
	return ""
}

// UnmarshalJSON decodes a backend row, normalizing the polymorphic address
// and services columns. Older rows carry those columns as JSON-encoded text
// (sometimes double-encoded); newer rows carry structured values. Nothing
// outside this package sees the raw form.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type alias Booking
	aux := struct {
		*alias
		RawAddress  json.RawMessage `json:"address"`
		RawServices json.RawMessage `json:"services"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Address = normalizeAddress(aux.RawAddress)
	b.Services = normalizeServices(aux.RawServices)
	return nil
}

const bookingTimestampLayout = "2006-01-02 15:04:05"

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(bookingTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
