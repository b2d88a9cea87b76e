package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"denta/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		TreatmentName:   "Braces",
		Slot:            "10am",
		PatientName:     "Jane Doe",
		PatientEmail:    "jane@example.com",
		Price:           300,
		AppointmentDate: "2024-01-05",
	}

	booking := req.ToModel("jane@example.com")

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "Braces", booking.TreatmentName)
	assert.Equal(t, "10am", booking.Slot)
	assert.Equal(t, "jane@example.com", booking.PatientEmail)
	assert.Equal(t, "2024-01-05", booking.AppointmentDate)
	assert.False(t, booking.Paid)
	assert.Nil(t, booking.TransactionID)
	assert.Equal(t, "jane@example.com", booking.CreatedBy)
	assert.False(t, booking.CreatedAt.IsZero())
}

func TestBookingResponse_FromModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		TreatmentName:   "Braces",
		Slot:            "10am",
		PatientName:     "Jane Doe",
		PatientEmail:    "jane@example.com",
		Price:           300,
		AppointmentDate: "2024-01-05",
	}
	booking := req.ToModel("jane@example.com")

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, booking.ID, res.ID)
	assert.Equal(t, booking.TreatmentName, res.TreatmentName)
	assert.Equal(t, booking.AppointmentDate, res.AppointmentDate)
	assert.False(t, res.Paid)
}
