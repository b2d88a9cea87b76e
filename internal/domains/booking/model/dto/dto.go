package dto

import (
	"denta/internal/domains/booking/model"
	"denta/shared"
	gDto "denta/shared/dto"
	gModel "denta/shared/model"
	"denta/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TreatmentName   string `json:"treatment_name"   validate:"required,max=100"`
	Slot            string `json:"slot"             validate:"required,max=50"`
	PatientName     string `json:"patient_name"     validate:"required,max=100"`
	PatientEmail    string `json:"patient_email"    validate:"required,email"`
	Price           int    `json:"price"            validate:"min=0"`
	AppointmentDate string `json:"appointment_date" validate:"required,calendardate"`
}

func (c *CreateBookingRequest) ToModel(user string) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		TreatmentName:   c.TreatmentName,
		Slot:            c.Slot,
		PatientName:     c.PatientName,
		PatientEmail:    c.PatientEmail,
		Price:           c.Price,
		AppointmentDate: c.AppointmentDate,
		Paid:            false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// CreateBookingResponse reports whether the booking was admitted. A refused
// duplicate comes back with Acknowledged false and the reason in Message.
type CreateBookingResponse struct {
	Acknowledged bool             `json:"acknowledged"`
	Message      string           `json:"message,omitempty"`
	Booking      *BookingResponse `json:"booking,omitempty"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	TreatmentName   string  `json:"treatment_name"`
	Slot            string  `json:"slot"`
	PatientName     string  `json:"patient_name"`
	PatientEmail    string  `json:"patient_email"`
	Price           int     `json:"price"`
	AppointmentDate string  `json:"appointment_date"`
	Paid            bool    `json:"paid"`
	TransactionID   *string `json:"transaction_id,omitempty"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.TreatmentName = model.TreatmentName
	b.Slot = model.Slot
	b.PatientName = model.PatientName
	b.PatientEmail = model.PatientEmail
	b.Price = model.Price
	b.AppointmentDate = model.AppointmentDate
	b.Paid = model.Paid
	b.TransactionID = model.TransactionID
	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}
