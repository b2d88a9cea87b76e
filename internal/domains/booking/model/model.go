package model

import "denta/shared/model"

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldTreatmentName   = "treatment_name"
	FieldSlot            = "slot"
	FieldPatientName     = "patient_name"
	FieldPatientEmail    = "patient_email"
	FieldPrice           = "price"
	FieldAppointmentDate = "appointment_date"
	FieldPaid            = "paid"
	FieldTransactionID   = "transaction_id"
)

type Booking struct {
	ID              string  `db:"id"`
	TreatmentName   string  `db:"treatment_name"`
	Slot            string  `db:"slot"`
	PatientName     string  `db:"patient_name"`
	PatientEmail    string  `db:"patient_email"`
	Price           int     `db:"price"`
	AppointmentDate string  `db:"appointment_date"`
	Paid            bool    `db:"paid"`
	TransactionID   *string `db:"transaction_id"`
	model.Metadata
}
