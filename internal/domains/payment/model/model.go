package model

import "denta/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldTransactionID = "transaction_id"
	FieldAmount        = "amount"
)

type Payment struct {
	ID            string `db:"id"`
	BookingID     string `db:"booking_id"`
	TransactionID string `db:"transaction_id"`
	Amount        int    `db:"amount"`
	model.Metadata
}
