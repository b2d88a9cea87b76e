package dto

import (
	"denta/internal/domains/payment/model"
	gDto "denta/shared/dto"
	gModel "denta/shared/model"
	"denta/shared/timezone"

	"github.com/google/uuid"
)

// ReconcilePaymentRequest carries the outcome of a charge that already
// succeeded at the payment processor.
type ReconcilePaymentRequest struct {
	BookingID     string `json:"booking_id"     validate:"required,uuid4"`
	TransactionID string `json:"transaction_id" validate:"required,max=100"`
	Amount        int    `json:"amount"         validate:"required,min=0"`
}

func (r *ReconcilePaymentRequest) ToModel(user string) model.Payment {
	return model.Payment{
		ID:            uuid.NewString(),
		BookingID:     r.BookingID,
		TransactionID: r.TransactionID,
		Amount:        r.Amount,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PaymentResponse struct {
	ID            string `json:"id"`
	BookingID     string `json:"booking_id"`
	TransactionID string `json:"transaction_id"`
	Amount        int    `json:"amount"`
	gDto.Metadata
}

func (p *PaymentResponse) FromModel(model model.Payment) {
	p.ID = model.ID
	p.BookingID = model.BookingID
	p.TransactionID = model.TransactionID
	p.Amount = model.Amount
	p.Metadata.FromModel(model.Metadata)
}
