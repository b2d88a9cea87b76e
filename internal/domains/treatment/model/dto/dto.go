package dto

import (
	"denta/internal/domains/treatment/model"
	"denta/shared"
	gDto "denta/shared/dto"
	gModel "denta/shared/model"
	"denta/shared/timezone"

	"github.com/google/uuid"
)

type CreateTreatmentRequest struct {
	Name  string   `json:"name"  validate:"required,max=100"`
	Price int      `json:"price" validate:"required,min=0"`
	Slots []string `json:"slots" validate:"required,min=1,dive,required"`
}

func (c *CreateTreatmentRequest) ToModel(user string) model.Treatment {
	return model.Treatment{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Price: c.Price,
		Slots: c.Slots,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type TreatmentResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Slots []string `json:"slots"`
	gDto.Metadata
}

func (t *TreatmentResponse) FromModel(model model.Treatment) {
	t.ID = model.ID
	t.Name = model.Name
	t.Price = model.Price
	t.Slots = model.Slots
	t.Metadata.FromModel(model.Metadata)
}

type GetTreatmentsResponse struct {
	Treatments []TreatmentResponse `json:"treatments"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (g *GetTreatmentsResponse) FromModels(models []model.Treatment, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Treatments = make([]TreatmentResponse, len(models))
	for i, mod := range models {
		g.Treatments[i].FromModel(mod)
	}
}

// TreatmentAvailability carries the slots still open for one treatment on the
// requested date.
type TreatmentAvailability struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Slots []string `json:"slots"`
}

type AvailabilityResponse struct {
	Date       string                  `json:"date"`
	Treatments []TreatmentAvailability `json:"treatments"`
}
