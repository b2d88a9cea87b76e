package model

import (
	"denta/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "treatments"
	EntityName = "treatment"

	FieldID    = "id"
	FieldName  = "name"
	FieldPrice = "price"
	FieldSlots = "slots"
)

type Treatment struct {
	ID    string         `db:"id"`
	Name  string         `db:"name"`
	Price int            `db:"price"`
	Slots pq.StringArray `db:"slots"`
	model.Metadata
}
