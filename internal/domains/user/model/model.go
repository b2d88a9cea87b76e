package model

import "denta/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID    = "id"
	FieldEmail = "email"
	FieldName  = "name"
	FieldRole  = "role"
)

type User struct {
	ID    string  `db:"id"`
	Email string  `db:"email"`
	Name  *string `db:"name"`
	Role  string  `db:"role"`
	model.Metadata
}
