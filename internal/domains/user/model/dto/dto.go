package dto

import (
	"denta/internal/domains/user/model"
	"denta/shared"
	"denta/shared/constant"
	gDto "denta/shared/dto"
	gModel "denta/shared/model"
	"denta/shared/timezone"

	"github.com/google/uuid"
)

type UpsertUserRequest struct {
	Name string `json:"name" validate:"omitempty,max=100"`
}

func (u *UpsertUserRequest) ToModel(email string) model.User {
	var name *string
	if u.Name != constant.Empty {
		name = &u.Name
	}

	return model.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Role:  constant.RolePatient,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  email,
			ModifiedBy: email,
		},
	}
}

type UserResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  string  `json:"role"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(model model.User) {
	u.ID = model.ID
	u.Email = model.Email
	u.Name = model.Name
	u.Role = model.Role
	u.Metadata.FromModel(model.Metadata)
}

type UpsertUserResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
}

type IsAdminResponse struct {
	Admin bool `json:"admin"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (u *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	u.TotalData = totalData
	u.TotalPage = shared.CalculateTotalPage(totalData, limit)

	u.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		u.Users[i].FromModel(mod)
	}
}
