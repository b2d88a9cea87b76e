package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"denta/infras/otel"
	"denta/infras/postgres"
	"denta/internal/domains/treatment/model"
	gDto "denta/shared/dto"
	gRepo "denta/shared/repository"
)

type Treatment interface {
	Insert(ctx context.Context, model model.Treatment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Treatment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Treatment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Treatment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Treatment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Treatment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
