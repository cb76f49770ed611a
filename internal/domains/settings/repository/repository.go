package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/internal/domains/settings/model"
	gDto "courtbook/shared/dto"
	gRepo "courtbook/shared/repository"
)

type Settings interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AppSettings, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AppSettings]
}

func New(db *postgres.Connection, otel otel.Otel) Settings {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AppSettings](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
