package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"boda/infras/otel"
	"boda/infras/postgres"
	"boda/internal/domains/table/model"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	"boda/shared/logger"
	gRepo "boda/shared/repository"
)

type Table interface {
	Insert(ctx context.Context, model model.Table) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	ListAssignedNames(ctx context.Context) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListAssignedNames returns every name a table is known by: current table rows
// plus legacy free-text assignments still living on guest rows. The union
// feeds the "Table N" auto-naming scan.
func (repo *repositoryImpl) ListAssignedNames(ctx context.Context) (res []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.ListAssignedNames")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT name FROM tables
	UNION
	SELECT table_name AS name FROM guests WHERE table_name IS NOT NULL AND table_name <> ''`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &res, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list assigned table names: %w", err)
	}

	return res, nil
}
