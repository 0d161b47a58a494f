package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"boda/infras/otel"
	"boda/infras/postgres"
	"boda/internal/domains/guest/model"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	"boda/shared/logger"
	gRepo "boda/shared/repository"
)

// ErrTableOvercommitted reports that a party insert found its table over
// capacity during the pre-commit re-check. The transaction is rolled back and
// the caller may retry against another table.
var ErrTableOvercommitted = errors.New("table overcommitted")

const (
	queryLockTable      = "SELECT id FROM tables WHERE id = $1 FOR UPDATE"
	queryPartyOccupancy = "SELECT COUNT(id) FROM guests WHERE table_id = $1"
)

type Guest interface {
	Insert(ctx context.Context, model model.Guest) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Guest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Guest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	InsertParty(ctx context.Context, guests []model.Guest, tableID *int64, capacity int) ([]int64, error)
	OccupancyByTable(ctx context.Context) (map[int64]int, error)
	Unassign(ctx context.Context, tableID int64) (int64, error)
	UnassignByTableName(ctx context.Context, tableName string) (int64, error)
	OverallStats(ctx context.Context) (model.OverallStats, error)
	AllergyStats(ctx context.Context) ([]model.AllergyCount, error)
	Truncate(ctx context.Context) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertParty inserts every guest of a party in one transaction. When the
// party is bound to a table, the table row is locked and occupancy re-checked
// before commit so that two concurrent parties cannot both land on the last
// free seats; an overcommit rolls everything back with ErrTableOvercommitted.
func (repo *repositoryImpl) InsertParty(ctx context.Context, guests []model.Guest, tableID *int64, capacity int) (ids []int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.InsertParty")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin party transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids = make([]int64, 0, len(guests))

	for _, guest := range guests {
		id, insertErr := repo.InsertTx(ctx, tx, guest)
		if insertErr != nil {
			err = insertErr

			return nil, err
		}

		ids = append(ids, id)
	}

	if tableID != nil && capacity > 0 {
		// READ COMMITTED would let two concurrent parties each count only
		// their own rows; the row lock serializes them so the second count
		// sees the first party committed.
		var lockedID int64

		err = tx.GetContext(ctx, &lockedID, queryLockTable, *tableID)
		if err != nil {
			logger.ErrorWithStack(err)

			return nil, fmt.Errorf("failed to lock table for occupancy re-check: %w", err)
		}

		var occupancy int

		err = tx.GetContext(ctx, &occupancy, queryPartyOccupancy, *tableID)
		if err != nil {
			logger.ErrorWithStack(err)

			return nil, fmt.Errorf("failed to re-check table occupancy: %w", err)
		}

		if occupancy > capacity {
			err = ErrTableOvercommitted

			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to commit party transaction: %w", err)
	}

	return ids, nil
}

func (repo *repositoryImpl) OccupancyByTable(ctx context.Context) (res map[int64]int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.OccupancyByTable")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "SELECT table_id, COUNT(id) AS guests FROM guests WHERE table_id IS NOT NULL GROUP BY table_id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []model.TableOccupancy

	err = repo.db.Read.SelectContext(ctx, &rows, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to count guests per table: %w", err)
	}

	res = make(map[int64]int, len(rows))
	for _, row := range rows {
		res[row.TableID] = row.Guests
	}

	return res, nil
}

func (repo *repositoryImpl) Unassign(ctx context.Context, tableID int64) (rowsAffected int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.Unassign")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "UPDATE guests SET table_id = NULL WHERE table_id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, tableID)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to unassign guests from table: %w", err)
	}

	rowsAffected, err = result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (repo *repositoryImpl) UnassignByTableName(ctx context.Context, tableName string) (rowsAffected int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.UnassignByTableName")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "UPDATE guests SET table_name = NULL WHERE table_name = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, tableName)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to unassign guests from legacy table name: %w", err)
	}

	rowsAffected, err = result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (repo *repositoryImpl) OverallStats(ctx context.Context) (res model.OverallStats, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.OverallStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT
		COUNT(id) AS total,
		COUNT(id) FILTER (WHERE attending) AS confirmed,
		COUNT(id) FILTER (WHERE NOT attending) AS pending,
		COUNT(id) FILTER (WHERE needs_transport) AS need_transport
	FROM guests`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &res, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to aggregate guest stats: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) AllergyStats(ctx context.Context) (res []model.AllergyCount, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.AllergyStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT allergies, COUNT(id) AS count
	FROM guests
	WHERE allergies IS NOT NULL AND allergies <> ''
	GROUP BY allergies
	ORDER BY count DESC, allergies ASC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &res, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to aggregate allergy stats: %w", err)
	}

	return res, nil
}

// Truncate wipes the guest table. Development helper behind the admin reset
// route, never routed in production.
func (repo *repositoryImpl) Truncate(ctx context.Context) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.Truncate")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "TRUNCATE TABLE guests RESTART IDENTITY"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.ExecContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to truncate guests: %w", err)
	}

	return nil
}
