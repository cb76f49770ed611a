package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/infras/otel/mocks"
	"courtbook/infras/postgres"
	"courtbook/shared/dto"
	"courtbook/shared/model"
	"courtbook/shared/repository"
)

type court struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Upload string `db:"-"`
}

type auditedCourt struct {
	ID string `db:"id"`
	model.Metadata
}

func newRepo[T any](t *testing.T, matcher sqlmock.QueryMatcher) (repository.Repository[T], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[T]("court", "courts", "id", &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "courts"},
	}}
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepo[auditedCourt](t, sqlmock.QueryMatcherEqual)

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO courts (id, created_at, modified_at, created_by, modified_by) VALUES ($1, $2, $3, $4, $5)").
		WithArgs("c1", now, now, "admin", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), auditedCourt{ID: "c1", Metadata: model.NewMetadata("admin", now)})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	const query = "SELECT courts.id, courts.name FROM courts WHERE (courts.id = $1) LIMIT 1"

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

		mock.ExpectQuery(query).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("c1", "Court A"))

		res, err := repo.Get(context.Background(), byID("c1"))

		require.NoError(t, err)
		assert.Equal(t, court{ID: "c1", Name: "Court A"}, res)
	})

	t.Run("missing row is the zero value", func(t *testing.T) {
		repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

		mock.ExpectQuery(query).WithArgs("nope").WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		res, err := repo.Get(context.Background(), byID("nope"))

		require.NoError(t, err)
		assert.Empty(t, res.ID)
	})

	t.Run("selected columns only", func(t *testing.T) {
		repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

		mock.ExpectQuery("SELECT courts.name FROM courts WHERE (courts.id = $1) LIMIT 1").
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Court A"))

		res, err := repo.Get(context.Background(), byID("c1"), "name")

		require.NoError(t, err)
		assert.Equal(t, "Court A", res.Name)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

		mock.ExpectQuery(query).WithArgs("c1").WillReturnError(errors.New("connection reset"))

		_, err := repo.Get(context.Background(), byID("c1"))

		assert.ErrorContains(t, err, "failed to get data (court)")
	})
}

func TestRepository_GetAll(t *testing.T) {
	nameLike := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "name", Value: "court", Operator: dto.FilterOperatorLike, Table: "courts"},
	}}

	tests := []struct {
		name   string
		params dto.QueryParams
		query  string
		args   []any
	}{
		{
			name:   "sorted page",
			params: dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: dto.SortDirDesc},
			query:  "SELECT courts.id, courts.name FROM courts WHERE (LOWER(courts.name) LIKE LOWER($1)) ORDER BY courts.name DESC, courts.id LIMIT $2 OFFSET $3",
			args:   []any{"%court%", 10, 10},
		},
		{
			name:   "unknown sort column is ignored",
			params: dto.QueryParams{Page: 1, Limit: 5, SortBy: "password; DROP TABLE courts", SortDir: dto.SortDirAsc},
			query:  "SELECT courts.id, courts.name FROM courts WHERE (LOWER(courts.name) LIKE LOWER($1)) ORDER BY courts.id LIMIT $2 OFFSET $3",
			args:   []any{"%court%", 5, 0},
		},
		{
			name:  "unpaged",
			query: "SELECT courts.id, courts.name FROM courts WHERE (LOWER(courts.name) LIKE LOWER($1))",
			args:  []any{"%court%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

			mock.ExpectQuery(tt.query).
				WithArgs(toDriverArgs(tt.args)...).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("c1", "Court A").AddRow("c2", "Court B"))

			res, err := repo.GetAll(context.Background(), tt.params, nameLike)

			require.NoError(t, err)
			assert.Len(t, res, 2)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

	mock.ExpectQuery("SELECT COUNT(*) FROM courts").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Exist(t *testing.T) {
	t.Run("requires a filter", func(t *testing.T) {
		repo, _ := newRepo[court](t, sqlmock.QueryMatcherEqual)

		_, err := repo.Exist(context.Background(), dto.FilterGroup{})

		assert.Error(t, err)
	})

	t.Run("exists", func(t *testing.T) {
		repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

		mock.ExpectQuery("SELECT EXISTS(SELECT 1 FROM courts WHERE (courts.id = $1))").
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exist, err := repo.Exist(context.Background(), byID("c1"))

		require.NoError(t, err)
		assert.True(t, exist)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("set columns are sorted and bound apart from the filter", func(t *testing.T) {
		repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

		filter := dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "name", Value: "Old", Operator: dto.FilterOperatorEq, Table: "courts"},
		}}

		mock.ExpectExec("UPDATE courts SET active = $1, name = $2 WHERE (courts.name = $3)").
			WithArgs(false, "New", "Old").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), map[string]any{"name": "New", "active": false}, filter)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires a filter", func(t *testing.T) {
		repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

		err := repo.Update(context.Background(), map[string]any{"name": "New"}, dto.FilterGroup{})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires columns", func(t *testing.T) {
		repo, _ := newRepo[court](t, sqlmock.QueryMatcherEqual)

		assert.Error(t, repo.Update(context.Background(), map[string]any{}, byID("c1")))
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepo[court](t, sqlmock.QueryMatcherEqual)

	mock.ExpectExec("DELETE FROM courts WHERE (courts.id = $1)").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), byID("c1"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.Delete(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)
}

func TestRepository_InsertBulkTx(t *testing.T) {
	repo, mock := newRepo[court](t, sqlmock.QueryMatcherRegexp)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courts (id, name) VALUES")).
		WithArgs("c1", "Court A", "c2", "Court B").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.InsertBulkTx(ctx, tx, nil))
	require.NoError(t, repo.InsertBulkTx(ctx, tx, []court{{ID: "c1", Name: "Court A"}, {ID: "c2", Name: "Court B"}}))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func toDriverArgs(values []any) []driver.Value {
	args := make([]driver.Value, len(values))
	for idx, value := range values {
		if n, ok := value.(int); ok {
			args[idx] = int64(n)

			continue
		}

		args[idx] = value
	}

	return args
}
