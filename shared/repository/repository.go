// Package repository provides a generic sqlx-backed table gateway. Entity
// columns come from the db tags of T, including embedded structs.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"

	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/shared/constant"
	"courtbook/shared/dto"
	"courtbook/shared/logger"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("no columns to update")
)

const setArgPrefix = "set_"

type Repository[T any] struct {
	db          *postgres.Connection
	otel        otel.Otel
	table       string
	entity      string
	primary     string
	columns     []string
	insertQuery string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns := dbColumns(reflect.TypeOf(zero))

	placeholders := make([]string, len(columns))
	for idx, col := range columns {
		placeholders[idx] = ":" + col
	}

	return Repository[T]{
		db:      db,
		otel:    otl,
		table:   tableName,
		entity:  entityName,
		primary: primaryColumn,
		columns: columns,
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", ")),
	}
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) (err error) {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, repo.insertQuery)

	if _, err = repo.db.Write.NamedExecContext(ctx, repo.insertQuery, model); err != nil {
		return repo.fail(scope, err, "insert data")
	}

	return nil
}

// InsertBulkTx writes every model in one multi-row statement inside tx.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []T) (err error) {
	ctx, scope := repo.scope(ctx, "InsertBulkTx")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	scope.SetAttributes(map[string]any{
		constant.OtelQueryAttributeKey: repo.insertQuery,
		"rows":                         len(models),
	})

	if _, err = tx.NamedExecContext(ctx, repo.insertQuery, models); err != nil {
		return repo.fail(scope, err, "bulk insert data")
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.where(filter)
	if where == constant.Empty {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.table, where)
	if err := repo.get(ctx, scope, &exist, query, args); err != nil {
		return false, repo.fail(scope, err, "check exist data")
	}

	return exist, nil
}

// Get returns the first matching row, or the zero value when none matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var model T

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", repo.selectList(columns), repo.table, where)

	err := repo.get(ctx, scope, &model, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, err, "get data")
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.where(filter)

	var query strings.Builder

	fmt.Fprintf(&query, "SELECT %s FROM %s%s", repo.selectList(columns), repo.table, where)

	switch {
	case params.SortBy != constant.Empty && repo.sortable(params.SortBy):
		dir := dto.SortDirAsc
		if params.SortDir == dto.SortDirDesc {
			dir = dto.SortDirDesc
		}

		fmt.Fprintf(&query, " ORDER BY %s.%s %s, %s.%s", repo.table, params.SortBy, dir, repo.table, repo.primary)
	case params.Limit > 0:
		// pages need a total order
		fmt.Fprintf(&query, " ORDER BY %s.%s", repo.table, repo.primary)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		query.WriteString(" LIMIT :limit OFFSET :offset")
	}

	models := []T{}

	if err := repo.selectAll(ctx, scope, &models, query.String(), args); err != nil {
		return models, repo.fail(scope, err, "get all data")
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.where(filter)

	var count int

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", repo.table, where)
	if err := repo.get(ctx, scope, &count, query, args); err != nil {
		return 0, repo.fail(scope, err, "count data")
	}

	return count, nil
}

// Update sets every column in mod on the rows matching filter. A filter is
// required so a bad call can never rewrite the whole table.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	if len(mod) == 0 {
		return errEmptyUpdate
	}

	where, args := repo.where(filter)
	if where == constant.Empty {
		return errRequiredFilter
	}

	sets := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		sets = append(sets, fmt.Sprintf("%s = :%s%s", col, setArgPrefix, col))
		args[setArgPrefix+col] = mod[col]
	}

	query := fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(sets, ", "), where)
	if _, err := repo.exec(ctx, scope, query, args); err != nil {
		return repo.fail(scope, err, "update data")
	}

	return nil
}

// Delete removes every row matching filter and reports how many rows were removed.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.where(filter)
	if where == constant.Empty {
		return 0, errRequiredFilter
	}

	result, err := repo.exec(ctx, scope, fmt.Sprintf("DELETE FROM %s%s", repo.table, where), args)
	if err != nil {
		return 0, repo.fail(scope, err, "delete data")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, err, "read affected rows")
	}

	return affected, nil
}

// BeginTx opens a transaction on the write connection.
func (repo *Repository[T]) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	ctx, scope := repo.scope(ctx, "BeginTx")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return nil, repo.fail(scope, err, "begin transaction")
	}

	return tx, nil
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

func (repo *Repository[T]) fail(scope otel.Scope, err error, action string) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any) {
	clause, args := filter.GetWhereClause()
	if clause == constant.Empty {
		return constant.Empty, map[string]any{}
	}

	return " WHERE " + clause, args
}

// bind expands named args into positional ones for db's driver.
func bind(db *sqlx.DB, query string, args map[string]any) (string, []any, error) {
	positional, values, err := sqlx.Named(query, args)
	if err != nil {
		return constant.Empty, nil, fmt.Errorf("failed to bind query: %w", err)
	}

	return db.Rebind(positional), values, nil
}

func (repo *Repository[T]) get(ctx context.Context, scope otel.Scope, dest any, query string, args map[string]any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	query, values, err := bind(repo.db.Read, query, args)
	if err != nil {
		return err
	}

	return repo.db.Read.GetContext(ctx, dest, query, values...) //nolint:wrapcheck
}

func (repo *Repository[T]) selectAll(ctx context.Context, scope otel.Scope, dest any, query string, args map[string]any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	query, values, err := bind(repo.db.Read, query, args)
	if err != nil {
		return err
	}

	return repo.db.Read.SelectContext(ctx, dest, query, values...) //nolint:wrapcheck
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, query string, args map[string]any) (sql.Result, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	query, values, err := bind(repo.db.Write, query, args)
	if err != nil {
		return nil, err
	}

	return repo.db.Write.ExecContext(ctx, query, values...) //nolint:wrapcheck
}

// sortable guards ORDER BY against columns the entity does not declare.
func (repo *Repository[T]) sortable(name string) bool {
	return slices.Contains(repo.columns, name)
}

func (repo *Repository[T]) selectList(only []string) string {
	qualified := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		qualified = append(qualified, repo.table+"."+col)
	}

	return strings.Join(qualified, ", ")
}

func dbColumns(typ reflect.Type) []string {
	var columns []string

	for idx := range typ.NumField() {
		field := typ.Field(idx)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != constant.Empty && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
