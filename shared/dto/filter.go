package dto

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

// GetWhereClause renders the filter on its own.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	b := newClauseBuilder()

	return b.filter(*f), b.args
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

// GetWhereClause renders the group. Every bound value gets a unique
// f_-prefixed name, so repeated fields and SET columns never collide.
func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	b := newClauseBuilder()

	return b.group(*f), b.args
}

type clauseBuilder struct {
	args map[string]any
	seq  int
}

func newClauseBuilder() *clauseBuilder {
	return &clauseBuilder{args: map[string]any{}}
}

func (b *clauseBuilder) bind(f Filter, value any) string {
	name := f.ArgName
	if name == "" {
		name = f.Field
	}

	name = fmt.Sprintf("f_%s_%d", name, b.seq)
	b.seq++
	b.args[name] = value

	return ":" + name
}

func (b *clauseBuilder) filter(f Filter) string {
	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	if op, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s %s", column, op, b.bind(f, f.Value))
	}

	switch f.Operator {
	case FilterOperatorLike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", column, b.bind(f, pattern))
	case FilterOperatorIn:
		return b.in(f, column)
	case FilterIsNotNull:
		return column + " IS NOT NULL"
	case FilterIsNull:
		return column + " IS NULL"
	default:
		return ""
	}
}

func (b *clauseBuilder) in(f Filter, column string) string {
	val := reflect.ValueOf(f.Value)

	if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
		return fmt.Sprintf("%s IN (%s)", column, b.bind(f, f.Value))
	}

	if val.Len() == 0 {
		return "FALSE"
	}

	named := make([]string, val.Len())
	for idx := range val.Len() {
		named[idx] = b.bind(f, val.Index(idx).Interface())
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", "))
}

func (b *clauseBuilder) group(g FilterGroup) string {
	clauses := make([]string, 0, len(g.Filters))

	for _, item := range g.Filters {
		var clause string

		switch typed := item.(type) {
		case Filter:
			clause = b.filter(typed)
		case FilterGroup:
			clause = b.group(typed)
		}

		if clause != "" {
			clauses = append(clauses, clause)
		}
	}

	if len(clauses) == 0 {
		return ""
	}

	operator := g.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")"
}
