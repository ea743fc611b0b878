// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package query provides SQL query building utilities for the database package.
package query

import (
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddClause("user_id = ?", userID)
//	wb.AddDateRange("started_at", from, to)
//	wb.AddClause("country_code = ?", "JP")
//	whereClause, args := wb.Build()
//	// user_id = ? AND started_at >= ? AND started_at <= ? AND country_code = ?
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddDateRange adds inclusive bounds on column. Nil bounds are skipped.
func (wb *WhereBuilder) AddDateRange(column string, from, to *time.Time) *WhereBuilder {
	if from != nil {
		wb.clauses = append(wb.clauses, column+" >= ?")
		wb.args = append(wb.args, *from)
	}
	if to != nil {
		wb.clauses = append(wb.clauses, column+" <= ?")
		wb.args = append(wb.args, *to)
	}
	return wb
}

// AddSearch adds a case-insensitive substring match across columns, OR-ed
// together. An empty term is skipped.
func (wb *WhereBuilder) AddSearch(term string, columns ...string) *WhereBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return wb
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + ` ILIKE ? ESCAPE '\'`
		wb.args = append(wb.args, "%"+escapeLike(term)+"%")
	}
	wb.clauses = append(wb.clauses, "("+strings.Join(parts, " OR ")+")")
	return wb
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", []any{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []any) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}
