package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// sortableLeadColumns guards OrderBy, whose field is interpolated into SQL.
var sortableLeadColumns = map[string]bool{
	"captured_at": true,
	"name":        true,
	"email":       true,
	"platform":    true,
	"plan":        true,
}

// OrderBy sorts by a lead column; unknown columns fall back to captured_at.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	field := s.Field
	if !sortableLeadColumns[field] {
		field = "captured_at"
	}
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", field, direction))
}

// Pagination with Limit <= 0 returns every row after Offset.
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}

// FilterBy is an equality match on a trusted column name.
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s = ?", s.Field), s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}
