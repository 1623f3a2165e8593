package specification

import "gorm.io/gorm"

// Specification narrows a lead or knowledge query; repositories apply them in order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
