package model

import "time"

// Sequenz is a named counter row for sequential numbering (customer,
// invoice, receipt numbers). Incremented only under a row lock.
type Sequenz struct {
	ID        uint   `gorm:"primaryKey"`
	Bereich   string `gorm:"size:32;uniqueIndex;not null"`
	Zaehler   int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
