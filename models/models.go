package models

import (
	"time"

	"gorm.io/gorm"
)

// Region is the coarse geographic routing zone that constrains which
// carrier channels are offered. The upstream backend knows exactly three.
type Region string

const (
	RegionUSCentral Region = "US-CENTRAL"
	RegionUSEast    Region = "US-EAST"
	RegionUSWest    Region = "US-WEST"
)

func (r Region) Valid() bool {
	switch r {
	case RegionUSCentral, RegionUSEast, RegionUSWest:
		return true
	}
	return false
}

// FileLog records spreadsheets already consumed by the rate-sheet processor
// so a re-dropped file is skipped.
type FileLog struct {
	gorm.Model
	Filename     string `gorm:"unique;not null"`
	DateModified time.Time
}

// OperationLog is an audit trail row for mutating back-office operations.
type OperationLog struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	Username  string `json:"username"`
	Operation string `json:"operation"`
	RefNo     string `json:"ref_no"`
	Detail    string `json:"detail"`
	CreatedAt time.Time
}
