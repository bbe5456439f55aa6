package ledger

import (
	"gorm.io/gorm"
)

// VoterStake is the stake recorded for one voter. It is the weight oracle of the offline list.
type VoterStake struct {
	gorm.Model
	Address string `gorm:"uniqueIndex;not null"` // bech32 account address
	Weight  string `gorm:"not null"`             // decimal uint64; SQLite integers are signed
}

// ListSettings records the thresholds the stored list is arranged by. There is a single row.
type ListSettings struct {
	gorm.Model
	Thresholds string // comma separated, see types.ParseThresholds
}
