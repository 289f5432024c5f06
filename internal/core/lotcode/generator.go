// Package lotcode provides domain contracts for production lot-code generation.
// Implementations live in the infrastructure layer.
package lotcode

import (
	"context"
	"fmt"
	"time"
)

// Generator issues unique lot codes for production batches.
//
// A lot code is `YYYYMMDD-NNN` where NNN is a zero-padded per-day sequence.
// Implementations must make the sequence allocation atomic per day so that
// concurrent batch creation never yields duplicate codes.
type Generator interface {
	// NextLotCode returns the next lot code for the given production day.
	NextLotCode(ctx context.Context, day time.Time) (string, error)
}

// DayPrefix formats the date part of a lot code.
func DayPrefix(day time.Time) string {
	return day.Format("20060102")
}

// Format builds a lot code from a day and a sequence number.
func Format(day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%03d", DayPrefix(day), seq)
}
