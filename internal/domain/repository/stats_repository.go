// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
)

// StatsRepository computes the read-only platform statistics rollup.
// Values are computed at request time; no staleness guarantee is given.
type StatsRepository interface {
	// BaseInfo returns review count, average rating, business user count and
	// offer count in one pass.
	BaseInfo(ctx context.Context) (*entity.BaseInfo, error)
}
