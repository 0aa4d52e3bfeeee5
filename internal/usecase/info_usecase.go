// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
)

// InfoUsecase defines the interface for the public platform statistics.
type InfoUsecase interface {
	// BaseInfo computes the current statistics rollup.
	BaseInfo(ctx context.Context) (*entity.BaseInfo, error)
}
