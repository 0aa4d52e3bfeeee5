// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/pkg/errors"
)

// infoService implements the InfoUsecase interface.
type infoService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewInfoService is the constructor for infoService.
func NewInfoService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.InfoUsecase {
	return &infoService{
		txManager: txManager,
		logger:    logger,
	}
}

// BaseInfo computes the public statistics rollup at request time.
func (srv *infoService) BaseInfo(ctx context.Context) (*entity.BaseInfo, error) {
	var info *entity.BaseInfo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		computed, err := repoFactory.StatsRepo().BaseInfo(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to compute base info")
		}
		info = computed

		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}
