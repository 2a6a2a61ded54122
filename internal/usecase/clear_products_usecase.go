package usecase

import (
	"context"
	"fmt"

	"app/internal/repository"

	"go.uber.org/zap"
)

// 同期実行の間のフルリセット。cronIdに関係なく全スナップショットを消す。
type ClearProductsUsecase struct {
	repo   repository.NaverRepository
	logger *zap.Logger
}

// DI
func NewClearProductsUsecase(repo repository.NaverRepository, logger *zap.Logger) *ClearProductsUsecase {
	return &ClearProductsUsecase{repo: repo, logger: logger.Named("naver.clear")}
}

func (u *ClearProductsUsecase) ClearProducts(ctx context.Context, cronID, cronType string) error {
	u.logger.Info("clearing naver product snapshots", zap.String("cron", cronTag(cronType, cronID)))
	if err := u.repo.ClearProducts(ctx); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	return nil
}
