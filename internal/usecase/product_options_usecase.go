package usecase

import (
	"context"
	"fmt"

	"app/internal/domain/model"
	"app/internal/naverapi"
	"app/internal/pacing"
	"app/internal/repository"

	"go.uber.org/zap"
)

const (
	// API呼び出しのまとまり（進捗ログ用。呼び出し自体は1件ずつ）
	optionFetchBatchSize = 10

	// この件数たまったらDBへフラッシュする
	optionSaveBatchSize = 100
)

// 原商品を1件ずつ取得し、オプション込みのスナップショットをバッチ保存する。
type ProductOptionsUsecase struct {
	api    OriginProductAPI
	repo   repository.NaverRepository
	tokens naverapi.TokenProvider
	pacer  pacing.Pacer
	clock  Clock
	logger *zap.Logger
}

// DI
func NewProductOptionsUsecase(
	api OriginProductAPI,
	repo repository.NaverRepository,
	tokens naverapi.TokenProvider,
	pacer pacing.Pacer,
	clock Clock,
	logger *zap.Logger,
) *ProductOptionsUsecase {
	return &ProductOptionsUsecase{
		api:    api,
		repo:   repo,
		tokens: tokens,
		pacer:  pacer,
		clock:  clock,
		logger: logger.Named("naver.options"),
	}
}

func (u *ProductOptionsUsecase) SaveOriginalProductOptions(ctx context.Context, cronID, cronType, store string, originProductNos []int64) error {
	if _, err := u.tokens.AccessToken(ctx); err != nil {
		return fmt.Errorf("acquire access token: %w", err)
	}

	tag := cronTag(cronType, cronID)
	u.logger.Info("collecting product options",
		zap.String("cron", tag),
		zap.Int("total", len(originProductNos)),
	)

	processed, failed, err := u.run(ctx, cronID, tag, originProductNos)
	if err != nil {
		return err
	}

	u.logger.Info("product option collection finished",
		zap.String("cron", tag),
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
	return nil
}

// 取得バッチ（10件、ログ用）と保存バッチ（100件）は別のカウンタ。
// 取得失敗は失敗数に数えて続行、保存失敗は即時中断。
func (u *ProductOptionsUsecase) run(ctx context.Context, cronID, tag string, originProductNos []int64) (processed, failed int, err error) {
	var batched []model.NaverProduct

	for i := 0; i < len(originProductNos); i += optionFetchBatchSize {
		end := i + optionFetchBatchSize
		if end > len(originProductNos) {
			end = len(originProductNos)
		}
		batch := originProductNos[i:end]

		u.logger.Info("processing fetch batch",
			zap.String("cron", tag),
			zap.Int("batch", i/optionFetchBatchSize+1),
			zap.Int("size", len(batch)),
		)

		for _, originProductNo := range batch {
			origin, fetchErr := u.api.GetOriginProduct(ctx, originProductNo)
			if fetchErr != nil {
				failed++
				u.logger.Error("fetch origin product failed",
					zap.String("cron", tag),
					zap.Int64("originProductNo", originProductNo),
					zap.Error(fetchErr),
				)
			} else {
				batched = append(batched, u.buildSnapshot(cronID, originProductNo, origin))
			}

			if waitErr := u.pacer.Wait(ctx); waitErr != nil {
				return processed, failed, waitErr
			}
		}

		processed += len(batch)

		if len(batched) >= optionSaveBatchSize {
			u.logger.Info("flushing save batch", zap.String("cron", tag), zap.Int("size", optionSaveBatchSize))
			if err := u.flush(ctx, batched[:optionSaveBatchSize]); err != nil {
				return processed, failed, err
			}
			batched = append([]model.NaverProduct(nil), batched[optionSaveBatchSize:]...)
		}
	}

	// 残りを最終フラッシュ
	if len(batched) > 0 {
		u.logger.Info("flushing final batch", zap.String("cron", tag), zap.Int("size", len(batched)))
		if err := u.flush(ctx, batched); err != nil {
			return processed, failed, err
		}
	}

	return processed, failed, nil
}

func (u *ProductOptionsUsecase) flush(ctx context.Context, products []model.NaverProduct) error {
	if err := u.repo.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

func (u *ProductOptionsUsecase) buildSnapshot(cronID string, originProductNo int64, origin naverapi.OriginProduct) model.NaverProduct {
	product := model.NaverProduct{
		OriginProductNo:      originProductNo,
		SellerManagementCode: origin.SellerManagementCode(),
		ProductName:          origin.Name(),
		SalePrice:            origin.SalePrice(),
		CronID:               cronID,
		CreatedAt:            u.clock.Now(),
	}

	for _, combination := range origin.OptionCombinations() {
		product.Options = append(product.Options, model.NaverProductOption{
			OptionID:      combination.ID(),
			OptionName:    combination.OptionName(),
			StockQuantity: combination.StockQuantity(),
			OptionPrice:   combination.Price(),
			Usable:        combination.Usable(),
		})
	}

	return product
}
