package usecase

import (
	"context"
	"fmt"
	"sync"

	"app/internal/domain/model"
	"app/internal/naverapi"
	"app/internal/notification"
	"app/internal/pacing"
	"app/internal/report"
	"app/internal/repository"

	"go.uber.org/zap"
)

// 承認済みの価格変更をネイバーへ反映し、結果レポートを非同期で送る。
type PriceUpdateUsecase struct {
	api      OriginProductAPI
	repo     repository.NaverRepository
	tokens   naverapi.TokenProvider
	notifier notification.Notifier
	report   report.Writer
	pacer    pacing.Pacer
	logger   *zap.Logger

	// 切り離したレポートタスクの完了待ち（シャットダウン用）
	wg sync.WaitGroup
}

// DI
func NewPriceUpdateUsecase(
	api OriginProductAPI,
	repo repository.NaverRepository,
	tokens naverapi.TokenProvider,
	notifier notification.Notifier,
	reportWriter report.Writer,
	pacer pacing.Pacer,
	logger *zap.Logger,
) *PriceUpdateUsecase {
	return &PriceUpdateUsecase{
		api:      api,
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		report:   reportWriter,
		pacer:    pacer,
		logger:   logger.Named("naver.price"),
	}
}

// cronIdの価格変更レコードを保存順に1件ずつ反映する。
// 1件の失敗は記録して続行し、実行全体は止めない。
// 戻った時点でレポート送信が済んでいる保証はない（切り離しタスク）。
func (u *PriceUpdateUsecase) SetNewPrice(ctx context.Context, cronID, cronType, store string) error {
	if _, err := u.tokens.AccessToken(ctx); err != nil {
		return fmt.Errorf("acquire access token: %w", err)
	}

	tag := cronTag(cronType, cronID)
	u.logger.Info("starting price update", zap.String("cron", tag))

	products, err := u.repo.FindUpdatedProducts(ctx, cronID)
	if err != nil {
		return fmt.Errorf("load updated products: %w", err)
	}

	successCount := 0
	failedCount := 0

	for i, product := range products {
		u.logger.Info("applying price update",
			zap.String("cron", tag),
			zap.Int("index", i+1),
			zap.Int("total", len(products)),
			zap.Int64("originProductNo", product.OriginProductNo),
		)

		if err := u.applyProduct(ctx, product); err != nil {
			failedCount++
			u.logger.Error("price update failed",
				zap.String("cron", tag),
				zap.Int64("originProductNo", product.OriginProductNo),
				zap.String("productName", product.ProductName),
				zap.Int64("newPrice", product.NewPrice),
				zap.Error(err),
			)
			continue
		}

		successCount++
		if err := u.pacer.Wait(ctx); err != nil {
			return err
		}
	}

	u.scheduleReport(cronID, cronType, store, products, successCount, failedCount)

	u.logger.Info("price update finished",
		zap.String("cron", tag),
		zap.Int("success", successCount),
		zap.Int("failed", failedCount),
	)
	return nil
}

// 原商品を取得し、販売価格と一致するオプションの価格だけを上書きして全量PUTする。
// 変更レコード側にしかないオプションは無視、ネイバー側にしかないオプションは触らない。
func (u *PriceUpdateUsecase) applyProduct(ctx context.Context, product model.NaverUpdatedProduct) error {
	origin, err := u.api.GetOriginProduct(ctx, product.OriginProductNo)
	if err != nil {
		return err
	}

	origin.SetSalePrice(product.NewPrice)

	for _, combination := range origin.OptionCombinations() {
		for _, updated := range product.Options {
			if updated.OptionID == combination.ID() {
				combination.SetPrice(updated.NewOptionPrice)
			}
		}
	}

	return u.api.UpdateOriginProduct(ctx, product.OriginProductNo, origin)
}

// レポート生成と通知はコマンドから切り離して実行する。
// 失敗はログに残すだけで、呼び出し元には伝播しない。
func (u *PriceUpdateUsecase) scheduleReport(cronID, cronType, store string, products []model.NaverUpdatedProduct, successCount, failedCount int) {
	tag := cronTag(cronType, cronID)

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()

		filePath, err := u.report.WriteUpdateReport(cronID, store, products)
		if err != nil {
			u.logger.Error("write update report failed", zap.String("cron", tag), zap.Error(err))
			return
		}

		u.logger.Info("update report written", zap.String("cron", tag), zap.String("file", filePath))

		err = u.notifier.PublishUpdateReport(context.Background(), notification.UpdateReport{
			FilePath:     filePath,
			SuccessCount: successCount,
			FailedCount:  failedCount,
			Store:        store,
			SmartStore:   notification.PlatformNaver,
		})
		if err != nil {
			u.logger.Error("publish update report failed", zap.String("cron", tag), zap.Error(err))
		}
	}()
}

// 走っているレポートタスクの完了を待つ。シャットダウン時に呼ぶ。
func (u *PriceUpdateUsecase) Wait() {
	u.wg.Wait()
}
