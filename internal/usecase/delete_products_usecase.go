package usecase

import (
	"context"
	"fmt"

	"app/internal/naverapi"
	"app/internal/notification"
	"app/internal/pacing"

	"go.uber.org/zap"
)

// 削除対象（突き合わせ済みのネイバー商品）。
// 名前はペイロードによってnameかproductNameで来る。
type MatchedProduct struct {
	OriginProductNo int64  `json:"originProductNo"`
	Name            string `json:"name"`
	ProductName     string `json:"productName"`
}

func (m MatchedProduct) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ProductName
}

// 指定された商品を順に削除し、1件でも成功したら削除メールを依頼する。
type DeleteProductsUsecase struct {
	api      OriginProductAPI
	tokens   naverapi.TokenProvider
	notifier notification.Notifier
	pacer    pacing.Pacer
	logger   *zap.Logger
}

// DI
func NewDeleteProductsUsecase(
	api OriginProductAPI,
	tokens naverapi.TokenProvider,
	notifier notification.Notifier,
	pacer pacing.Pacer,
	logger *zap.Logger,
) *DeleteProductsUsecase {
	return &DeleteProductsUsecase{
		api:      api,
		tokens:   tokens,
		notifier: notifier,
		pacer:    pacer,
		logger:   logger.Named("naver.delete"),
	}
}

// 入力順に1件ずつ削除する。個別の失敗はログだけ残して続行。
// 各件の後に成否を問わず固定ディレイを入れる。
func (u *DeleteProductsUsecase) DeleteAll(ctx context.Context, cronID, cronType, store string, products []MatchedProduct) error {
	if len(products) == 0 {
		return nil
	}

	if _, err := u.tokens.AccessToken(ctx); err != nil {
		return fmt.Errorf("acquire access token: %w", err)
	}

	tag := cronTag(cronType, cronID)
	var deleted []notification.DeletedProduct

	for _, product := range products {
		if err := u.api.DeleteOriginProduct(ctx, product.OriginProductNo); err != nil {
			u.logger.Error("delete origin product failed",
				zap.String("cron", tag),
				zap.Int64("originProductNo", product.OriginProductNo),
				zap.Error(err),
			)
		} else {
			u.logger.Info("deleted origin product",
				zap.String("cron", tag),
				zap.Int64("originProductNo", product.OriginProductNo),
			)
			deleted = append(deleted, notification.DeletedProduct{
				OriginProductNo: product.OriginProductNo,
				ProductName:     product.DisplayName(),
			})
		}

		if err := u.pacer.Wait(ctx); err != nil {
			return err
		}
	}

	if len(deleted) > 0 {
		report := notification.DeletionReport{
			DeletedProducts: deleted,
			Type:            cronType,
			Store:           store,
			PlatformName:    notification.PlatformNaver,
		}
		// 通知失敗はコマンドの失敗にしない
		if err := u.notifier.PublishDeletionReport(ctx, report); err != nil {
			u.logger.Error("publish deletion report failed", zap.String("cron", tag), zap.Error(err))
		}
	}

	return nil
}
