package usecase

import (
	"context"
	"time"

	"app/internal/naverapi"
)

type Clock interface {
	Now() time.Time
}

// 商品検索（ページ単位）
type ProductSearcher interface {
	SearchProductPage(ctx context.Context, page int) (naverapi.SearchPage, error)
}

// 原商品の取得・更新・削除
type OriginProductAPI interface {
	GetOriginProduct(ctx context.Context, originProductNo int64) (naverapi.OriginProduct, error)
	UpdateOriginProduct(ctx context.Context, originProductNo int64, product naverapi.OriginProduct) error
	DeleteOriginProduct(ctx context.Context, originProductNo int64) error
}

// cronの表示用プレフィックス（例: "SOLDOUT-cron-123"）
func cronTag(cronType, cronID string) string {
	return cronType + cronID
}
