package usecase

import (
	"context"
	"fmt"

	"app/internal/naverapi"

	"go.uber.org/zap"
)

// 全ページの商品収集。途中失敗は全体の失敗（部分結果は返さない）。
type SearchProductsUsecase struct {
	api    ProductSearcher
	tokens naverapi.TokenProvider
	logger *zap.Logger
}

// DI
func NewSearchProductsUsecase(api ProductSearcher, tokens naverapi.TokenProvider, logger *zap.Logger) *SearchProductsUsecase {
	return &SearchProductsUsecase{
		api:    api,
		tokens: tokens,
		logger: logger.Named("naver.search"),
	}
}

// 1ページ目からtotalPagesまで順に取得し、channelProductsを連結して返す。
// 同じページは二度取得しない。進捗は10%刻みでログに出す。
func (u *SearchProductsUsecase) CollectAll(ctx context.Context, cronID, cronType string) ([]naverapi.ChannelProduct, error) {
	if _, err := u.tokens.AccessToken(ctx); err != nil {
		return nil, fmt.Errorf("acquire access token: %w", err)
	}

	tag := cronTag(cronType, cronID)
	all := []naverapi.ChannelProduct{}
	lastReportedProgress := 0

	for page := 1; ; page++ {
		u.logger.Info("fetching product page", zap.String("cron", tag), zap.Int("page", page))

		result, err := u.api.SearchProductPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("search products page %d: %w", page, err)
		}

		for _, content := range result.Contents {
			all = append(all, content.ChannelProducts...)
		}

		if result.TotalPages > 0 {
			progress := page * 100 / result.TotalPages / 10 * 10
			if progress > lastReportedProgress {
				u.logger.Info("collection progress",
					zap.String("cron", tag),
					zap.Int("percent", progress),
				)
				lastReportedProgress = progress
			}
		}

		// 最終ページで終了
		if page >= result.TotalPages {
			break
		}
	}

	u.logger.Info("collected all product pages",
		zap.String("cron", tag),
		zap.Int("count", len(all)),
	)
	return all, nil
}
