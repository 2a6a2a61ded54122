package repository

import (
	"app/internal/domain/model"
	"context"
)

// ネイバー商品スナップショットと価格変更レコードの永続化だけを約束。
type NaverRepository interface {
	// 商品を子オプションごと一括保存する
	SaveProducts(ctx context.Context, products []model.NaverProduct) error

	// cronIdの価格変更レコードをオプション込み・保存順で返す
	FindUpdatedProducts(ctx context.Context, cronID string) ([]model.NaverUpdatedProduct, error)

	// 全スナップショットを無条件に削除する（cronIdで絞らない）
	ClearProducts(ctx context.Context) error
}
