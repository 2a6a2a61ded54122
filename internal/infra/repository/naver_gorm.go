package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type NaverGormRepository struct {
	db *gorm.DB
}

// DI
func NewNaverGormRepository(db *gorm.DB) *NaverGormRepository {
	return &NaverGormRepository{db: db}
}

// 商品スナップショットを1回のバッチINSERTで保存する。
// Optionsはアソシエーション経由で一緒にINSERTされる。
func (r *NaverGormRepository) SaveProducts(ctx context.Context, products []model.NaverProduct) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

// cronIdの価格変更レコードを保存順（id昇順）で返す。
func (r *NaverGormRepository) FindUpdatedProducts(ctx context.Context, cronID string) ([]model.NaverUpdatedProduct, error) {
	var products []model.NaverUpdatedProduct
	err := r.db.WithContext(ctx).
		Preload("Options").
		Where("cron_id = ?", cronID).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// スナップショット全削除。オプション（子）→商品（親）の順で消す。
func (r *NaverGormRepository) ClearProducts(ctx context.Context) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.NaverProductOption{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.NaverProduct{}).Error
}
