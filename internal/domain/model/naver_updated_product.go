package model

import "time"

// 外部の突き合わせ処理が作る承認済み価格変更レコード。
// このサービスは読み取り専用（setNewPriceが消費するだけで削除・更新しない）。
type NaverUpdatedProduct struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	OriginProductNo int64  `gorm:"not null;index" json:"origin_product_no"`
	ProductName     string `gorm:"type:varchar(255);not null" json:"product_name"`

	SellerManagementCode string `gorm:"type:varchar(255)" json:"seller_management_code"`

	// 仕入れ側の販売者価格
	OnchSellerPrice int64 `gorm:"not null;column:onch_seller_price" json:"onch_seller_price"`

	// 比較対象にしたストア
	ComparisonStore string `gorm:"type:varchar(255)" json:"comparison_store"`

	// 現在の販売価格
	SalePrice int64 `gorm:"not null" json:"sale_price"`

	// 競合（比較）価格
	ComparisonPrice int64 `gorm:"not null" json:"comparison_price"`

	// 計算済みの新価格
	NewPrice int64 `gorm:"not null" json:"new_price"`

	CronID string `gorm:"type:varchar(50);not null;index;column:cron_id" json:"cron_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Options []NaverUpdatedOption `gorm:"foreignKey:NaverUpdatedProductID;constraint:OnDelete:CASCADE" json:"options"`
}

func (NaverUpdatedProduct) TableName() string {
	return "naver_updated_product"
}

// 価格変更レコードに属するオプション単位の変更。
type NaverUpdatedOption struct {
	ID                    int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	NaverUpdatedProductID int64 `gorm:"not null;index;column:naver_updated_product_id" json:"naver_updated_product_id"`

	OptionID   int64  `gorm:"not null" json:"option_id"`
	OptionName string `gorm:"type:varchar(255)" json:"option_name"`

	// 既存のオプション価格
	OptionPrice int64 `gorm:"not null" json:"option_price"`

	// 競合（比較）オプション価格
	ComparisonOptionPrice int64 `gorm:"not null" json:"comparison_option_price"`

	// 新しいオプション価格
	NewOptionPrice int64 `gorm:"not null" json:"new_option_price"`
}

func (NaverUpdatedOption) TableName() string {
	return "naver_updated_item"
}
