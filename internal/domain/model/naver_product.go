package model

import "time"

// 옵션 조회で収集したネイバー商品のスナップショット。
// OptionSnapshotLoaderが一括作成し、clearNaverProductsが一括削除する。
// 個別更新はしない。
type NaverProduct struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// ネイバー側の原商品番号（業務キー）
	OriginProductNo int64 `gorm:"not null;index" json:"origin_product_no"`

	// 販売者管理コード
	SellerManagementCode string `gorm:"type:varchar(255);not null" json:"seller_management_code"`

	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"`
	SalePrice   int64  `gorm:"not null" json:"sale_price"`

	// どのクロン実行で作られたか
	CronID string `gorm:"type:varchar(50);not null;index;column:cron_id" json:"cron_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	// 親削除で子も削除される
	Options []NaverProductOption `gorm:"foreignKey:NaverProductID;constraint:OnDelete:CASCADE" json:"options"`
}

func (NaverProduct) TableName() string {
	return "naver_product"
}

// 商品1件に属するオプションのスナップショット。
type NaverProductOption struct {
	ID             int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	NaverProductID int64 `gorm:"not null;index" json:"naver_product_id"`

	// ネイバー側のオプションID
	OptionID int64 `gorm:"not null" json:"option_id"`

	OptionName    string `gorm:"type:varchar(255)" json:"option_name"`
	StockQuantity int64  `json:"stock_quantity"`
	OptionPrice   int64  `json:"option_price"`
	Usable        bool   `gorm:"not null;default:true" json:"usable"`
}

func (NaverProductOption) TableName() string {
	return "naver_product_option"
}
