package notification

import "context"

const PlatformNaver = "naver"

// 削除1件分の通知エントリ
type DeletedProduct struct {
	OriginProductNo int64  `json:"originProductNo"`
	ProductName     string `json:"productName"`
}

// 一括削除の結果通知
type DeletionReport struct {
	DeletedProducts []DeletedProduct `json:"deletedProducts"`
	Type            string           `json:"type"`
	Store           string           `json:"store"`
	PlatformName    string           `json:"platformName"`
}

// 価格更新レポートの通知（エクセルファイルの所在を含む）
type UpdateReport struct {
	FilePath     string `json:"filePath"`
	SuccessCount int    `json:"successCount"`
	FailedCount  int    `json:"failedCount"`
	Store        string `json:"store"`
	SmartStore   string `json:"smartStore"`
}

// メール側への結果通知。配送は非同期で、失敗してもコマンドには伝播させない。
type Notifier interface {
	PublishDeletionReport(ctx context.Context, report DeletionReport) error
	PublishUpdateReport(ctx context.Context, report UpdateReport) error
}
