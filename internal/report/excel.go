package report

import (
	"fmt"
	"path/filepath"
	"time"

	"app/internal/domain/model"

	"github.com/xuri/excelize/v2"
)

// 価格更新1回分のレポートファイルを書き出し、そのパスを返す。
type Writer interface {
	WriteUpdateReport(cronID, store string, products []model.NaverUpdatedProduct) (string, error)
}

var reportColumns = []string{
	"originProductNo",
	"productName",
	"sellerManagementCode",
	"onchSellerPrice",
	"salePrice",
	"comparisonPrice",
	"newPrice",
	"cronId",
}

// xlsx形式のレポートライター。1実行＝1ファイル、1レコード＝1行。
type ExcelWriter struct {
	dir string
	now func() time.Time
}

func NewExcelWriter(dir string) *ExcelWriter {
	return &ExcelWriter{dir: dir, now: time.Now}
}

func (w *ExcelWriter) WriteUpdateReport(cronID, store string, products []model.NaverUpdatedProduct) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	// シート名: naver-<store>-<YYMMDD>
	sheet := fmt.Sprintf("naver-%s-%s", store, w.now().Format("060102"))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	if err := w.writeRow(f, sheet, 1, headerCells()); err != nil {
		return "", err
	}

	for i, p := range products {
		cells := []any{
			p.OriginProductNo,
			p.ProductName,
			p.SellerManagementCode,
			p.OnchSellerPrice,
			p.SalePrice,
			p.ComparisonPrice,
			p.NewPrice,
			p.CronID,
		}
		if err := w.writeRow(f, sheet, i+2, cells); err != nil {
			return "", err
		}
	}

	path := filepath.Join(w.dir, fmt.Sprintf("naver_%s.xlsx", cronID))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report %s: %w", path, err)
	}
	return path, nil
}

func (w *ExcelWriter) writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, value := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, value); err != nil {
			return fmt.Errorf("write cell %s: %w", name, err)
		}
	}
	return nil
}

func headerCells() []any {
	cells := make([]any, len(reportColumns))
	for i, c := range reportColumns {
		cells[i] = c
	}
	return cells
}
