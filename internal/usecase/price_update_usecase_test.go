package usecase

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"
	"app/internal/naverapi"
	"app/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func updatedProductFixture() model.NaverUpdatedProduct {
	return model.NaverUpdatedProduct{
		OriginProductNo: 10,
		ProductName:     "shirt",
		NewPrice:        1500,
		CronID:          "cron-1",
		Options: []model.NaverUpdatedOption{
			{OptionID: 900, NewOptionPrice: 700},
		},
	}
}

// 2オプション持ちの原商品。未知フィールドも持たせて全量PUTの維持を確認する。
func priceOriginFixture() naverapi.OriginProduct {
	return naverapi.OriginProduct{
		"name":        "shirt",
		"salePrice":   float64(1000),
		"customField": "untouched",
		"detailAttribute": map[string]any{
			"optionInfo": map[string]any{
				"optionCombinations": []any{
					map[string]any{"id": float64(900), "price": float64(500)},
					map[string]any{"id": float64(901), "price": float64(600)},
				},
			},
		},
	}
}

func newPriceUsecase(api *OriginAPIMock, repo *NaverRepoMock, notifier *NotifierMock, writer *ReportWriterMock, pacer *CountingPacer) *PriceUpdateUsecase {
	return NewPriceUpdateUsecase(api, repo, okTokens(), notifier, writer, pacer, zap.NewNop())
}

func TestPriceUpdateUsecase_SetNewPrice_OverwritesMatchingOptionsOnly(t *testing.T) {
	origin := priceOriginFixture()

	api := new(OriginAPIMock)
	api.On("GetOriginProduct", mock.Anything, int64(10)).Return(origin, nil).Once()
	api.On("UpdateOriginProduct", mock.Anything, int64(10), mock.Anything).Return(nil).Once()

	repo := new(NaverRepoMock)
	repo.On("FindUpdatedProducts", mock.Anything, "cron-1").
		Return([]model.NaverUpdatedProduct{updatedProductFixture()}, nil).Once()

	notifier := new(NotifierMock)
	notifier.On("PublishUpdateReport", mock.Anything, mock.Anything).Return(nil).Once()

	writer := new(ReportWriterMock)
	writer.On("WriteUpdateReport", "cron-1", "storeA", mock.Anything).Return("/tmp/naver_cron-1.xlsx", nil).Once()

	pacer := &CountingPacer{}
	uc := newPriceUsecase(api, repo, notifier, writer, pacer)

	err := uc.SetNewPrice(context.Background(), "cron-1", "PRICE-", "storeA")
	assert.NoError(t, err)
	uc.Wait()

	// 販売価格と一致したオプションだけ書き換わり、他はそのまま
	assert.Equal(t, int64(1500), origin.SalePrice())
	combinations := origin.OptionCombinations()
	assert.Equal(t, int64(700), combinations[0].Price())
	assert.Equal(t, int64(600), combinations[1].Price())
	assert.Equal(t, "untouched", origin["customField"])

	// PUTには同じオブジェクトが渡る
	sent := api.Calls[1].Arguments.Get(2).(naverapi.OriginProduct)
	assert.Equal(t, int64(1500), sent.SalePrice())

	report := notifier.Calls[0].Arguments.Get(1).(notification.UpdateReport)
	assert.Equal(t, "/tmp/naver_cron-1.xlsx", report.FilePath)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 0, report.FailedCount)
	assert.Equal(t, "storeA", report.Store)
	assert.Equal(t, "naver", report.SmartStore)

	// 成功した件の後だけディレイ
	assert.Equal(t, 1, pacer.Calls)
}

func TestPriceUpdateUsecase_SetNewPrice_RecordFailureIsIsolated(t *testing.T) {
	first := updatedProductFixture()
	second := updatedProductFixture()
	second.OriginProductNo = 11

	api := new(OriginAPIMock)
	api.On("GetOriginProduct", mock.Anything, int64(10)).Return(nil, errors.New("api down")).Once()
	api.On("GetOriginProduct", mock.Anything, int64(11)).Return(priceOriginFixture(), nil).Once()
	api.On("UpdateOriginProduct", mock.Anything, int64(11), mock.Anything).Return(nil).Once()

	repo := new(NaverRepoMock)
	repo.On("FindUpdatedProducts", mock.Anything, "cron-1").
		Return([]model.NaverUpdatedProduct{first, second}, nil).Once()

	notifier := new(NotifierMock)
	notifier.On("PublishUpdateReport", mock.Anything, mock.Anything).Return(nil).Once()

	writer := new(ReportWriterMock)
	writer.On("WriteUpdateReport", "cron-1", "storeA", mock.Anything).Return("/tmp/r.xlsx", nil).Once()

	pacer := &CountingPacer{}
	uc := newPriceUsecase(api, repo, notifier, writer, pacer)

	err := uc.SetNewPrice(context.Background(), "cron-1", "PRICE-", "storeA")
	assert.NoError(t, err)
	uc.Wait()

	report := notifier.Calls[0].Arguments.Get(1).(notification.UpdateReport)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)

	// 失敗した件の後はディレイ無し
	assert.Equal(t, 1, pacer.Calls)
	api.AssertExpectations(t)
}

func TestPriceUpdateUsecase_SetNewPrice_LoadErrorIsFatal(t *testing.T) {
	repo := new(NaverRepoMock)
	repo.On("FindUpdatedProducts", mock.Anything, "cron-1").Return(nil, errors.New("db down")).Once()

	notifier := new(NotifierMock)
	writer := new(ReportWriterMock)
	uc := newPriceUsecase(new(OriginAPIMock), repo, notifier, writer, &CountingPacer{})

	err := uc.SetNewPrice(context.Background(), "cron-1", "PRICE-", "storeA")
	assert.Error(t, err)
	writer.AssertNotCalled(t, "WriteUpdateReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestPriceUpdateUsecase_SetNewPrice_ReportWriteFailureSkipsNotification(t *testing.T) {
	repo := new(NaverRepoMock)
	repo.On("FindUpdatedProducts", mock.Anything, "cron-1").Return([]model.NaverUpdatedProduct{}, nil).Once()

	notifier := new(NotifierMock)
	writer := new(ReportWriterMock)
	writer.On("WriteUpdateReport", "cron-1", "storeA", mock.Anything).Return("", errors.New("disk full")).Once()

	uc := newPriceUsecase(new(OriginAPIMock), repo, notifier, writer, &CountingPacer{})

	err := uc.SetNewPrice(context.Background(), "cron-1", "PRICE-", "storeA")
	assert.NoError(t, err)
	uc.Wait()

	notifier.AssertNotCalled(t, "PublishUpdateReport", mock.Anything, mock.Anything)
}

func TestClearProductsUsecase_ClearProducts(t *testing.T) {
	repo := new(NaverRepoMock)
	repo.On("ClearProducts", mock.Anything).Return(nil).Once()

	uc := NewClearProductsUsecase(repo, zap.NewNop())
	assert.NoError(t, uc.ClearProducts(context.Background(), "cron-1", "CLEAR-"))
	repo.AssertExpectations(t)
}
