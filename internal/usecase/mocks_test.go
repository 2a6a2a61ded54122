package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"
	"app/internal/naverapi"
	"app/internal/notification"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type SearcherMock struct{ mock.Mock }

func (m *SearcherMock) SearchProductPage(ctx context.Context, page int) (naverapi.SearchPage, error) {
	args := m.Called(ctx, page)
	result, _ := args.Get(0).(naverapi.SearchPage)
	return result, args.Error(1)
}

type OriginAPIMock struct{ mock.Mock }

func (m *OriginAPIMock) GetOriginProduct(ctx context.Context, originProductNo int64) (naverapi.OriginProduct, error) {
	args := m.Called(ctx, originProductNo)
	product, _ := args.Get(0).(naverapi.OriginProduct)
	return product, args.Error(1)
}

func (m *OriginAPIMock) UpdateOriginProduct(ctx context.Context, originProductNo int64, product naverapi.OriginProduct) error {
	args := m.Called(ctx, originProductNo, product)
	return args.Error(0)
}

func (m *OriginAPIMock) DeleteOriginProduct(ctx context.Context, originProductNo int64) error {
	args := m.Called(ctx, originProductNo)
	return args.Error(0)
}

type TokenProviderMock struct{ mock.Mock }

func (m *TokenProviderMock) AccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type NaverRepoMock struct{ mock.Mock }

func (m *NaverRepoMock) SaveProducts(ctx context.Context, products []model.NaverProduct) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *NaverRepoMock) FindUpdatedProducts(ctx context.Context, cronID string) ([]model.NaverUpdatedProduct, error) {
	args := m.Called(ctx, cronID)
	products, _ := args.Get(0).([]model.NaverUpdatedProduct)
	return products, args.Error(1)
}

func (m *NaverRepoMock) ClearProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) PublishDeletionReport(ctx context.Context, report notification.DeletionReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *NotifierMock) PublishUpdateReport(ctx context.Context, report notification.UpdateReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

type ReportWriterMock struct{ mock.Mock }

func (m *ReportWriterMock) WriteUpdateReport(cronID, store string, products []model.NaverUpdatedProduct) (string, error) {
	args := m.Called(cronID, store, products)
	return args.String(0), args.Error(1)
}

// ディレイ無しで呼び出し回数だけ数えるPacer
type CountingPacer struct {
	Calls int
}

func (p *CountingPacer) Wait(ctx context.Context) error {
	p.Calls++
	return ctx.Err()
}

type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

func okTokens() *TokenProviderMock {
	tokens := new(TokenProviderMock)
	tokens.On("AccessToken", mock.Anything).Return("token", nil)
	return tokens
}
