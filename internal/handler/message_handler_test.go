package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MsgNaverRepoMock struct{ mock.Mock }

func (m *MsgNaverRepoMock) SaveProducts(ctx context.Context, products []model.NaverProduct) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MsgNaverRepoMock) FindUpdatedProducts(ctx context.Context, cronID string) ([]model.NaverUpdatedProduct, error) {
	args := m.Called(ctx, cronID)
	products, _ := args.Get(0).([]model.NaverUpdatedProduct)
	return products, args.Error(1)
}

func (m *MsgNaverRepoMock) ClearProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// clear以外のusecaseはディスパッチ確認だけなので依存はnilのまま
func newTestHandler(repo *MsgNaverRepoMock) *MessageHandler {
	logger := zap.NewNop()
	return NewMessageHandler(
		usecase.NewSearchProductsUsecase(nil, nil, logger),
		usecase.NewDeleteProductsUsecase(nil, nil, nil, nil, logger),
		usecase.NewProductOptionsUsecase(nil, repo, nil, nil, nil, logger),
		usecase.NewPriceUpdateUsecase(nil, repo, nil, nil, nil, nil, logger),
		usecase.NewClearProductsUsecase(repo, logger),
		logger,
	)
}

func postMessage(t *testing.T, h *MessageHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/naver/message", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Process(e.NewContext(req, rec)))
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var res Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestMessageHandler_Process_UnknownPattern(t *testing.T) {
	repo := new(MsgNaverRepoMock)
	h := newTestHandler(repo)

	rec := postMessage(t, h, `{"pattern":"doSomethingElse","payload":{"cronId":"cron-1"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeResponse(t, rec)
	assert.Equal(t, "error", res.Status)
	assert.Contains(t, res.Message, "doSomethingElse")

	// 未知のパターンは何も実行しない
	repo.AssertNotCalled(t, "ClearProducts", mock.Anything)
	repo.AssertNotCalled(t, "FindUpdatedProducts", mock.Anything, mock.Anything)
}

func TestMessageHandler_Process_ClearProducts(t *testing.T) {
	repo := new(MsgNaverRepoMock)
	repo.On("ClearProducts", mock.Anything).Return(nil).Once()

	h := newTestHandler(repo)
	rec := postMessage(t, h, `{"pattern":"clearNaverProducts","payload":{"cronId":"cron-1","type":"CLEAR-"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeResponse(t, rec).Status)
	repo.AssertExpectations(t)
}

func TestMessageHandler_Process_CommandErrorReturns500(t *testing.T) {
	repo := new(MsgNaverRepoMock)
	repo.On("ClearProducts", mock.Anything).Return(errors.New("db down")).Once()

	h := newTestHandler(repo)
	rec := postMessage(t, h, `{"pattern":"clearNaverProducts","payload":{"cronId":"cron-1"}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	res := decodeResponse(t, rec)
	assert.Equal(t, "error", res.Status)
	assert.Contains(t, res.Message, "db down")
}

func TestMessageHandler_Process_InvalidBody(t *testing.T) {
	h := newTestHandler(new(MsgNaverRepoMock))
	rec := postMessage(t, h, `{not-json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", decodeResponse(t, rec).Status)
}

func TestMessageHandler_Process_DeleteWithEmptyListSucceeds(t *testing.T) {
	h := newTestHandler(new(MsgNaverRepoMock))
	rec := postMessage(t, h, `{"pattern":"deleteNaverOriginProducts","payload":{"cronId":"cron-1","store":"storeA","matchedNaverProducts":[]}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeResponse(t, rec).Status)
}
