package handler

import (
	"net/http"
	"sync"

	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// キュー側のメッセージと同じ形をHTTPで受ける。
type Message struct {
	Pattern string  `json:"pattern"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	CronID string `json:"cronId"`
	Type   string `json:"type"`
	Store  string `json:"store"`

	// saveOriginalProductOptions用
	OriginProductNos []int64 `json:"originProductNos"`

	// deleteNaverOriginProducts用
	MatchedNaverProducts []usecase.MatchedProduct `json:"matchedNaverProducts"`
}

type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func successResponse(data any) Response {
	return Response{Status: "success", Data: data}
}

func errorResponse(message string) Response {
	return Response{Status: "error", Message: message}
}

// パターンごとにパイプラインの操作へ振り分けるディスパッチャ。
// 外部キューの同時実行制限の代わりに、mutexで同時実行を1コマンドに抑える。
type MessageHandler struct {
	search  *usecase.SearchProductsUsecase
	deleter *usecase.DeleteProductsUsecase
	options *usecase.ProductOptionsUsecase
	price   *usecase.PriceUpdateUsecase
	clear   *usecase.ClearProductsUsecase
	logger  *zap.Logger

	mu sync.Mutex
}

// DI
func NewMessageHandler(
	search *usecase.SearchProductsUsecase,
	deleter *usecase.DeleteProductsUsecase,
	options *usecase.ProductOptionsUsecase,
	price *usecase.PriceUpdateUsecase,
	clear *usecase.ClearProductsUsecase,
	logger *zap.Logger,
) *MessageHandler {
	return &MessageHandler{
		search:  search,
		deleter: deleter,
		options: options,
		price:   price,
		clear:   clear,
		logger:  logger.Named("naver.message"),
	}
}

func (h *MessageHandler) RegisterRoutes(e *echo.Echo, guards ...echo.MiddlewareFunc) {
	e.POST("/naver/message", h.Process, guards...)
}

func (h *MessageHandler) Process(c echo.Context) error {
	var msg Message
	if err := c.Bind(&msg); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("invalid message body"))
	}

	// ペイロードにcronIdが無ければ採番する
	if msg.Payload.CronID == "" {
		msg.Payload.CronID = uuid.NewString()
	}

	// 同時に処理するコマンドは常に1つ
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request().Context()
	p := msg.Payload

	h.logger.Info("received message",
		zap.String("pattern", msg.Pattern),
		zap.String("cron", p.Type+p.CronID),
	)

	switch msg.Pattern {
	case "postSearchProducts":
		products, err := h.search.CollectAll(ctx, p.CronID, p.Type)
		if err != nil {
			return h.writeError(c, msg.Pattern, err)
		}
		return c.JSON(http.StatusOK, successResponse(products))

	case "deleteNaverOriginProducts":
		if err := h.deleter.DeleteAll(ctx, p.CronID, p.Type, p.Store, p.MatchedNaverProducts); err != nil {
			return h.writeError(c, msg.Pattern, err)
		}
		return c.JSON(http.StatusOK, successResponse(nil))

	case "saveOriginalProductOptions":
		if err := h.options.SaveOriginalProductOptions(ctx, p.CronID, p.Type, p.Store, p.OriginProductNos); err != nil {
			return h.writeError(c, msg.Pattern, err)
		}
		return c.JSON(http.StatusOK, successResponse(nil))

	case "setNewPrice":
		if err := h.price.SetNewPrice(ctx, p.CronID, p.Type, p.Store); err != nil {
			return h.writeError(c, msg.Pattern, err)
		}
		return c.JSON(http.StatusOK, successResponse(nil))

	case "clearNaverProducts":
		if err := h.clear.ClearProducts(ctx, p.CronID, p.Type); err != nil {
			return h.writeError(c, msg.Pattern, err)
		}
		return c.JSON(http.StatusOK, successResponse(nil))

	default:
		h.logger.Error("unknown message pattern", zap.String("pattern", msg.Pattern))
		return c.JSON(http.StatusBadRequest, errorResponse("unknown pattern: "+msg.Pattern))
	}
}

func (h *MessageHandler) writeError(c echo.Context, pattern string, err error) error {
	h.logger.Error("command failed", zap.String("pattern", pattern), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorResponse(err.Error()))
}
