package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/notifier"
	infraRepo "app/internal/infra/repository"
	"app/internal/naverapi"
	"app/internal/pacing"
	"app/internal/report"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .envはあれば読む（本番は環境変数だけ）
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.NaverProduct{},
		&model.NaverProductOption{},
		&model.NaverUpdatedProduct{},
		&model.NaverUpdatedOption{},
	); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	//Repository（GORM実装）生成
	naverRepo := infraRepo.NewNaverGormRepository(gormDB)

	//ネイバーAPIクライアント
	tokens := naverapi.NewSignatureTokenProvider(cfg.NaverAPIBaseURL, cfg.NaverClientID, cfg.NaverClientSecret)
	apiClient := naverapi.NewClient(cfg.NaverAPIBaseURL, tokens)

	//usecaseに渡す部品
	clock := &realClock{}
	mailNotifier := notifier.NewAMQPNotifier(cfg.RabbitMQURL, cfg.MailQueue)
	reportWriter := report.NewExcelWriter(cfg.ReportDir)

	//API呼び出し間隔（削除は1秒、その他は500ms）
	deletePacer := pacing.NewFixedDelay(1000 * time.Millisecond)
	fetchPacer := pacing.NewFixedDelay(500 * time.Millisecond)

	//Usecase生成
	searchUC := usecase.NewSearchProductsUsecase(apiClient, tokens, logger)
	deleteUC := usecase.NewDeleteProductsUsecase(apiClient, tokens, mailNotifier, deletePacer, logger)
	optionsUC := usecase.NewProductOptionsUsecase(apiClient, naverRepo, tokens, fetchPacer, clock, logger)
	priceUC := usecase.NewPriceUpdateUsecase(apiClient, naverRepo, tokens, mailNotifier, reportWriter, fetchPacer, logger)
	clearUC := usecase.NewClearProductsUsecase(naverRepo, logger)

	//Handler生成
	messageH := handler.NewMessageHandler(searchUC, deleteUC, optionsUC, priceUC, clearUC, logger)

	//Server起動
	srv := server.New(cfg, messageH)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("start server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	//シグナルで停止。走っているレポートタスクを待ってから終える。
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown server", zap.Error(err))
	}
	priceUC.Wait()
	logger.Info("stopped")
}
