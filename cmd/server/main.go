package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadilmartias/resume-ats-scanner/internal/config"
	"github.com/fadilmartias/resume-ats-scanner/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-ats-scanner/internal/extract"
	applogger "github.com/fadilmartias/resume-ats-scanner/internal/logger"
	"github.com/fadilmartias/resume-ats-scanner/internal/middleware"
	"github.com/fadilmartias/resume-ats-scanner/internal/repository"
	"github.com/fadilmartias/resume-ats-scanner/internal/service"
	"github.com/fadilmartias/resume-ats-scanner/internal/session"
	"github.com/fadilmartias/resume-ats-scanner/internal/usecase"
	"github.com/fadilmartias/resume-ats-scanner/internal/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// comparisonUploadFiles is how many max-size files one comparison upload may carry.
const comparisonUploadFiles = 10

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	scannerConfig := config.LoadScannerConfig()

	zl, err := applogger.New(appConfig.LogJSON, appConfig.LogDebug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := service.NewCompleter(ctx, scannerConfig.LLMProvider, zl)
	if err != nil {
		zl.Fatal("init completion client", zap.String("provider", scannerConfig.LLMProvider), zap.Error(err))
	}
	extractor, err := extract.New(scannerConfig.PDFExtractor, zl)
	if err != nil {
		zl.Fatal("init pdf extractor", zap.String("backend", scannerConfig.PDFExtractor), zap.Error(err))
	}
	renderer, err := view.New()
	if err != nil {
		zl.Fatal("init page renderer", zap.Error(err))
	}

	sessions := repository.NewSessionRepository(
		scannerConfig.MaxSessions,
		scannerConfig.SessionTTL,
		session.Options{
			QACacheSize:         scannerConfig.QACacheSize,
			ComparisonCacheSize: scannerConfig.ComparisonCacheSize,
		},
		zl,
	)
	uc := usecase.NewScannerUsecase(extractor, completer, zl)
	scannerHandler := handler.NewScannerHandler(uc, renderer, appConfig, zl)

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    (appConfig.MaxUploadMB*comparisonUploadFiles + 1) * 1024 * 1024,
		Immutable:    true,
		ErrorHandler: scannerHandler.ErrorHandler,
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	// Use middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
		ContentSecurityPolicy:     "default-src 'self'; style-src 'self' 'unsafe-inline'",
	}))

	app.Use(middleware.RateLimiter(appConfig.RateLimitMax, appConfig.RateLimitWindow))

	app.Use(middleware.Session(sessions, scannerConfig.SessionTTL, appConfig.IsProduction()))

	scannerHandler.RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			zl.Error("shutdown", zap.Error(err))
		}
	}()

	zl.Info("server running",
		zap.String("addr", appConfig.Port),
		zap.String("env", appConfig.Env),
		zap.String("provider", completer.Name()),
		zap.String("pdf_extractor", scannerConfig.PDFExtractor),
	)
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("listen", zap.Error(err))
	}
}
