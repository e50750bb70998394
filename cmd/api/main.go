package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/handlers"
	httpmiddleware "tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/notify"
	"tasktracker/internal/adapter/store"
	"tasktracker/internal/app/service"
	"tasktracker/internal/config"
	"tasktracker/internal/core/ports"
	"tasktracker/internal/core/schedule"
	"tasktracker/pkg/translator"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := buildLogger(cfg.LogFile)
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationDir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageJa},
	})

	var repo ports.TaskRepository
	if cfg.TasksFile != "" {
		repo = store.NewFile(cfg.TasksFile, cfg.Location)
		logger.Info("using file-backed task store", zap.String("path", cfg.TasksFile))
	} else {
		repo = store.NewMemory(nil)
		logger.Info("using in-memory task store")
	}

	scheduler := schedule.NewScheduler(schedule.SystemClock())
	notifier := notify.NewLogNotifier(logger)
	taskService := service.NewTaskService(repo, scheduler, notifier, cfg.Location)
	if err := taskService.Start(context.Background()); err != nil {
		logger.Fatal("failed to arm reminders", zap.Error(err))
	}
	defer taskService.Stop()

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	healthHandler := handlers.NewHealthHandler(repo)
	taskHandler := handlers.NewTaskHandler(taskService, cfg.Location)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

// buildLogger returns a production zap logger; when logFile is set, output
// goes through a size-rotated file instead of stderr.
func buildLogger(logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewProduction()
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	})
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, writer, zapcore.InfoLevel)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
