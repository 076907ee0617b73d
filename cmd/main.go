package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fyerfyer/card-gen-system/api"
	"github.com/fyerfyer/card-gen-system/api/handler"
	"github.com/fyerfyer/card-gen-system/api/middleware"
	appconfig "github.com/fyerfyer/card-gen-system/config"
	"github.com/fyerfyer/card-gen-system/internal/anki"
	"github.com/fyerfyer/card-gen-system/internal/cache"
	"github.com/fyerfyer/card-gen-system/internal/database"
	"github.com/fyerfyer/card-gen-system/internal/extract"
	"github.com/fyerfyer/card-gen-system/internal/gemini"
	"github.com/fyerfyer/card-gen-system/internal/repository"
	"github.com/fyerfyer/card-gen-system/internal/services"
	"github.com/fyerfyer/card-gen-system/internal/session"
	"github.com/fyerfyer/card-gen-system/pkg/storage"
)

// 命令行选项
type options struct {
	Mode         string        // 运行模式 (debug/release)
	LogLevel     string        // 日志级别
	LogFile      string        // 日志文件路径，为空时输出到标准输出
	ConfigFile   string        // 配置文件路径
	ReadTimeout  time.Duration // 读取超时
	WriteTimeout time.Duration // 写入超时
}

func main() {
	// 加载.env文件（存在时）
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env file")
	}

	opts := parseFlags()

	// 加载配置文件
	cfg, err := appconfig.Load(opts.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置Gin模式
	gin.SetMode(opts.Mode)

	// 初始化日志
	logger := setupLogger(opts)
	logger.Info("Starting card generation service...")

	// 初始化数据库
	if err := setupDatabase(cfg, logger); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// 创建文件存储服务
	fileStorage, err := setupStorage(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// 创建缓存服务
	cacheService, err := setupCache(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	// 创建生成模型客户端
	geminiClient, err := setupGemini(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	// 创建会话存取器
	sessions := session.NewStore(cacheService, time.Duration(cfg.Session.TTL)*time.Second)

	// 创建文本提取器，提取结果按内容摘要缓存
	extractor := extract.NewExtractor(geminiClient,
		extract.WithCache(cacheService, time.Duration(cfg.Cache.TTL)*time.Second),
		extract.WithLogger(logger),
	)

	// 创建历史记录仓储
	historyRepo := repository.NewHistoryRepository()

	// 初始化业务服务
	sourceService := services.NewSourceService(fileStorage, extractor, sessions,
		services.WithSourceHistory(historyRepo),
		services.WithSourceLogger(logger),
	)
	cardService := services.NewCardService(geminiClient, sessions)

	if err := os.MkdirAll(cfg.Export.OutputDir, 0755); err != nil {
		logger.Fatalf("Failed to create export directory: %v", err)
	}
	deckService := services.NewDeckService(anki.NewPackager(cfg.Export.OutputDir), sessions,
		services.WithDeckHistory(historyRepo),
	)

	// 初始化API处理器
	sessionHandler := handler.NewSessionHandler(sessions, sourceService, historyRepo)
	sourceHandler := handler.NewSourceHandler(sourceService)
	cardHandler := handler.NewCardHandler(cardService, sessions)
	deckHandler := handler.NewDeckHandler(deckService)
	promptHandler := handler.NewPromptHandler()

	// 设置路由
	r := api.SetupRouter(sessionHandler, sourceHandler, cardHandler, deckHandler, promptHandler)

	// 启动HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}

	// 优雅关闭
	go func() {
		logger.Infof("Server is running on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// parseFlags 解析命令行参数
func parseFlags() options {
	opts := options{}

	flag.StringVar(&opts.Mode, "mode", "debug", "Run mode (debug/release)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Log file path (stdout if empty)")
	flag.StringVar(&opts.ConfigFile, "config", "", "Path to config file")
	flag.DurationVar(&opts.ReadTimeout, "read-timeout", 30*time.Second, "Read timeout")
	// 提取和生成调用可能很慢，写超时要放宽
	flag.DurationVar(&opts.WriteTimeout, "write-timeout", 5*time.Minute, "Write timeout")

	flag.Parse()
	return opts
}

// setupLogger 设置日志系统
func setupLogger(opts options) *logrus.Logger {
	logger := middleware.GetLogger()

	switch opts.LogLevel {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	// 配置了日志文件时输出到滚动文件
	if opts.LogFile != "" {
		logger.SetOutput(&lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     30, // 天
			Compress:   true,
		})
	}

	return logger
}

// setupStorage 设置文件存储服务
func setupStorage(cfg *appconfig.Config) (storage.Storage, error) {
	if cfg.Storage.Type == "minio" {
		return storage.NewMinioStorage(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
	}

	// 确保本地存储目录存在
	if err := os.MkdirAll(cfg.Storage.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}

	return storage.NewLocalStorage(storage.LocalConfig{
		Path: cfg.Storage.Path,
	})
}

// setupCache 设置缓存服务
func setupCache(cfg *appconfig.Config) (cache.Cache, error) {
	cacheConfig := cache.Config{
		Type:            cfg.Cache.Type,
		DefaultTTL:      time.Duration(cfg.Cache.TTL) * time.Second,
		CleanupInterval: 10 * time.Minute,
	}

	if cfg.Cache.Type == "redis" {
		cacheConfig.RedisAddr = cfg.Cache.Address
		cacheConfig.RedisPassword = cfg.Cache.Password
		cacheConfig.RedisDB = cfg.Cache.DB
	}

	return cache.NewCache(cacheConfig)
}

// setupGemini 设置生成模型客户端
func setupGemini(cfg *appconfig.Config) (gemini.Client, error) {
	return gemini.NewClient("google",
		gemini.WithAPIKey(cfg.Gemini.APIKey),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithMaxTokens(cfg.Gemini.MaxTokens),
		gemini.WithTemperature(float64(cfg.Gemini.Temperature)),
		gemini.WithTimeout(time.Duration(cfg.Gemini.Timeout)*time.Second),
	)
}

// setupDatabase 设置数据库
func setupDatabase(cfg *appconfig.Config, logger *logrus.Logger) error {
	dbConfig := database.DefaultConfig()
	if cfg.Database.DSN != "" {
		dbConfig.DSN = cfg.Database.DSN
	}

	return database.Setup(dbConfig, logger)
}
