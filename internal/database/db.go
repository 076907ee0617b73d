package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fyerfyer/card-gen-system/internal/models"
)

// DB 全局数据库连接
var DB *gorm.DB

// Config 数据库配置
type Config struct {
	Type         string        // 数据库类型：sqlite
	DSN          string        // 数据源名称
	MaxOpenConns int           // 最大打开连接数
	MaxIdleConns int           // 最大空闲连接数
	MaxLifetime  time.Duration // 连接最大生命周期
}

// DefaultConfig 返回默认数据库配置
func DefaultConfig() *Config {
	return &Config{
		Type:         "sqlite",
		DSN:          "data/cardgen.db", // 默认SQLite数据库路径
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		MaxLifetime:  time.Hour,
	}
}

// Setup 设置并初始化数据库连接
func Setup(cfg *Config, log *logrus.Logger) error {
	var err error
	var dialector gorm.Dialector

	switch cfg.Type {
	case "sqlite":
		// 确保目录存在
		if err := ensureDir(cfg.DSN); err != nil {
			return fmt.Errorf("failed to create database directory: %v", err)
		}
		dialector = sqlite.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	// 创建GORM日志配置
	gormLogger := logger.New(
		&logrusWriter{log},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %v", err)
	}

	// 设置连接池参数
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	// 自动迁移模型
	if err := autoMigrate(); err != nil {
		return fmt.Errorf("failed to auto migrate: %v", err)
	}

	log.Info("Database connection established successfully")
	return nil
}

// MustDB 获取全局数据库连接，未初始化时panic
func MustDB() *gorm.DB {
	if DB == nil {
		panic("database is not initialized, call database.Setup first")
	}
	return DB
}

// Close 关闭数据库连接
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %v", err)
	}

	return sqlDB.Close()
}

// autoMigrate 自动迁移数据库模型
func autoMigrate() error {
	return DB.AutoMigrate(
		&models.SourceFile{},
		&models.DeckExport{},
	)
}

// ensureDir 确保目录存在
func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %v", err)
		}
	}
	return nil
}

// logrusWriter 实现gorm.Writer接口，将日志输出到logrus
type logrusWriter struct {
	logger *logrus.Logger
}

// Printf 实现io.Writer接口，将GORM日志转发到logrus
func (w *logrusWriter) Printf(format string, args ...interface{}) {
	w.logger.Tracef(format, args...)
}
