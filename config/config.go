package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用程序配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
	Session  SessionConfig  `mapstructure:"session"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"` // 服务器主机
	Port int    `mapstructure:"port"` // 服务器端口
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type      string `mapstructure:"type"`     // 存储类型：local 或 minio
	Path      string `mapstructure:"path"`     // 本地存储路径
	Bucket    string `mapstructure:"bucket"`   // MinIO桶名称
	Endpoint  string `mapstructure:"endpoint"` // MinIO端点
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"` // 是否使用SSL
}

// GeminiConfig 生成模型配置
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`     // API密钥
	Model       string  `mapstructure:"model"`       // 模型名称
	MaxTokens   int     `mapstructure:"max_tokens"`  // 最大生成token数量
	Temperature float32 `mapstructure:"temperature"` // 采样温度
	Timeout     int     `mapstructure:"timeout"`     // 单次调用超时（秒）
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Type     string `mapstructure:"type"`     // 缓存类型：memory 或 redis
	Address  string `mapstructure:"address"`  // Redis地址
	Password string `mapstructure:"password"` // Redis密码
	DB       int    `mapstructure:"db"`       // Redis数据库
	TTL      int    `mapstructure:"ttl"`      // 提取结果缓存TTL（秒）
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"` // SQLite数据源名称
}

// ExportConfig 卡组导出配置
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"` // .apkg输出目录
}

// SessionConfig 会话配置
type SessionConfig struct {
	TTL int `mapstructure:"ttl"` // 会话过期时间（秒）
}

// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	var config Config

	// 设置默认配置路径
	if configPath == "" {
		configPath = "config.yaml" // 默认在当前目录寻找config.yaml
	}

	// 初始化viper
	v := viper.New()

	// 设置配置文件路径和类型
	v.SetConfigFile(configPath)

	// 尝试读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，创建一个默认配置文件
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found at %s, using defaults", configPath)
			setDefaults(v)
			// 创建默认配置文件
			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err == nil {
				if err := v.WriteConfigAs(configPath); err != nil {
					log.Printf("Warning: Could not write default config to %s: %v", configPath, err)
				}
			}
		} else {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	} else {
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	// 设置默认值
	setDefaults(v)

	// 支持环境变量覆盖
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置到结构体
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	return processEnvironmentVariables(&config), nil
}

// processEnvironmentVariables 处理配置项中的${ENV_VAR}占位符
func processEnvironmentVariables(cfg *Config) *Config {
	cfg.Gemini.APIKey = expandEnvPlaceholder(cfg.Gemini.APIKey)
	cfg.Storage.AccessKey = expandEnvPlaceholder(cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = expandEnvPlaceholder(cfg.Storage.SecretKey)
	cfg.Cache.Password = expandEnvPlaceholder(cfg.Cache.Password)
	return cfg
}

// expandEnvPlaceholder 把${VAR}形式的值替换为对应环境变量的内容
func expandEnvPlaceholder(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envVal := os.Getenv(envVar); envVal != "" {
			return envVal
		}
	}
	return value
}

// setDefaults 设置配置的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// 存储默认配置
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.path", "./uploads")
	v.SetDefault("storage.bucket", "cardgen")
	v.SetDefault("storage.use_ssl", false)

	// 生成模型默认配置
	v.SetDefault("gemini.api_key", "${GOOGLE_API_KEY}")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.max_tokens", 8192)
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.timeout", 120) // 120秒

	// 缓存默认配置
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 3600) // 1小时

	// 数据库默认配置
	v.SetDefault("database.dsn", "data/cardgen.db")

	// 导出默认配置
	v.SetDefault("export.output_dir", "./decks")

	// 会话默认配置
	v.SetDefault("session.ttl", 7200) // 2小时
}
