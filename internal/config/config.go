package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // PostgreSQL配置（书签/评价）
	TourAPI  TourAPIConfig  `mapstructure:"tourapi"`  // 公共数据 TourAPI 配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
	// 允许跨域的前端来源；为空时不挂 CORS 中间件，含 "*" 时放开全部
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// TourAPIConfig 한국관광공사 TourAPI 配置
type TourAPIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`        // API基础地址（含 /B551011/KorService2）
	ServiceKey     string        `mapstructure:"service_key"`     // 公共数据门户发放的服务密钥
	MobileOS       string        `mapstructure:"mobile_os"`       // 客户端OS标识
	MobileApp      string        `mapstructure:"mobile_app"`      // 客户端应用名
	AreaCode       string        `mapstructure:"area_code"`       // 地区码：4=대구광역시
	NumOfRows      int           `mapstructure:"num_of_rows"`     // 每页条数
	Arrange        string        `mapstructure:"arrange"`         // 排序：A=제목순
	Timeout        int           `mapstructure:"timeout"`         // 单次请求超时（秒）
	RetryCount     int           `mapstructure:"retry_count"`     // 最大重试次数
	RetryBackoff   time.Duration `mapstructure:"retry_backoff"`   // 线性退避单位：第n次重试前等待 n*retry_backoff
	MaxConcurrency int           `mapstructure:"max_concurrency"` // 分区并发上限
	Proxy          string        `mapstructure:"proxy"`           // 代理地址
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`       // 响应缓存TTL，0 表示关闭
	CacheSize      int           `mapstructure:"cache_size"`      // 响应缓存最大条目数
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return decode(v)
}

// LoadConfigFromYAML 从内存中的 YAML 加载（测试与嵌入场景）
func LoadConfigFromYAML(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	v.SetTypeByDefaultValue(true)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("tourapi.base_url", "https://apis.data.go.kr/B551011/KorService2")
	v.SetDefault("tourapi.mobile_os", "ETC")
	v.SetDefault("tourapi.mobile_app", "DaeguCulture")
	v.SetDefault("tourapi.area_code", "4")
	v.SetDefault("tourapi.num_of_rows", 50)
	v.SetDefault("tourapi.arrange", "A")
	v.SetDefault("tourapi.timeout", 10)
	v.SetDefault("tourapi.retry_count", 3)
	v.SetDefault("tourapi.retry_backoff", time.Second)
	v.SetDefault("tourapi.max_concurrency", 4)
	v.SetDefault("tourapi.cache_ttl", time.Duration(0))
	v.SetDefault("tourapi.cache_size", 256)
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PUBLIC_DATA_API_KEY"); v != "" {
		cfg.TourAPI.ServiceKey = v
	}
	if v := os.Getenv("TOURAPI_PROXY"); v != "" {
		cfg.TourAPI.Proxy = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
}

// Warnings 返回非致命的配置问题（缺少服务密钥时请求照常发出，由上游拒绝）
func (c *Config) Warnings() []string {
	var warns []string
	if strings.TrimSpace(c.TourAPI.ServiceKey) == "" {
		warns = append(warns, "PUBLIC_DATA_API_KEY 未配置，TourAPI 请求将被上游拒绝")
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		warns = append(warns, "database.dsn 未配置，书签与评价接口不可用")
	}
	return warns
}

// HasCredential 是否已配置 TourAPI 服务密钥（/readyz 使用）
func (t *TourAPIConfig) HasCredential() bool {
	return strings.TrimSpace(t.ServiceKey) != ""
}

// GetGORMConfig 获取GORM配置
func (d *DatabaseConfig) GetGORMConfig() gorm.Config {
	return gorm.Config{} // 可扩展：添加日志、命名策略等
}
