package config

import (
    "strings"

    "github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
    Server   ServerConfig   `mapstructure:"server"`
    Database DatabaseConfig `mapstructure:"database"`
    Redis    RedisConfig    `mapstructure:"redis"`
    JWT      JWTConfig      `mapstructure:"jwt"`
    Sentry   SentryConfig   `mapstructure:"sentry"`
    Trace    TraceConfig    `mapstructure:"trace"`
    Feed     FeedConfig     `mapstructure:"feed"`
}

type ServerConfig struct {
    Host string `mapstructure:"host"`
    Port int    `mapstructure:"port"`
    Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
    Driver   string `mapstructure:"driver"` // postgres, sqlite
    Host     string `mapstructure:"host"`
    Port     int    `mapstructure:"port"`
    User     string `mapstructure:"user"`
    Password string `mapstructure:"password"`
    DBName   string `mapstructure:"dbname"`
    SSLMode  string `mapstructure:"sslmode"`
    // sqlite 专用：文件路径，":memory:" 用于本地/测试
    Path string `mapstructure:"path"`

    MaxOpenConns int `mapstructure:"max_open_conns"`
    MaxIdleConns int `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
    Addr     string `mapstructure:"addr"`
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
    Secret      string `mapstructure:"secret"`
    ExpireHours int    `mapstructure:"expire_hours"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
    Enabled  bool   `mapstructure:"enabled"`
    Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint
}

// FeedConfig 信息流参数
type FeedConfig struct {
    DefaultPageSize int     `mapstructure:"default_page_size"`
    MaxPageSize     int     `mapstructure:"max_page_size"`
    DefaultRadiusKm float64 `mapstructure:"default_radius_km"`
    // 附近页地理过滤前的候选扫描上限
    NearbyScanLimit int `mapstructure:"nearby_scan_limit"`
}

// Load 读取配置：config.yaml + 环境变量（APP_ 前缀）
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")

    v.SetEnvPrefix("APP")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    setDefaults(v)

    if err := v.ReadInConfig(); err != nil {
        // 无配置文件时使用默认值 + 环境变量
        if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
            return nil, err
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}

func setDefaults(v *viper.Viper) {
    v.SetDefault("server.host", "0.0.0.0")
    v.SetDefault("server.port", 8080)
    v.SetDefault("server.mode", "debug")

    v.SetDefault("database.driver", "postgres")
    v.SetDefault("database.host", "127.0.0.1")
    v.SetDefault("database.port", 5432)
    v.SetDefault("database.user", "postgres")
    v.SetDefault("database.password", "postgres")
    v.SetDefault("database.dbname", "discover")
    v.SetDefault("database.sslmode", "disable")
    v.SetDefault("database.path", "discover.db")
    v.SetDefault("database.max_open_conns", 50)
    v.SetDefault("database.max_idle_conns", 10)

    v.SetDefault("redis.addr", "127.0.0.1:6379")
    v.SetDefault("redis.db", 0)

    v.SetDefault("jwt.secret", "dev-secret-change-me")
    v.SetDefault("jwt.expire_hours", 72)

    v.SetDefault("trace.enabled", false)
    v.SetDefault("trace.endpoint", "127.0.0.1:4318")

    v.SetDefault("feed.default_page_size", 20)
    v.SetDefault("feed.max_page_size", 50)
    v.SetDefault("feed.default_radius_km", 50)
    v.SetDefault("feed.nearby_scan_limit", 500)
}
