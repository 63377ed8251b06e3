package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
	"gopkg.in/yaml.v3"
)

var ctx = context.Background()

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// SessionConfig controls the signed session cookie issued at login.
type SessionConfig struct {
	Secret     string `yaml:"secret"`
	Expire     int64  `yaml:"expire"` // seconds
	CookieName string `yaml:"cookie_name"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// UploadConfig fixes where item/bid images land and how they are served back.
type UploadConfig struct {
	Dir        string `yaml:"dir"`         // filesystem directory for uploaded files
	PublicBase string `yaml:"public_base"` // URL prefix the static handler serves Dir under
}

// RetryConfig names the bounded-retry policy applied to lock-contended
// database statements.
type RetryConfig struct {
	MaxAttempts int   `yaml:"max_attempts"`
	DelayMillis int64 `yaml:"delay_ms"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Upload  UploadConfig  `yaml:"upload"`
	Retry   RetryConfig   `yaml:"retry"`
}

var GlobalConfig *Config
var RedisClient *redis.Client

func InitConfig(path string) {
	data, err := os.ReadFile(path + "/config.yaml")
	if err != nil {
		log.Fatalf("Read config failed: %v", err)
	}
	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		log.Fatalf("Parse config failed: %v", err)
	}
	applyEnvOverrides()
	applyDefaults()
}

func InitRedis() {
	opt := &redis.Options{
		Addr:     GlobalConfig.Redis.Addr,
		Password: GlobalConfig.Redis.Password,
		DB:       GlobalConfig.Redis.DB,
	}
	if GlobalConfig.Redis.TLS {
		opt.TLSConfig = &tls.Config{}
	}
	RedisClient = redis.NewClient(opt)
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		panic(fmt.Sprintf("Redis connect failed: %v", err))
	}
	fmt.Println("Redis connected!")
}

func applyEnvOverrides() {
	if GlobalConfig == nil {
		return
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		GlobalConfig.MySQL.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		GlobalConfig.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		GlobalConfig.Redis.Password = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		GlobalConfig.Server.Port = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		GlobalConfig.Session.Secret = v
	}
	if v := os.Getenv("SESSION_EXPIRE"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			GlobalConfig.Session.Expire = parsed
		}
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		GlobalConfig.Upload.Dir = v
	}
}

func applyDefaults() {
	if GlobalConfig == nil {
		return
	}
	if GlobalConfig.Session.CookieName == "" {
		GlobalConfig.Session.CookieName = "fm_session"
	}
	if GlobalConfig.Session.Expire <= 0 {
		GlobalConfig.Session.Expire = 86400
	}
	if GlobalConfig.Upload.Dir == "" {
		GlobalConfig.Upload.Dir = "static/uploads"
	}
	if GlobalConfig.Upload.PublicBase == "" {
		GlobalConfig.Upload.PublicBase = "/static"
	}
	if GlobalConfig.Retry.MaxAttempts <= 0 {
		GlobalConfig.Retry.MaxAttempts = 5
	}
	if GlobalConfig.Retry.DelayMillis <= 0 {
		GlobalConfig.Retry.DelayMillis = 100
	}
}
