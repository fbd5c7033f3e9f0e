package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AuthModeToken  = "token"  // Bearer token + 用户表，角色以库里为准
	AuthModeHeader = "header" // 可信请求头直接给身份，演示/测试用

	SenderLog   = "log"
	SenderKafka = "kafka"
	SenderEmail = "email"
)

type Config struct {
	HTTPAddr string
	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret  string
	RefreshSecret string

	AuthMode     string
	NotifySender string

	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// 可选的管理员引导账号，首次启动且库里没有 admin 时创建
	AdminEmail    string
	AdminPassword string
}

// Load 读取 .env（存在时）和环境变量，缺省值适合本地开发
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		MySQLDSN: getEnv("MYSQL_DSN",
			"user:password@tcp(127.0.0.1:3306)/campus_hub?charset=utf8mb4&parseTime=True"),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),

		AuthMode:     getEnv("AUTH_MODE", AuthModeToken),
		NotifySender: getEnv("NOTIFY_SENDER", SenderLog),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "127.0.0.1:9092")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "campus-notifications"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "CampusHub <no-reply@example.com>"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
