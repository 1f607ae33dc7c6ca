package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv 读取工作目录下的 .env（不存在时静默跳过）。
// 密钥类配置（数据库口令、JWT secret）推荐走这里而不是写进 JSON。
func LoadDotEnv() {
	_ = godotenv.Load()
}

// applyEnvOverrides 用环境变量覆盖部分配置项。
// 只覆盖运维上需要区分环境的字段，不做全量映射。
func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("FLEET_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FLEET_DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Database.Port = p
		}
	}
	if v := os.Getenv("FLEET_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FLEET_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FLEET_DB_NAME"); v != "" {
		cfg.Database.Database = v
	}
	if v := os.Getenv("FLEET_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("FLEET_KAFKA_BROKERS"); v != "" {
		brokers := make([]string, 0, 4)
		for _, b := range strings.Split(v, ",") {
			b = strings.TrimSpace(b)
			if b != "" {
				brokers = append(brokers, b)
			}
		}
		if len(brokers) > 0 {
			cfg.Kafka.Brokers = brokers
		}
	}
	if v := os.Getenv("FLEET_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("FLEET_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
