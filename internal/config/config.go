package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはクライアント全体の設定
type Config struct {
	BaseURL string // APIのベースURL（http://localhost:8080/api）

	SessionFile string // セッション永続化先のパス

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		BaseURL:     os.Getenv("API_BASE_URL"),
		SessionFile: os.Getenv("SESSION_FILE"),
		GoEnv:       os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.SessionFile == "" {
		return Config{}, fmt.Errorf("SESSION_FILE is required")
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	return cfg, nil
}

// MockAPIConfigはモックサーバーの設定
type MockAPIConfig struct {
	Port       string // サーバーポート（8080）
	JWTSecret  string // JWT署名シークレット
	BcryptCost int    // bcryptコスト
}

// LoadMockAPIは環境変数
func LoadMockAPI() (MockAPIConfig, error) {
	cost := 10
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return MockAPIConfig{}, fmt.Errorf("BCRYPT_COST must be number: %w", err)
		}
		cost = i
	}

	cfg := MockAPIConfig{
		Port:       os.Getenv("PORT"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: cost,
	}

	//必須チェック
	if cfg.Port == "" {
		return MockAPIConfig{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return MockAPIConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
