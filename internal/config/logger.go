package config

import "go.uber.org/zap"

func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
