package config

import "go.uber.org/zap"

// NewLogger builds the sugared zap logger shared by every service.
func NewLogger(env, service string) *zap.SugaredLogger {
	var base *zap.Logger
	if env == "development" {
		base = zap.Must(zap.NewDevelopment())
	} else {
		base = zap.Must(zap.NewProduction())
	}
	return base.Sugar().With("service", service)
}
