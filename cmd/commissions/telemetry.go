package main

import (
	"github.com/polisai/commission-board/pkg/config"
	"github.com/polisai/commission-board/pkg/telemetry"
)

func telemetryConfig(cfg *config.Config) telemetry.Config {
	t := cfg.Telemetry
	return telemetry.Config{
		ServiceName:    t.ServiceName,
		Endpoint:       t.OTLPEndpoint,
		Environment:    t.Environment,
		Insecure:       t.Insecure,
		Headers:        t.Headers,
		ResourceTags:   t.ResourceTags,
		MetricInterval: t.MetricInterval,
	}
}
