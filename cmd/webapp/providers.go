package main

import (
	"log/slog"

	"github.com/stylehive/outfit-planner/internal/client/closetapi"
	"github.com/stylehive/outfit-planner/internal/infra/config"
)

func provideAPIClient(cfg *config.Config, logger *slog.Logger) *closetapi.Client {
	return closetapi.New(cfg.Web.APIBaseURL, logger)
}
