//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/stylehive/outfit-planner/internal/bootstrap"
	"github.com/stylehive/outfit-planner/internal/client/store"
	"github.com/stylehive/outfit-planner/internal/infra/config"
	"github.com/stylehive/outfit-planner/internal/webui"
	"github.com/stylehive/outfit-planner/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAPIClient,
		store.New,
		webui.NewHandler,
		webui.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
