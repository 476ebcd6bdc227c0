//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/stylehive/outfit-planner/internal/bootstrap"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/domain/stylist"
	"github.com/stylehive/outfit-planner/internal/infra/config"
	httpiface "github.com/stylehive/outfit-planner/internal/interface/http"
	"github.com/stylehive/outfit-planner/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideServiceConfig,
		providePgxPool,
		provideUserRepository,
		provideClothingRepository,
		provideOutfitRepository,
		provideImageStore,
		provideAnalyzer,
		provideAnalysisCache,
		closet.NewService,
		stylist.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
