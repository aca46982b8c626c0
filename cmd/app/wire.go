//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/bootstrap"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/advisory"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/surprise"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/config"
	httpiface "github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/interface/http"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAQIConfig,
		provideSurpriseConfig,
		provideSource,
		provideCache,
		provideWarmer,
		aqi.NewService,
		advisory.NewService,
		surprise.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
