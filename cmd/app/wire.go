//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/cropsense/leafscan/internal/bootstrap"
	"github.com/cropsense/leafscan/internal/domain/detection"
	"github.com/cropsense/leafscan/internal/infra/config"
	httpiface "github.com/cropsense/leafscan/internal/interface/http"
	"github.com/cropsense/leafscan/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDetectionConfig,
		provideNormalizer,
		provideVisionClient,
		provideScanRepository,
		provideImageStore,
		provideResultCache,
		detection.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
