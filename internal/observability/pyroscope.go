package observability

import (
	"github.com/grafana/pyroscope-go"

	"github.com/efantasy/league-service/internal/config"
	"github.com/efantasy/league-service/internal/platform/logging"
)

// InitPyroscope starts continuous profiling when enabled.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.Pyroscope.Enabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.Pyroscope.AppName,
		ServerAddress:     cfg.Pyroscope.ServerAddress,
		AuthToken:         cfg.Pyroscope.AuthToken,
		BasicAuthUser:     cfg.Pyroscope.BasicAuthUser,
		BasicAuthPassword: cfg.Pyroscope.BasicAuthPassword,
		UploadRate:        cfg.Pyroscope.UploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.Pyroscope.ServerAddress,
		"application", cfg.Pyroscope.AppName,
	)

	return profiler.Stop, nil
}
