package telemetry

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"

	"github.com/picool/telemetry/pkg/compensation"
)

type Telemetry struct {
	Config         *Config
	ConfigLocation string

	compensation *compensation.Loader

	version string
}

// New validates cfg and configures the global logger from it.
func New(cfg *Config, cfgPath string, version string) (*Telemetry, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	t := &Telemetry{
		Config:         cfg,
		ConfigLocation: cfgPath,
		compensation:   compensation.NewLoader(cfg.CalibrationDir),
		version:        version,
	}

	t.configureLogger()

	return t, nil
}

func (t *Telemetry) Version() string {
	if t.version == "" {
		return "{undefined}"
	}
	return t.version
}

func (t *Telemetry) userAgent() string {
	return fmt.Sprintf("picool-telemetry v%s %s %s", t.Version(), runtime.GOOS, runtime.GOARCH)
}
