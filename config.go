package telemetry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/picool/telemetry/pkg/sensors"
)

var (
	DefaultCfgPath        string
	defaultCalibrationDir string
)

const (
	envAmbientSensor      = "PICOOL_AMBIENT_SENSOR"
	envFreezerSensor      = "PICOOL_FREEZER_SENSOR"
	envRefrigeratorSensor = "PICOOL_REFRIGERATOR_SENSOR"
	envCalibrationDir     = "PICOOL_CALIBRATION_DIR"
)

const defaultConfigHeader = `# This is the config file for picool-telemetry.
# Sensor paths point at the sysfs files exposing milli-degrees Celsius,
# e.g. /sys/bus/w1/devices/28-0316a2794dff/temperature
# Compensation records are read from <calibration_dir>/comp_<sensor id>.

`

type Config struct {
	AmbientSensor      string `toml:"ambient_sensor"`
	FreezerSensor      string `toml:"freezer_sensor"`
	RefrigeratorSensor string `toml:"refrigerator_sensor"`
	CalibrationDir     string `toml:"calibration_dir"`

	LogFile   string   `toml:"log"`
	LogLevel  LogLevel `toml:"log_level"`
	LogSyslog string   `toml:"log_syslog"`

	// LockFile, when set, prevents overlapping runs. Must be absolute.
	LockFile string `toml:"lock_file"`
}

func NewConfig() *Config {
	return &Config{
		CalibrationDir: defaultCalibrationDir,
		LogLevel:       LogLevelError,
	}
}

// NewConfigFromEnv returns the defaults seeded with the PICOOL_* environment
// variables. Values from a config file take precedence over these.
func NewConfigFromEnv() *Config {
	cfg := NewConfig()

	if v := os.Getenv(envAmbientSensor); v != "" {
		cfg.AmbientSensor = v
	}
	if v := os.Getenv(envFreezerSensor); v != "" {
		cfg.FreezerSensor = v
	}
	if v := os.Getenv(envRefrigeratorSensor); v != "" {
		cfg.RefrigeratorSensor = v
	}
	if v := os.Getenv(envCalibrationDir); v != "" {
		cfg.CalibrationDir = v
	}

	return cfg
}

func (cfg *Config) SensorPaths() sensors.Paths {
	return sensors.Paths{
		Ambient:      cfg.AmbientSensor,
		Freezer:      cfg.FreezerSensor,
		Refrigerator: cfg.RefrigeratorSensor,
	}
}

func (cfg *Config) Validate() error {
	for _, role := range sensors.Roles {
		if cfg.SensorPaths().Get(role) == "" {
			return fmt.Errorf("%s_sensor is not set", role)
		}
	}

	if cfg.CalibrationDir == "" {
		return errors.New("calibration_dir is not set")
	}

	if !cfg.LogLevel.IsValid() {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}

	if cfg.LockFile != "" && !filepath.IsAbs(cfg.LockFile) {
		return fmt.Errorf("lock_file must be an absolute path, got %q", cfg.LockFile)
	}

	return nil
}

func (cfg *Config) DumpToml() string {
	buff := &bytes.Buffer{}
	enc := toml.NewEncoder(buff)
	err := enc.Encode(cfg)
	if err != nil {
		return fmt.Sprintf("# failed to encode config: %s\n", err.Error())
	}

	return buff.String()
}

// TryUpdateConfigFromFile applies the values present in the file on top of cfg.
func TryUpdateConfigFromFile(cfg *Config, configFilePath string) error {
	_, err := toml.DecodeFile(configFilePath, cfg)
	if err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", configFilePath)
	}

	return nil
}

// GenerateDefaultConfigFile writes cfg to configFilePath. It refuses to
// overwrite an existing file.
func GenerateDefaultConfigFile(cfg *Config, configFilePath string) error {
	if _, err := os.Stat(configFilePath); err == nil {
		return fmt.Errorf("config file already exists: %s", configFilePath)
	}

	dir := filepath.Dir(configFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create the config dir %s", dir)
	}

	f, err := os.OpenFile(configFilePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to create the default config file %s", configFilePath)
	}
	defer f.Close()

	if _, err := f.WriteString(defaultConfigHeader); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", configFilePath)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrapf(err, "failed to encode config to file %s", configFilePath)
	}

	return nil
}

// HandleAllConfigSetup builds the configuration from the environment and the
// optional config file. A missing config file is not an error.
func HandleAllConfigSetup(configFilePath string) (*Config, error) {
	cfg := NewConfigFromEnv()

	if configFilePath != "" {
		_, err := os.Stat(configFilePath)
		switch {
		case os.IsNotExist(err):
			log.WithField("path", configFilePath).Debug("config file not found, using environment and defaults")
		case err != nil:
			return nil, errors.Wrapf(err, "failed to stat config file %s", configFilePath)
		default:
			if err := TryUpdateConfigFromFile(cfg, configFilePath); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}
