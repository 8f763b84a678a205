//go:build darwin
// +build darwin

package telemetry

import (
	"os"
)

func init() {
	DefaultCfgPath = os.Getenv("HOME") + "/.picool/telemetry.conf"
	defaultCalibrationDir = os.Getenv("HOME") + "/.picool"
}
