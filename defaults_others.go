//go:build !darwin
// +build !darwin

package telemetry

func init() {
	DefaultCfgPath = "/etc/picool/telemetry.conf"
	defaultCalibrationDir = "/var/lib/picool"
}
