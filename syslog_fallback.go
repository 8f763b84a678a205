//go:build windows || nacl || plan9
// +build windows nacl plan9

package telemetry

import "github.com/pkg/errors"

func addSyslogHook(syslogURL string) error {
	return errors.New("syslog is not available on this platform")
}
