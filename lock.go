package telemetry

import (
	"github.com/nightlyone/lockfile"
	"github.com/pkg/errors"
)

var ErrRunInProgress = errors.New("another run is already in progress")

// acquireLock takes the configured lock file. The returned release func is
// never nil.
func (t *Telemetry) acquireLock() (release func(), err error) {
	if t.Config.LockFile == "" {
		return func() {}, nil
	}

	lock, err := lockfile.New(t.Config.LockFile)
	if err != nil {
		return func() {}, errors.Wrapf(err, "invalid lock file %s", t.Config.LockFile)
	}

	if err := lock.TryLock(); err != nil {
		if err == lockfile.ErrBusy {
			return func() {}, errors.Wrapf(ErrRunInProgress, "lock %s is held", t.Config.LockFile)
		}
		return func() {}, errors.Wrap(err, "could not get lock")
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			log.WithError(err).Error("could not release lock")
		}
	}, nil
}
