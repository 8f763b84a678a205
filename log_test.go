package telemetry

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFileHook(t *testing.T) {
	hooks := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	defer logrus.StandardLogger().ReplaceHooks(hooks)

	f := helperCreateFixture(t)
	defer f.cleanup()

	f.cfg.LogFile = filepath.Join(f.dir, "logs", "telemetry.log")

	_, err := New(f.cfg, "", "")
	require.NoError(t, err)

	log.WithField("sensor", "28-test").Error("sensor went away")

	b, err := ioutil.ReadFile(f.cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "sensor went away")
	assert.Contains(t, string(b), "sensor=28-test")
	assert.Contains(t, string(b), "package=telemetry")
}

func TestLogFileHookUnwritable(t *testing.T) {
	hooks := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	defer logrus.StandardLogger().ReplaceHooks(hooks)

	f := helperCreateFixture(t)
	defer f.cleanup()

	// a directory can not be opened as the log file, the run still starts
	f.cfg.LogFile = f.calibration

	_, err := New(f.cfg, "", "")
	require.NoError(t, err)
	assert.Empty(t, logrus.StandardLogger().Hooks)
}

func TestSetLogLevel(t *testing.T) {
	f := helperCreateFixture(t)
	defer f.cleanup()

	tm, err := New(f.cfg, "", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())

	tm.SetLogLevel(LogLevelDebug)
	assert.Equal(t, LogLevelDebug, tm.Config.LogLevel)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	tm.SetLogLevel(LogLevelError)
}
