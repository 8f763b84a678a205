package telemetry

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/picool/telemetry/pkg/common"
	"github.com/picool/telemetry/pkg/compensation"
	"github.com/picool/telemetry/pkg/lineproto"
	"github.com/picool/telemetry/pkg/sensors"
	"github.com/picool/telemetry/pkg/units"
)

// Result is what a single run collected.
type Result struct {
	Samples *sensors.Samples
	// Compensation is nil when no valid record was resolved.
	Compensation *compensation.Record
}

// Lines converts the result into metric lines. The temperature line always
// comes first.
func (r *Result) Lines() []lineproto.Line {
	lines := []lineproto.Line{
		lineproto.TemperatureLine(
			units.ToFahrenheit(r.Samples.Ambient),
			units.ToFahrenheit(r.Samples.Freezer),
			units.ToFahrenheit(r.Samples.Refrigerator),
		),
	}

	if r.Compensation != nil {
		low, high := r.Compensation.Fahrenheit()
		lines = append(lines, lineproto.CompensationLine(low, high))
	}

	return lines
}

// Collect reads all sensors and resolves the refrigerator compensation.
// Any sensor failure is returned and nothing is collected: the temperature
// line bundles all three values and is never emitted partially.
// Compensation problems are logged and never fail the run.
func (t *Telemetry) Collect() (*Result, error) {
	samples, err := sensors.ReadAll(t.Config.SensorPaths())
	if err != nil {
		return nil, err
	}

	return &Result{
		Samples:      samples,
		Compensation: t.resolveCompensation(),
	}, nil
}

func (t *Telemetry) resolveCompensation() *compensation.Record {
	l := log.WithField("sensor", t.Config.RefrigeratorSensor)

	rec, err := t.compensation.Resolve(t.Config.RefrigeratorSensor)
	switch {
	case err == nil && rec == nil:
		l.Debug("no compensation record available")
	case err == nil:
		l.WithFields(logrus.Fields{
			"low":  rec.LowDeltaC.String(),
			"high": rec.HighDeltaC.String(),
		}).Debug("resolved compensation record")
	case common.IsFormatError(err):
		l.WithError(err).Warn("ignoring malformed compensation record")
	default:
		l.WithError(err).Warn("compensation record unavailable")
	}

	if err != nil {
		return nil
	}
	return rec
}

// OutputFunc opens the destination for metric lines. The returned close
// func is never nil when err is nil.
type OutputFunc func() (w io.Writer, closeFn func(), err error)

// RunOnce collects one result and writes its lines to w. Nothing is written
// when collecting fails.
func (t *Telemetry) RunOnce(w io.Writer) error {
	return t.RunOnceTo(func() (io.Writer, func(), error) {
		return w, func() {}, nil
	})
}

// RunOnceTo is RunOnce with a lazily opened output. open is only called
// after the lock is held and every sensor was read, so a blocked or failed
// run leaves an existing output untouched.
func (t *Telemetry) RunOnceTo(open OutputFunc) error {
	log.Debugf("%s: starting run", t.userAgent())

	release, err := t.acquireLock()
	defer release()
	if err != nil {
		return err
	}

	res, err := t.Collect()
	if err != nil {
		return err
	}

	w, closeFn, err := open()
	if err != nil {
		return err
	}
	defer closeFn()

	return lineproto.Write(w, res.Lines()...)
}

// Check reads every configured input and logs what it finds without
// producing metric lines. It fails when any sensor is unreadable or a run
// holds the lock.
func (t *Telemetry) Check() error {
	release, err := t.acquireLock()
	defer release()
	if err != nil {
		return err
	}

	res, err := t.Collect()
	if err != nil {
		return err
	}

	for _, line := range res.Lines() {
		logrus.WithField("line", line.String()).Info("check passed")
	}

	if res.Compensation == nil {
		logrus.WithField("dir", t.Config.CalibrationDir).Info("no compensation record will be reported")
	}

	return nil
}
