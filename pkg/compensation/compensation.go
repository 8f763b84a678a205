// Package compensation resolves the calibration offsets the compressor
// controller records for a sensor. The controller is the only writer of
// these files; this package never modifies them.
//
// A compensation file lives at <dir>/comp_<sensor id> and holds a single
// line with two whitespace separated Celsius deltas:
//
//	-0.35 1.2
package compensation

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/picool/telemetry/pkg/common"
	"github.com/picool/telemetry/pkg/units"
)

const filePrefix = "comp_"

var log = logrus.WithField("package", "compensation")

var ErrNoIdentifier = errors.New("sensor path has no parent directory to derive an identifier from")

// Record is a low/high pair of Celsius deltas.
type Record struct {
	LowDeltaC  decimal.Decimal
	HighDeltaC decimal.Decimal
}

// Fahrenheit returns both deltas converted to Fahrenheit.
func (r *Record) Fahrenheit() (low, high decimal.Decimal) {
	return units.DeltaToFahrenheit(r.LowDeltaC), units.DeltaToFahrenheit(r.HighDeltaC)
}

// DeriveIdentifier returns the sensor identifier for a sensor file: the
// name of its parent directory, which for 1-Wire devices is the bus id
// (e.g. 28-0316a2794dff).
func DeriveIdentifier(sensorPath string) (string, error) {
	parent := filepath.Dir(filepath.Clean(sensorPath))
	id := filepath.Base(parent)
	if id == "." || id == string(filepath.Separator) || id == "" {
		return "", errors.Wrapf(ErrNoIdentifier, "path %q", sensorPath)
	}
	return id, nil
}

// Locate returns the compensation file path for a sensor identifier.
func Locate(dir, identifier string) string {
	return filepath.Join(dir, filePrefix+identifier)
}

// Load reads a compensation file. A missing file, an empty file or a first
// line with fewer than two tokens yields a nil record and a nil error.
// An unreadable file yields *common.IOError and non-numeric tokens yield
// *common.FormatError.
func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &common.IOError{Path: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warnf("failed to close %s", path)
		}
	}()

	rec, err := Parse(f)
	if err != nil {
		switch e := errors.Cause(err).(type) {
		case *common.FormatError:
			e.Path = path
		case *common.IOError:
			e.Path = path
		}
		return nil, err
	}
	return rec, nil
}

// Parse reads the first line of r. See Load for the result semantics.
func Parse(r io.Reader) (*Record, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, &common.IOError{Err: err}
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, nil
	}
	if len(fields) > 2 {
		log.Debugf("ignoring %d extra tokens in compensation record", len(fields)-2)
	}

	low, err := units.ParseDelta(fields[0])
	if err != nil {
		return nil, errors.Wrap(err, "low delta")
	}
	high, err := units.ParseDelta(fields[1])
	if err != nil {
		return nil, errors.Wrap(err, "high delta")
	}

	return &Record{LowDeltaC: low, HighDeltaC: high}, nil
}

// Loader resolves compensation records for sensors from a calibration
// directory.
type Loader struct {
	Dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Resolve derives the identifier of sensorPath and loads its record.
func (l *Loader) Resolve(sensorPath string) (*Record, error) {
	id, err := DeriveIdentifier(sensorPath)
	if err != nil {
		return nil, err
	}

	path := Locate(l.Dir, id)
	log.WithField("path", path).Debug("looking up compensation record")

	return Load(path)
}
