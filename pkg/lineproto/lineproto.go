// Package lineproto renders measurements as simple line-protocol text:
//
//	measurement key1=value1,key2=value2
//
// Values are fixed-point decimals and always carry units.Precision digits.
package lineproto

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/picool/telemetry/pkg/units"
)

const (
	MeasurementTemperature  = "temperature"
	MeasurementCompensation = "compensation"
)

type Field struct {
	Key   string
	Value decimal.Decimal
}

// Line is a single measurement. Fields are rendered in slice order.
type Line struct {
	Measurement string
	Fields      []Field
}

func (l Line) String() string {
	var buf bytes.Buffer
	l.writeTo(&buf)
	return buf.String()
}

func (l Line) writeTo(buf *bytes.Buffer) {
	buf.WriteString(l.Measurement)
	for i, f := range l.Fields {
		if i == 0 {
			buf.WriteByte(' ')
		} else {
			buf.WriteByte(',')
		}
		buf.WriteString(f.Key)
		buf.WriteByte('=')
		buf.WriteString(f.Value.StringFixed(units.Precision))
	}
}

func TemperatureLine(ambient, freezer, refrigerator decimal.Decimal) Line {
	return Line{
		Measurement: MeasurementTemperature,
		Fields: []Field{
			{Key: "ambient", Value: ambient},
			{Key: "freezer", Value: freezer},
			{Key: "refrigerator", Value: refrigerator},
		},
	}
}

func CompensationLine(low, high decimal.Decimal) Line {
	return Line{
		Measurement: MeasurementCompensation,
		Fields: []Field{
			{Key: "low", Value: low},
			{Key: "high", Value: high},
		},
	}
}

// Write renders all lines, each newline-terminated, and hands them to w in a
// single Write call so a reader never sees half of a batch.
func Write(w io.Writer, lines ...Line) error {
	var buf bytes.Buffer
	for _, l := range lines {
		l.writeTo(&buf)
		buf.WriteByte('\n')
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write metric lines")
	}
	return nil
}
