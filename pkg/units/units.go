// Package units converts raw sensor readings to Fahrenheit using fixed
// scale-3 decimal arithmetic.
package units

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/picool/telemetry/pkg/common"
)

// Precision is the number of fractional digits every converted value carries.
const Precision = 3

var (
	nineFifths      = decimal.New(18, -1)
	freezingPointF  = decimal.NewFromInt(32)
	errEmptyDecimal = errors.New("empty value")
)

// ToFahrenheit converts a milli-degrees Celsius sample to degrees Fahrenheit.
// The result is truncated toward zero to Precision digits.
func ToFahrenheit(rawMilliC int64) decimal.Decimal {
	celsius := decimal.New(rawMilliC, -3)
	return celsius.Mul(nineFifths).Add(freezingPointF).Truncate(Precision)
}

// DeltaToFahrenheit converts a Celsius difference to a Fahrenheit difference.
// No freezing point offset is applied.
func DeltaToFahrenheit(deltaC decimal.Decimal) decimal.Decimal {
	return deltaC.Mul(nineFifths).Truncate(Precision)
}

// ParseDelta parses a decimal Celsius delta such as "-1.25".
func ParseDelta(token string) (decimal.Decimal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return decimal.Zero, &common.FormatError{Value: token, Err: errEmptyDecimal}
	}

	d, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, &common.FormatError{Value: token, Err: err}
	}
	return d, nil
}
