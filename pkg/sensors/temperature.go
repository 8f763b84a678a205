package sensors

import (
	"github.com/sirupsen/logrus"
)

// Role identifies what a sensor measures.
type Role string

const (
	RoleAmbient      Role = "ambient"
	RoleFreezer      Role = "freezer"
	RoleRefrigerator Role = "refrigerator"
)

// Roles lists every role in output order.
var Roles = []Role{RoleAmbient, RoleFreezer, RoleRefrigerator}

// Paths maps each role to the sysfs file exposing its reading,
// e.g. /sys/bus/w1/devices/28-0316a2794dff/temperature.
type Paths struct {
	Ambient      string
	Freezer      string
	Refrigerator string
}

func (p Paths) Get(role Role) string {
	switch role {
	case RoleAmbient:
		return p.Ambient
	case RoleFreezer:
		return p.Freezer
	case RoleRefrigerator:
		return p.Refrigerator
	default:
		return ""
	}
}

// Samples holds one raw reading per role in milli-degrees Celsius.
type Samples struct {
	Ambient      int64
	Freezer      int64
	Refrigerator int64
}

var log = logrus.WithField("package", "sensors")
