package sensors

import (
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/picool/telemetry/pkg/common"
)

// ReadRawSample reads a single integer milli-degrees Celsius value, the
// format used by 1-Wire and hwmon temperature files.
func ReadRawSample(path string) (int64, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return 0, &common.IOError{Path: path, Err: err}
	}

	value := strings.TrimSpace(string(content))
	sample, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &common.FormatError{Path: path, Value: value, Err: err}
	}

	return sample, nil
}

// ReadAll reads every role. All sensors are read even when an earlier one
// fails so the returned error names each broken sensor, but no samples are
// returned unless all of them succeeded.
func ReadAll(paths Paths) (*Samples, error) {
	errs := common.ErrorCollector{}
	values := make(map[Role]int64, len(Roles))

	for _, role := range Roles {
		path := paths.Get(role)
		sample, err := ReadRawSample(path)
		if err != nil {
			log.WithError(err).WithField("role", role).Error("could not read sensor")
			errs.New(errors.Wrapf(err, "%s sensor", role))
			continue
		}

		log.WithFields(logrus.Fields{
			"role":   role,
			"path":   path,
			"sample": sample,
		}).Debug("read sensor")
		values[role] = sample
	}

	if errs.HasErrors() {
		return nil, errs.Combine()
	}

	return &Samples{
		Ambient:      values[RoleAmbient],
		Freezer:      values[RoleFreezer],
		Refrigerator: values[RoleRefrigerator],
	}, nil
}
