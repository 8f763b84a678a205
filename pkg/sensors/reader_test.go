package sensors

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picool/telemetry/pkg/common"
)

func writeSensor(t *testing.T, dir, device, content string) string {
	t.Helper()

	deviceDir := filepath.Join(dir, device)
	require.NoError(t, os.MkdirAll(deviceDir, 0755))

	path := filepath.Join(deviceDir, "temperature")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRawSample(t *testing.T) {
	dir, err := ioutil.TempDir("", "sensors")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	tests := []struct {
		name    string
		content string
		want    int64
	}{
		{"plain", "20000", 20000},
		{"trailing-newline", "4000\n", 4000},
		{"surrounding-whitespace", "  \t-18000 \n", -18000},
		{"zero", "0", 0},
		{"explicit-plus", "+125", 125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSensor(t, dir, "28-"+tt.name, tt.content)

			got, err := ReadRawSample(path)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadRawSampleErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "sensors")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	t.Run("missing", func(t *testing.T) {
		_, err := ReadRawSample(filepath.Join(dir, "nope", "temperature"))
		assert.True(t, common.IsIOError(err))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadRawSample(dir)
		assert.True(t, common.IsIOError(err))
	})

	for _, content := range []string{"", "\n", "20.5", "abc", "12 34", "0x10"} {
		content := content
		t.Run("format-"+content, func(t *testing.T) {
			path := writeSensor(t, dir, "28-bad", content)

			_, err := ReadRawSample(path)
			assert.True(t, common.IsFormatError(err), "content %q", content)
			assert.False(t, common.IsIOError(err))
		})
	}
}

func TestReadAll(t *testing.T) {
	dir, err := ioutil.TempDir("", "sensors")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	paths := Paths{
		Ambient:      writeSensor(t, dir, "28-a", "20000\n"),
		Freezer:      writeSensor(t, dir, "28-f", "-18000\n"),
		Refrigerator: writeSensor(t, dir, "28-r", "4000\n"),
	}

	t.Run("all-present", func(t *testing.T) {
		samples, err := ReadAll(paths)
		require.NoError(t, err)
		assert.Equal(t, Samples{Ambient: 20000, Freezer: -18000, Refrigerator: 4000}, *samples)
	})

	t.Run("one-missing", func(t *testing.T) {
		broken := paths
		broken.Ambient = filepath.Join(dir, "28-gone", "temperature")

		samples, err := ReadAll(broken)
		assert.Nil(t, samples)
		assert.True(t, common.IsIOError(err))
		assert.Contains(t, err.Error(), "ambient sensor")
	})

	t.Run("all-reported", func(t *testing.T) {
		broken := Paths{
			Ambient:      filepath.Join(dir, "28-gone", "temperature"),
			Freezer:      writeSensor(t, dir, "28-garbage", "garbage"),
			Refrigerator: paths.Refrigerator,
		}

		samples, err := ReadAll(broken)
		assert.Nil(t, samples)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ambient sensor")
		assert.Contains(t, err.Error(), "freezer sensor")
		assert.NotContains(t, err.Error(), "refrigerator sensor")
	})
}

func TestPathsGet(t *testing.T) {
	p := Paths{Ambient: "a", Freezer: "f", Refrigerator: "r"}
	assert.Equal(t, "a", p.Get(RoleAmbient))
	assert.Equal(t, "f", p.Get(RoleFreezer))
	assert.Equal(t, "r", p.Get(RoleRefrigerator))
	assert.Equal(t, "", p.Get(Role("other")))
}
