package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setVersion(t *testing.T, v string) {
	t.Helper()
	old := version
	version = v
	t.Cleanup(func() { version = old })
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		stamped string
		want    string
	}{
		{DevVersion, DevVersion},
		{"1.2.3", "1.2.3"},
		{"v2.0.0", "2.0.0"},
		{"1.4.0-rc.1", "1.4.0-rc.1"},
		{"not-a-version", DevVersion},
		{"", DevVersion},
	}

	for _, tt := range tests {
		t.Run(tt.stamped, func(t *testing.T) {
			setVersion(t, tt.stamped)
			assert.Equal(t, tt.want, GetVersion())
		})
	}
}

func TestParse(t *testing.T) {
	setVersion(t, "3.1.4")

	v, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.Major())
	assert.Equal(t, uint64(1), v.Minor())
	assert.Equal(t, uint64(4), v.Patch())
}
