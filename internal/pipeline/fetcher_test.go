package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDownloadProgress(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		percent float64
		ok      bool
	}{
		{
			name:    "typical progress line",
			line:    "[download]  42.3% of 12.34MiB at 1.20MiB/s ETA 00:10",
			percent: 42.3,
			ok:      true,
		},
		{
			name:    "complete",
			line:    "[download] 100% of 12.34MiB in 00:12",
			percent: 100,
			ok:      true,
		},
		{
			name:    "zero percent",
			line:    "[download]   0.0% of ~3.50MiB at Unknown speed",
			percent: 0,
			ok:      true,
		},
		{
			name: "destination line",
			line: "[download] Destination: tmp_media/download_abc123_1.mp4",
			ok:   false,
		},
		{
			name: "unrelated output",
			line: "[info] abc123: Downloading 1 format(s): 18",
			ok:   false,
		},
		{
			name: "empty",
			line: "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			percent, ok := ParseDownloadProgress(tc.line)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.percent, percent, 0.001)
			}
		})
	}
}

func TestToolDiagnostic(t *testing.T) {
	err := errors.New("exit status 1")

	assert.Equal(t, "exit status 1", toolDiagnostic("", err))
	assert.Equal(t, "ERROR: [youtube] abc123: Video unavailable",
		toolDiagnostic("WARNING: something\nERROR: [youtube] abc123: Video unavailable\n", err))
	assert.Equal(t, "exit status 1", toolDiagnostic("\n\n", err))
}
