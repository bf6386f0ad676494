package profiler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServiceOpts(t *testing.T) {
	tests := []struct {
		name        string
		opts        ServiceOpts
		expectedErr string
	}{
		{
			name:        "missing datadir",
			opts:        ServiceOpts{Port: 18001, StatsInterval: time.Minute},
			expectedErr: "missing profiler datadir",
		},
		{
			name:        "port out of range",
			opts:        ServiceOpts{Port: 80, StatsInterval: time.Minute, Datadir: "stats"},
			expectedErr: "port must be in range",
		},
		{
			name:        "missing stats interval",
			opts:        ServiceOpts{Port: 18001, Datadir: "stats"},
			expectedErr: "stats interval must be a positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.opts)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(ServiceOpts{}.handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/debug/pprof/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDumpPrometheusDefaults(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(ServiceOpts{
		Port: 18001, StatsInterval: time.Minute, Datadir: dir,
	})
	require.NoError(t, err)

	require.NoError(t, svc.dumpPrometheusDefaults(dir))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	info, err := files[0].Info()
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}
