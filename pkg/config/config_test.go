package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOptional_MissingFileIsZeroValue(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, &File{}, cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".scopegrab.yaml")
	cfg := &File{
		Instrument:       "RIGOL TECHNOLOGIES",
		CaptureDirectory: "/data/captures",
		Grabber:          "/usr/local/bin/grab_o_scope",
		Verbose:          true,
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadOptional(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instrument: [unclosed"), 0o600))
	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestResolveCaptureDir(t *testing.T) {
	cfg := &File{CaptureDirectory: "/data/captures"}
	require.Equal(t, "/data/captures", cfg.ResolveCaptureDir())

	empty := &File{}
	require.NotEmpty(t, empty.ResolveCaptureDir())
	require.NotEqual(t, "", filepath.Base(empty.ResolveCaptureDir()))
}
