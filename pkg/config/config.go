package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = ".scopegrab.yaml"

// File is the persisted configuration. The core only ever reads a couple of
// string fields from it at request-build time; everything else is operator
// convenience.
type File struct {
	// Instrument is the VISA name filter passed to the grabber; empty means
	// let the grabber pick the first instrument it finds.
	Instrument string `yaml:"instrument,omitempty"`
	// CaptureDirectory is where artifacts land; empty means DefaultCaptureDir.
	CaptureDirectory string `yaml:"capture_directory,omitempty"`
	// Grabber is the external capture command.
	Grabber string `yaml:"grabber,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
	Trace   bool   `yaml:"trace,omitempty"`
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(home, DefaultConfigFilename)
}

func DefaultCaptureDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "captures"
	}
	return filepath.Join(home, "scopegrab", "captures")
}

func LoadFromFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg File
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	return &cfg, nil
}

// LoadOptional returns a zero-value config when the file does not exist.
func LoadOptional(path string) (*File, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, errors.Wrap(err, "stat config")
	}
	return LoadFromFile(path)
}

func (f *File) Save(path string) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "marshal config yaml")
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

// ResolveCaptureDir applies the empty-means-default rule.
func (f *File) ResolveCaptureDir() string {
	if f.CaptureDirectory != "" {
		return f.CaptureDirectory
	}
	return DefaultCaptureDir()
}
