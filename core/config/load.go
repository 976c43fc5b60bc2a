package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration from the given directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return loadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

func loadFs(fsys afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fsys, ConfigurationName)
	if err != nil {
		return nil, err
	}

	out := Configuration{configFs: fsys}
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Default returns the embedded default configuration without reading
// anything from disk.
func Default() (*Configuration, error) {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Initialize seeds the directory with the default configuration and
// loads it. An existing config.yaml is kept as-is.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	fsys := afero.NewBasePathFs(afero.NewOsFs(), path)
	if err := initializeFs(fsys, logger); err != nil {
		return nil, err
	}
	return loadFs(fsys)
}

func initializeFs(fsys afero.Fs, logger *log.Logger) error {
	switch _, err := fsys.Stat(ConfigurationName); {
	case err == nil:
		logger.Printf("%s already exists, keeping it", ConfigurationName)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("creating %s", ConfigurationName)
		return afero.WriteFile(fsys, ConfigurationName, defaultConfigData, 0600)
	default:
		return err
	}
}
