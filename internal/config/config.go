// Package config loads the inventory source file for topogen.
//
// The source file (hosts.yml) selects this generator and points it at its
// inputs: the topology request and the device spec directory. Only files whose
// name ends in hosts.yml are accepted.
//
// Source file locations (priority order):
//  1. $TOPOGEN_SOURCE
//  2. ./hosts.yml
//  3. $XDG_CONFIG_HOME/topogen/hosts.yml
//  4. ~/.config/topogen/hosts.yml
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"topogen/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	// PluginName is the value written by Save for new source files
	PluginName = "topogen"

	DefaultRequestPath     = "request.yml"
	DefaultDeviceSpecsPath = "./device_specs"
	DefaultCacheSize       = 64
	DefaultLogLevel        = "info"
)

// ErrInvalidSource is returned for paths that are not inventory source files
var ErrInvalidSource = errors.New("not an inventory source file")

// VerifyFile reports whether path names an inventory source file
func VerifyFile(path string) bool {
	return strings.HasSuffix(path, SourceSuffix)
}

// Load finds and loads the source file, or returns an error if none is found
func Load() (*Source, string, error) {
	path := FindSourcePath()
	if path == "" {
		return nil, "", fmt.Errorf("no %s found: %w", SourceSuffix, os.ErrNotExist)
	}

	src, err := LoadSource(path)
	return src, path, err
}

// LoadSource loads the source file at path
func LoadSource(path string) (*Source, error) {
	if !VerifyFile(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidSource)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	if err := src.validate(); err != nil {
		return nil, err
	}

	src.applyDefaults()

	return &src, nil
}

// Save writes the source file to path
func (s *Source) Save(path string) error {
	if !VerifyFile(path) {
		return fmt.Errorf("%s: %w", path, ErrInvalidSource)
	}
	if err := EnsureSourceDir(path); err != nil {
		return fmt.Errorf("create source dir: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal source: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultSource returns a source file for a new project
func DefaultSource() *Source {
	src := &Source{Plugin: PluginName}
	src.applyDefaults()
	return src
}

func (s *Source) validate() error {
	if strings.TrimSpace(s.Plugin) == "" {
		return &domain.MissingOptionError{Option: "plugin"}
	}
	for loc, code := range s.Locations {
		if code == "" {
			return fmt.Errorf("location %q has an empty code", loc)
		}
	}
	return nil
}

// applyDefaults fills in missing values with defaults
func (s *Source) applyDefaults() {
	if s.Request == "" {
		s.Request = DefaultRequestPath
	}
	if s.DeviceSpecs == "" {
		s.DeviceSpecs = DefaultDeviceSpecsPath
	}
	if s.Cache.Size <= 0 {
		s.Cache.Size = DefaultCacheSize
	}
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
}

// LocationMap returns the built-in location codes with source overrides applied
func (s *Source) LocationMap() domain.LocationMap {
	return domain.DefaultLocations().With(s.Locations)
}

// Summary returns a human-readable source summary
func (s *Source) Summary() string {
	summary := fmt.Sprintf("Plugin: %s, Request: %s, Device specs: %s\n", s.Plugin, s.Request, s.DeviceSpecs)
	summary += fmt.Sprintf("Cache size: %d, Locations: %d", s.Cache.Size, s.LocationMap().Len())
	if s.Database.Path != "" {
		summary += fmt.Sprintf(", Database: %s", s.Database.Path)
	}
	return summary
}
