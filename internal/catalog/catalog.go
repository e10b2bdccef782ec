// Package catalog provides the per-model device specification catalog.
//
// A catalog answers one question: which peer, uplink and downlink port
// identifiers does a device model offer, and which network OS does it run.
// DirCatalog reads one YAML document per model from a directory; CachedCatalog
// keeps recently used specs in memory since the same model usually repeats
// across a fleet.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"topogen/internal/domain"

	"gopkg.in/yaml.v3"
)

// Catalog looks up device specifications by model identifier
type Catalog interface {
	Lookup(model string) (domain.DeviceSpec, error)
}

// specExtensions are tried in order when resolving a model file
var specExtensions = []string{".yml", ".yaml"}

// DirCatalog reads <dir>/<model>.yml documents on every lookup
type DirCatalog struct {
	dir string
}

// NewDirCatalog creates a catalog backed by a directory of spec documents
func NewDirCatalog(dir string) *DirCatalog {
	return &DirCatalog{dir: dir}
}

// Dir returns the backing directory
func (c *DirCatalog) Dir() string {
	return c.dir
}

// Lookup reads and parses the specification for a device model
func (c *DirCatalog) Lookup(model string) (domain.DeviceSpec, error) {
	if model == "" || strings.ContainsAny(model, `/\`) || model == "." || model == ".." {
		return domain.DeviceSpec{}, &domain.UnknownDeviceError{Device: model, Err: errors.New("invalid model identifier")}
	}

	var (
		data []byte
		err  error
	)
	for _, ext := range specExtensions {
		data, err = os.ReadFile(filepath.Join(c.dir, model+ext))
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			break
		}
	}
	if err != nil {
		return domain.DeviceSpec{}, &domain.UnknownDeviceError{Device: model, Err: err}
	}

	var spec domain.DeviceSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return domain.DeviceSpec{}, &domain.UnknownDeviceError{Device: model, Err: fmt.Errorf("parse spec: %w", err)}
	}

	return spec, nil
}

// Models returns the model identifiers available in the catalog directory
func (c *DirCatalog) Models() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	seen := make(map[string]bool)
	var models []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		model := strings.TrimSuffix(e.Name(), ext)
		if !seen[model] {
			seen[model] = true
			models = append(models, model)
		}
	}
	sort.Strings(models)
	return models, nil
}
