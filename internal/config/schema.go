package config

// Source is the inventory source file (hosts.yml) structure
type Source struct {
	Plugin      string            `yaml:"plugin"`
	Request     string            `yaml:"request,omitempty"`
	DeviceSpecs string            `yaml:"device_specs,omitempty"`
	Locations   map[string]string `yaml:"locations,omitempty"` // merged over the built-in codes
	Cache       CacheConfig       `yaml:"cache"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
}

// CacheConfig holds device spec cache settings
type CacheConfig struct {
	Size int `yaml:"size,omitempty"`
}

// DatabaseConfig holds snapshot store settings. An empty path disables it.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}
