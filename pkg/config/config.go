// Package config loads wifiqr's TOML configuration file.
//
// The file holds render defaults and named network profiles, so a network
// can be printed again without retyping its credentials:
//
//	[defaults]
//	level = "high"
//	scale = 10
//	quiet_zone = 2
//
//	[[network]]
//	name = "guest"
//	ssid = "Guest"
//	password = "welcome123"
//	auth = "wpa2"
//
// Command-line flags take precedence over anything loaded here.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	wqerrors "github.com/matzehuels/wifiqr/pkg/errors"
	"github.com/matzehuels/wifiqr/pkg/qr"
	"github.com/matzehuels/wifiqr/pkg/wifi"
)

const (
	appName  = "wifiqr"
	fileName = "config.toml"
)

// Defaults are render settings applied when no flag overrides them.
// Zero values mean "not set".
type Defaults struct {
	Level     string `toml:"level"`
	Scale     int    `toml:"scale"`
	QuietZone *int   `toml:"quiet_zone"`
}

// Network is a named set of credentials.
type Network struct {
	Name string `toml:"name"`
	wifi.Credentials
}

// File is the decoded configuration file.
type File struct {
	Defaults Defaults  `toml:"defaults"`
	Networks []Network `toml:"network"`
}

// Path returns the default config file location, honouring XDG_CONFIG_HOME.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, wqerrors.Wrap(wqerrors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, wqerrors.Wrap(wqerrors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(data)
}

// LoadDefault loads the file at Path. A missing file yields an empty File.
func LoadDefault() (*File, error) {
	path, err := Path()
	if err != nil {
		return &File{}, nil
	}
	f, err := Load(path)
	if wqerrors.Is(err, wqerrors.ErrCodeFileNotFound) {
		return &File{}, nil
	}
	return f, err
}

// Parse decodes TOML data and validates it.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, wqerrors.Wrap(wqerrors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, wqerrors.New(wqerrors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.Defaults.Level != "" {
		if _, err := qr.ParseLevel(f.Defaults.Level); err != nil {
			return err
		}
	}
	if f.Defaults.Scale < 0 {
		return wqerrors.New(wqerrors.ErrCodeInvalidInput, "defaults.scale must be positive, got %d", f.Defaults.Scale)
	}
	if q := f.Defaults.QuietZone; q != nil && *q < 0 {
		return wqerrors.New(wqerrors.ErrCodeInvalidInput, "defaults.quiet_zone must be non-negative, got %d", *q)
	}

	seen := make(map[string]bool, len(f.Networks))
	for i, n := range f.Networks {
		if n.Name == "" {
			return wqerrors.New(wqerrors.ErrCodeInvalidInput, "network #%d has no name", i+1)
		}
		if seen[n.Name] {
			return wqerrors.New(wqerrors.ErrCodeInvalidInput, "duplicate network name %q", n.Name)
		}
		seen[n.Name] = true
	}
	return nil
}

// Network returns the credentials stored under name.
func (f *File) Network(name string) (wifi.Credentials, error) {
	for _, n := range f.Networks {
		if n.Name == name {
			return n.Credentials, nil
		}
	}
	return wifi.Credentials{}, wqerrors.New(wqerrors.ErrCodeNotFound, "no network named %q in config", name)
}

// NetworkNames lists the profile names in file order.
func (f *File) NetworkNames() []string {
	names := make([]string, len(f.Networks))
	for i, n := range f.Networks {
		names[i] = n.Name
	}
	return names
}

// ECLevel returns the configured error correction level or qr.DefaultLevel.
func (d Defaults) ECLevel() qr.Level {
	if l, err := qr.ParseLevel(d.Level); err == nil {
		return l
	}
	return qr.DefaultLevel
}
