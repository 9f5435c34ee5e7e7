package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrProfile wraps every failure to read a TOML profile.
var ErrProfile = errors.New("invalid profile")

// Profile is the TOML form of the defaults a team shares for a project:
//
//	parallelism = 2
//	java = "/opt/jdk/bin/java"
//	java_options = ["Xmx2g"]
//	console_encoding = "GBK"
//	schemes = ["client"]
//
// Unset keys leave the built-in default alone. Unknown keys are rejected.
type Profile struct {
	Parallelism     *int     `toml:"parallelism"`
	Java            *string  `toml:"java"`
	JavaOptions     []string `toml:"java_options"`
	ConsoleEncoding *string  `toml:"console_encoding"`
	Color           *string  `toml:"color"`
	LogLevel        *string  `toml:"log_level"`
	LogFile         *string  `toml:"log_file"`
	Schemes         []string `toml:"schemes"`
	DataVersion     *string  `toml:"data_version"`
}

// LoadProfile reads and strictly decodes the TOML file at path.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	defer f.Close()

	var p Profile
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s: unknown keys:\n%s", ErrProfile, path, strict.String())
		}
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return nil, fmt.Errorf("%w: %s:%d:%d: %w", ErrProfile, path, row, col, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrProfile, path, err)
	}
	return &p, nil
}

// Apply copies the keys the profile sets into c.
func (p *Profile) Apply(c *Config) {
	if p.Parallelism != nil {
		c.Parallelism = *p.Parallelism
	}
	if p.Java != nil {
		c.Java = *p.Java
	}
	if p.JavaOptions != nil {
		c.JavaOptions = append([]string(nil), p.JavaOptions...)
	}
	if p.ConsoleEncoding != nil {
		c.ConsoleEncoding = *p.ConsoleEncoding
	}
	if p.Color != nil {
		c.ColorMode = ColorMode(*p.Color)
	}
	if p.LogLevel != nil {
		c.LogLevel = *p.LogLevel
	}
	if p.LogFile != nil {
		c.LogFile = *p.LogFile
	}
	if p.Schemes != nil {
		c.Schemes = append([]string(nil), p.Schemes...)
	}
	if p.DataVersion != nil {
		v := *p.DataVersion
		c.DataVersion = &v
	}
}
