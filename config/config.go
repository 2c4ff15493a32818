// Package config reads the YAML configuration of the dashboard.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the dashboard configuration.
type Config struct {
	Addr        string   `yaml:"addr"`
	DataFile    string   `yaml:"data_file"`
	SavingsFile string   `yaml:"savings_file"`
	Sheet       string   `yaml:"sheet"`
	SQL         SQL      `yaml:"sql"`
	CacheTTL    Duration `yaml:"cache_ttl"`
	Currency    string   `yaml:"currency"`
	TopN        int      `yaml:"top_n"`

	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// SQL selects a database table as the run source instead of DataFile.
type SQL struct {
	Driver string `yaml:"driver"` // mysql or sqlite
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

// Enabled reports whether runs are read from a database.
func (s SQL) Enabled() bool { return s.DSN != "" }

// Duration is a time.Duration written as "5m" or "30s" in YAML.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, value.Value)
	}
	*d = Duration(v)
	return nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:         ":8050",
		DataFile:     "rpa_metrics.xlsx",
		SQL:          SQL{Driver: "mysql", Table: "rpa_metrics"},
		CacheTTL:     Duration(5 * time.Minute),
		Currency:     "USD",
		TopN:         10,
		ReadTimeout:  Duration(15 * time.Second),
		WriteTimeout: Duration(30 * time.Second),
	}
}

// Decode reads a YAML configuration on top of the defaults. Unknown fields
// are errors.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, c.Validate()
}

// Load reads the configuration file. An empty path gives the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read configuration: %w", err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the values that have no usable zero value.
func (c Config) Validate() error {
	var errs []error
	if c.DataFile == "" && !c.SQL.Enabled() {
		errs = append(errs, errors.New("data_file or sql.dsn is required"))
	}
	if c.SQL.Enabled() && c.SQL.Driver != "mysql" && c.SQL.Driver != "sqlite" {
		errs = append(errs, fmt.Errorf("unsupported sql.driver %q", c.SQL.Driver))
	}
	if c.TopN < 1 {
		errs = append(errs, fmt.Errorf("top_n must be positive, got %d", c.TopN))
	}
	return errors.Join(errs...)
}

// Encode writes the configuration as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
