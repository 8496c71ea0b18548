// Package config loads the f1stats CLI configuration.
//
// Values are layered, lowest precedence first: built-in defaults, the
// f1stats.yaml project file, F1STATS_* environment variables and explicitly
// set command-line flags.
package config

import (
	"github.com/leapstack-labs/f1stats/internal/cli/output"
)

// Config holds all CLI configuration options.
type Config struct {
	Database      string      `koanf:"database"`
	SQLDir        string      `koanf:"sql_dir"`
	InstallScript string      `koanf:"install_script"`
	Format        string      `koanf:"format"`
	Verbose       bool        `koanf:"verbose"`
	Table         TableConfig `koanf:"table"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// TableConfig holds table rendering options.
type TableConfig struct {
	Adjustment     string `koanf:"adjustment"`
	DoubleHeaders  bool   `koanf:"double_headers"`
	HideDelimiters bool   `koanf:"hide_delimiters"`
	ShowNones      bool   `koanf:"show_nones"`
}

// Default configuration values.
const (
	DefaultDatabase      = "data/f1db.db"
	DefaultInstallScript = "install"
	DefaultFormat        = "text"
	DefaultAdjustment    = "left"
)

// Config file names, in lookup order.
var configFileNames = []string{"f1stats.yaml", "f1stats.yml"}

// TableOptions returns the renderer options of the table config.
func (c *Config) TableOptions() output.Options {
	align, _ := output.ParseAlign(c.Table.Adjustment)
	return output.Options{
		Align:          align,
		DoubleHeaders:  c.Table.DoubleHeaders,
		HideDelimiters: c.Table.HideDelimiters,
		ShowNones:      c.Table.ShowNones,
	}
}

// OutputFormat returns the configured table format.
func (c *Config) OutputFormat() output.Format {
	f, _ := output.ParseFormat(c.Format)
	return f
}
