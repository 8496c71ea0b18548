package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/f1stats/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}

	if _, ok := output.ParseFormat(c.Format); !ok {
		names := make([]string, len(output.Formats))
		for i, f := range output.Formats {
			names[i] = string(f)
		}
		return fmt.Errorf("invalid format %q (want one of: %s)", c.Format, strings.Join(names, ", "))
	}

	if _, ok := output.ParseAlign(c.Table.Adjustment); !ok {
		return fmt.Errorf("invalid table.adjustment %q (want left, center or right)", c.Table.Adjustment)
	}

	return nil
}
