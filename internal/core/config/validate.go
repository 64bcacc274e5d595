package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("scan.workers", c.Scan.Workers, atLeastOne),
		criterio.Run("scan.extensions", c.Scan.Extensions, validExtensions),
		criterio.Run("output.format", c.Output.Format, oneOf(FormatTable, FormatPaths, FormatJSON)),
		criterio.Run("output.color", c.Output.Color, oneOf(ColorAuto, ColorAlways, ColorNever)),
	)
}

func atLeastOne(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func validExtensions(exts []string) error {
	if len(exts) == 0 {
		return fmt.Errorf("must list at least one extension")
	}
	for _, ext := range exts {
		if ext == "" {
			return fmt.Errorf("extension cannot be empty")
		}
		if strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must not include the leading dot", ext)
		}
	}
	return nil
}

func oneOf(allowed ...string) func(string) error {
	return func(v string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
	}
}
