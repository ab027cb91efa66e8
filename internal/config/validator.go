package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/verup/internal/tui"
)

// Validate checks that c can drive a run. All problems are reported at once.
func (c Config) Validate() error {
	var errs []error

	switch {
	case strings.TrimSpace(c.Package) == "":
		errs = append(errs, errors.New("package file name must not be empty"))
	case filepath.Base(c.Package) != c.Package:
		errs = append(errs, fmt.Errorf("package %q must be a file name, not a path", c.Package))
	case !strings.EqualFold(filepath.Ext(c.Package), ".json"):
		errs = append(errs, fmt.Errorf("package %q must be a JSON manifest", c.Package))
	}

	if strings.TrimSpace(c.Bump) == "" {
		errs = append(errs, errors.New("bump spec must not be empty"))
	}

	if c.Theme != "" && !tui.IsValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (valid: %s)", c.Theme, strings.Join(tui.ValidThemes, ", ")))
	}

	return errors.Join(errs...)
}
