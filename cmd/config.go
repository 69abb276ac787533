package cmd

import (
	"io"

	"grimm.is/apptrial/internal/brand"
	"grimm.is/apptrial/internal/config"
)

// RunInitConfig writes the default HCL configuration to path, or to the
// platform default location when path is empty.
func RunInitConfig(w io.Writer, path string, force bool) error {
	if path == "" {
		path = brand.GetConfigPath()
	}
	if err := config.WriteFile(path, config.Default(), force); err != nil {
		return err
	}
	Printer.Fprintf(w, "Wrote default configuration to %s\n", path)
	return nil
}

// RunShowConfig prints the effective configuration as HCL.
func RunShowConfig(w io.Writer, cfg *config.Config) error {
	_, err := w.Write(config.Render(cfg))
	return err
}
