package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ltodo/internal/config"
	"ltodo/internal/exitcode"
	"ltodo/internal/output"
	"ltodo/internal/store"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	path   string
	loc    *time.Location
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutput sets the output file (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.path = path
}

// SetLocation sets the time zone used to print due dates (for testing).
func (c *ExportCmd) SetLocation(loc *time.Location) {
	c.loc = loc
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write the task list as json, csv or pdf" }
func (c *ExportCmd) Usage() string {
	return "ltodo export [--format json|csv|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatJSON, "")
	fs.StringVar(&c.format, "f", output.FormatJSON, "")
	fs.StringVar(&c.path, "output", "", "")
	fs.StringVar(&c.path, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format := strings.ToLower(c.format)
	if format == "" {
		format = output.FormatJSON
	}
	switch format {
	case output.FormatJSON, output.FormatCSV, output.FormatPDF:
	default:
		fmt.Fprintf(errOut, "error: unknown export format: %s\n", c.format)
		return exitcode.UserError
	}

	if c.path == "" {
		if err := output.Export(out, format, st.Tasks(), location(c.loc)); err != nil {
			fmt.Fprintf(errOut, "error: export failed: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	f, err := os.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := output.Export(f, format, st.Tasks(), location(c.loc)); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.BackendError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
