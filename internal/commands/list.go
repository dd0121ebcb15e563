package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"ltodo/internal/config"
	"ltodo/internal/exitcode"
	"ltodo/internal/output"
	"ltodo/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ltodo` (no args) and `ltodo list`.
type ListCmd struct {
	open bool
	loc  *time.Location
}

// SetLocation sets the time zone used to print due dates (for testing).
func (c *ListCmd) SetLocation(loc *time.Location) {
	c.loc = loc
}

// SetOpen restricts output to open tasks (for testing).
func (c *ListCmd) SetOpen(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "ltodo list [--open]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	printed := 0
	// Numbers are positions in the full list so they stay valid for toggle and rm.
	for i, t := range st.Tasks() {
		if c.open && t.Completed {
			continue
		}
		output.FormatTask(out, i+1, t, location(c.loc))
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, output.EmptyList)
	}
	return exitcode.Success
}
