package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"ltodo/internal/config"
	"ltodo/internal/exitcode"
	"ltodo/internal/store"
	"ltodo/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due string
	loc *time.Location
}

// SetDue sets the due date flag (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

// SetLocation sets the time zone used to read --due (for testing).
func (c *AddCmd) SetLocation(loc *time.Location) {
	c.loc = loc
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "ltodo add [--due <when>] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.due, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	var due string
	if strings.TrimSpace(c.due) != "" {
		var err error
		due, err = task.ParseDue(c.due, location(c.loc))
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	_, added, err := st.Add(ctx, strings.Join(args, " "), due)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	// Whitespace-only text changes nothing.
	if added && !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
