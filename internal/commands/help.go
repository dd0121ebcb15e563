package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltodo/internal/config"
	"ltodo/internal/exitcode"
	"ltodo/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "ltodo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  ltodo                                          List all tasks
  ltodo list [common flags] [--open]             List tasks with their numbers
  ltodo add [common flags] [--due <when>] <text...>
  ltodo create [common flags] [--due <when>] <text...>
  ltodo toggle [common flags] <ref>              Flip a task between open and completed
  ltodo done [common flags] <ref>
  ltodo rm [common flags] <ref>
  ltodo delete [common flags] <ref>
  ltodo export [common flags] [--format json|csv|pdf] [--output <file>]
  ltodo serve [common flags] [--addr <host:port>]
  ltodo ui [common flags]
  ltodo push [common flags] [--list <list-name>] [--prune]
  ltodo login [common flags]
  ltodo logout [common flags]
  ltodo help
  ltodo version

Task references:
  <n>      Position shown by list (1 is the oldest task)
  #<id>    Task id

Due dates:
  2025-02-01 18:30, 2025-02-01T18:30, 2025-02-01 (local time) or RFC 3339

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
