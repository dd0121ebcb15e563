package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltodo/internal/config"
	"ltodo/internal/exitcode"
	"ltodo/internal/httpapi"
	"ltodo/internal/logging"
	"ltodo/internal/store"
)

// DefaultAddr is the listen address for serve.
const DefaultAddr = "127.0.0.1:8080"

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the task list as a local web page" }
func (c *ServeCmd) Usage() string     { return "ltodo serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", DefaultAddr, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := c.addr
	if addr == "" {
		addr = DefaultAddr
	}

	logger := logging.New(errOut, cfg)
	if !cfg.Quiet {
		fmt.Fprintf(out, "serving on http://%s\n", addr)
	}

	if err := httpapi.Serve(ctx, addr, httpapi.NewHandler(st, logger)); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
