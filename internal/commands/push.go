package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ltodo/internal/backend/googletasks"
	"ltodo/internal/config"
	"ltodo/internal/exitcode"
	"ltodo/internal/mirror"
	"ltodo/internal/service"
	"ltodo/internal/store"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
	prune    bool
	svc      service.Mirror
}

// SetMirror sets the remote service, skipping credential checks (for testing).
func (c *PushCmd) SetMirror(svc service.Mirror) {
	c.svc = svc
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetPrune enables deletion of remote tasks removed locally (for testing).
func (c *PushCmd) SetPrune(prune bool) {
	c.prune = prune
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy the task list to Google Tasks" }
func (c *PushCmd) Usage() string     { return "ltodo push [--list <list-name>] [--prune]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.prune, "prune", false, "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	svc := c.svc
	if svc == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: ltodo login)")
			return exitcode.AuthError
		}
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: auth error: %v\n", err)
			return exitcode.AuthError
		}
		svc = client
	}

	list, err := svc.ResolveList(ctx, c.listName)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: list not found: %s\n", c.listName)
			return exitcode.UserError
		}
		if strings.Contains(err.Error(), "ambiguous") {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", c.listName)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	res, err := mirror.Push(ctx, svc, list.ID, st.Tasks(), mirror.Options{Prune: c.prune})
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %d, updated %d, unchanged %d, deleted %d\n",
			res.Created, res.Updated, res.Unchanged, res.Deleted)
	}
	if res.Duplicates > 0 {
		fmt.Fprintf(errOut, "warning: %d duplicate remote tasks left in place (run with --prune to remove)\n", res.Duplicates)
	}
	return exitcode.Success
}
