package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ltodo/internal/commands"
	"ltodo/internal/config"
	"ltodo/internal/exitcode"
	"ltodo/internal/service"
	"ltodo/internal/store"
	"ltodo/internal/task"
	"ltodo/internal/testutil"
)

const sampleTasks = `[
{"id":1718000000000,"text":"Buy milk","completed":false},
{"id":1718000000001,"text":"Pay rent","completed":true,"dueDate":"2025-02-01T18:30:00.000Z"},
{"id":1718000000002,"text":"Call mom","completed":false,"dueDate":"2025-02-03T09:00:00.000Z"}
]`

// newStore returns a loaded store over a FakeStorage seeded with data.
func newStore(t *testing.T, data string) (*store.Store, *testutil.FakeStorage) {
	t.Helper()
	fs := testutil.NewFakeStorage()
	if data != "" {
		fs.Put(config.DefaultKey, data)
	}
	clock := time.UnixMilli(1718000000100)
	st := store.New(fs, store.WithClock(func() time.Time { return clock }))
	st.Load(context.Background())
	return st, fs
}

// runCommand is a helper to run a command against a store.
func runCommand(t *testing.T, cmd commands.Command, st *store.Store, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, st, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ltodo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "help", stdout)
}

func TestHelpCoversRegisteredCommands(t *testing.T) {
	var buf bytes.Buffer
	(&commands.HelpCmd{}).Run(context.Background(), &config.Config{}, nil, nil, &buf, &buf)

	for _, cmd := range commands.DefaultRegistry.All() {
		if !strings.Contains(buf.String(), "ltodo "+cmd.Name()) {
			t.Errorf("help does not mention %s", cmd.Name())
		}
	}
}

// Tests for list command
func TestListCommand(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	cmd := &commands.ListCmd{}
	cmd.SetLocation(time.UTC)
	stdout, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list", stdout)
}

func TestListCommand_Open(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	cmd := &commands.ListCmd{}
	cmd.SetLocation(time.UTC)
	cmd.SetOpen(true)
	stdout, _, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	// Positions stay those of the full list.
	expected := "   1  [ ] Buy milk\n   3  [ ] Call mom  due 2025-02-03 09:00\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	st, _ := newStore(t, "")

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, st, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks\n" {
		t.Errorf("expected %q, got %q", "no tasks\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	st, _ := newStore(t, "")

	stdout, _, code := runCommand(t, &commands.ListCmd{}, st, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	// Quiet mode should suppress "no tasks"
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_CorruptData(t *testing.T) {
	st, _ := newStore(t, `{"not":"a list"}`)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, st, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks\n" {
		t.Errorf("expected %q, got %q", "no tasks\n", stdout)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	st, fs := newStore(t, "")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, st, []string{"Buy", " milk "}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}

	stored, _ := fs.Value(config.DefaultKey)
	expected := `[{"id":1718000000100,"text":"Buy  milk","completed":false}]`
	if stored != expected {
		t.Errorf("expected stored %q, got %q", expected, stored)
	}
}

func TestAddCommand_Due(t *testing.T) {
	st, _ := newStore(t, "")

	cmd := &commands.AddCmd{}
	cmd.SetLocation(time.FixedZone("UTC+2", 2*60*60))
	cmd.SetDue("2025-02-01 20:30")
	_, stderr, code := runCommand(t, cmd, st, []string{"Pay rent"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	got := st.Tasks()[0]
	if got.DueDate != "2025-02-01T18:30:00.000Z" {
		t.Errorf("expected due 2025-02-01T18:30:00.000Z, got %q", got.DueDate)
	}
}

func TestAddCommand_InvalidDue(t *testing.T) {
	st, fs := newStore(t, "")

	cmd := &commands.AddCmd{}
	cmd.SetDue("next week")
	_, stderr, code := runCommand(t, cmd, st, []string{"a"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid due date: next week\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if fs.Writes() != 0 {
		t.Errorf("expected no writes, got %d", fs.Writes())
	}
}

func TestAddCommand_NoText(t *testing.T) {
	st, _ := newStore(t, "")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, st, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task text required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_WhitespaceIsNoop(t *testing.T) {
	st, fs := newStore(t, "")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, st, []string{"   ", "\t"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got %q / %q", stdout, stderr)
	}
	if fs.Writes() != 0 {
		t.Errorf("expected no writes, got %d", fs.Writes())
	}
}

func TestAddCommand_WriteFailure(t *testing.T) {
	st, fs := newStore(t, "")
	fs.SetErr = errors.New("disk full")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, st, []string{"a"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: storage error: persist tasks: disk full\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for toggle and rm commands
func TestToggleCommand(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, st, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	if !st.Tasks()[0].Completed {
		t.Error("expected first task to be completed")
	}

	runCommand(t, &commands.ToggleCmd{}, st, []string{"#1718000000000"}, false)
	if st.Tasks()[0].Completed {
		t.Error("expected first task to be open again")
	}
}

func TestToggleCommand_OutOfRange(t *testing.T) {
	st, fs := newStore(t, sampleTasks)

	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, st, []string{"4"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 4\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if fs.Writes() != 0 {
		t.Errorf("expected no writes, got %d", fs.Writes())
	}
}

func TestToggleCommand_UnknownID(t *testing.T) {
	st, fs := newStore(t, sampleTasks)

	_, _, code := runCommand(t, &commands.ToggleCmd{}, st, []string{"#42"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if fs.Writes() != 0 {
		t.Errorf("expected no writes, got %d", fs.Writes())
	}
}

func TestRmCommand(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, st, []string{"2"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	var texts []string
	for _, tk := range st.Tasks() {
		texts = append(texts, tk.Text)
	}
	if strings.Join(texts, ",") != "Buy milk,Call mom" {
		t.Errorf("unexpected tasks after rm: %v", texts)
	}
}

func TestRmCommand_RefErrors(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	tests := []struct {
		args []string
		want string
	}{
		{nil, "error: task reference required\n"},
		{[]string{"x"}, "error: invalid task reference: x\n"},
		{[]string{"0"}, "error: task number out of range: 0\n"},
	}
	for _, tt := range tests {
		_, stderr, code := runCommand(t, &commands.RmCmd{}, st, tt.args, false)
		if code != exitcode.UserError {
			t.Errorf("%v: expected exit code %d, got %d", tt.args, exitcode.UserError, code)
		}
		if stderr != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.args, tt.want, stderr)
		}
	}
	if st.Len() != 3 {
		t.Errorf("expected 3 tasks, got %d", st.Len())
	}
}

// Tests for export command
func TestExportCommand_JSON(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	stdout, _, code := runCommand(t, &commands.ExportCmd{}, st, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	got, err := task.Decode([]byte(stdout))
	if err != nil {
		t.Fatalf("export is not a valid task list: %v", err)
	}
	if len(got) != 3 || got[1].DueDate != "2025-02-01T18:30:00.000Z" {
		t.Errorf("unexpected export: %+v", got)
	}
}

func TestExportCommand_CSVFile(t *testing.T) {
	st, _ := newStore(t, sampleTasks)
	path := filepath.Join(t.TempDir(), "tasks.csv")

	cmd := &commands.ExportCmd{}
	cmd.SetFormat("csv")
	cmd.SetOutput(path)
	cmd.SetLocation(time.UTC)
	stdout, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	testutil.Golden(t, "export_csv", data)
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	cmd := &commands.ExportCmd{}
	cmd.SetFormat("xml")
	_, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown export format: xml\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for ui command
func TestUICommand_RejectsArguments(t *testing.T) {
	st, fs := newStore(t, sampleTasks)

	stdout, stderr, code := runCommand(t, &commands.UICmd{}, st, []string{"extra"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: unexpected argument: extra\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if fs.Writes() != 0 {
		t.Errorf("expected no writes, got %d", fs.Writes())
	}
}

// Tests for push command
func TestPushCommand(t *testing.T) {
	st, _ := newStore(t, sampleTasks)
	fm := testutil.NewFakeMirror()

	cmd := &commands.PushCmd{}
	cmd.SetMirror(fm)
	stdout, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if stdout != "created 3, updated 0, unchanged 0, deleted 0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	stdout, _, _ = runCommand(t, cmd, st, nil, false)
	if stdout != "created 0, updated 0, unchanged 3, deleted 0\n" {
		t.Errorf("unexpected stdout on second push %q", stdout)
	}
}

func TestPushCommand_NamedListAndPrune(t *testing.T) {
	st, _ := newStore(t, sampleTasks)
	fm := testutil.NewFakeMirror()
	fm.AddList("work", "Work")
	fm.AddTask("work", service.RemoteTask{Title: "stale", Notes: "ltodo-id:5", Status: service.StatusNeedsAction})

	cmd := &commands.PushCmd{}
	cmd.SetMirror(fm)
	cmd.SetListName("work")
	cmd.SetPrune(true)
	stdout, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if stdout != "created 3, updated 0, unchanged 0, deleted 1\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if n := len(fm.Tasks(testutil.DefaultListID)); n != 0 {
		t.Errorf("expected default list untouched, got %d tasks", n)
	}
}

func TestPushCommand_DuplicateWarning(t *testing.T) {
	st, _ := newStore(t, `[{"id":1,"text":"a","completed":false}]`)
	fm := testutil.NewFakeMirror()
	fm.AddTask(testutil.DefaultListID, service.RemoteTask{Title: "a", Notes: "ltodo-id:1", Status: service.StatusNeedsAction})
	fm.AddTask(testutil.DefaultListID, service.RemoteTask{Title: "a", Notes: "ltodo-id:1", Status: service.StatusNeedsAction})

	cmd := &commands.PushCmd{}
	cmd.SetMirror(fm)
	stdout, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if stdout != "created 0, updated 0, unchanged 1, deleted 0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	expected := "warning: 1 duplicate remote tasks left in place (run with --prune to remove)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestPushCommand_ListNotFound(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	cmd := &commands.PushCmd{}
	cmd.SetMirror(testutil.NewFakeMirror())
	cmd.SetListName("Nope")
	_, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: list not found: Nope\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestPushCommand_BackendError(t *testing.T) {
	st, _ := newStore(t, sampleTasks)
	fm := testutil.NewFakeMirror()
	fm.CreateTaskErr = errors.New("rate limited")

	cmd := &commands.PushCmd{}
	cmd.SetMirror(fm)
	_, stderr, code := runCommand(t, cmd, st, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: create \"Buy milk\": rate limited\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestPushCommand_NotLoggedIn(t *testing.T) {
	st, _ := newStore(t, sampleTasks)

	_, stderr, code := runCommand(t, &commands.PushCmd{}, st, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: oauth_client.json not found in ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
