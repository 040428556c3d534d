package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) note(c string) error { f.calls = append(f.calls, c); return nil }

func (f *fakeExec) Add(context.Context) error                 { return f.note("add") }
func (f *fakeExec) List(context.Context, []string) error      { return f.note("list") }
func (f *fakeExec) Show(context.Context, []string) error      { return f.note("show") }
func (f *fakeExec) Edit(context.Context, []string) error      { return f.note("edit") }
func (f *fakeExec) Delete(context.Context, []string) error    { return f.note("delete") }
func (f *fakeExec) Chapters(context.Context, []string) error  { return f.note("chapters") }
func (f *fakeExec) Write(context.Context, []string) error     { return f.note("write") }
func (f *fakeExec) Notes(context.Context, []string) error     { return f.note("notes") }
func (f *fakeExec) Character(context.Context, []string) error { return f.note("character") }
func (f *fakeExec) Stats(context.Context) error               { return f.note("stats") }
func (f *fakeExec) Goals(context.Context, []string) error     { return f.note("goals") }
func (f *fakeExec) Activity(context.Context) error            { return f.note("activity") }
func (f *fakeExec) ExportStats(context.Context) error         { return f.note("export") }
func (f *fakeExec) ExportBooks(context.Context) error         { return f.note("exportbooks") }
func (f *fakeExec) Import(context.Context, []string) error    { return f.note("import") }
func (f *fakeExec) ImportDoc(context.Context, []string) error { return f.note("importdoc") }
func (f *fakeExec) Sync(context.Context) error                { return f.note("sync") }
func (f *fakeExec) Storage(context.Context) error             { return f.note("storage") }
func (f *fakeExec) ResetStats(context.Context) error          { return f.note("clear") }

func TestRunREPL_DispatchesCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"add",
		"list draft",
		"show drakenkrieger",
		"write boek 1",
		"stats",
		"sync",
		"storage",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"add", "list", "show", "write", "stats", "sync", "storage"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, wantOrder)
	}
	for i, c := range exec.calls {
		if c != wantOrder[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, wantOrder)
		}
	}
}

func TestRunREPL_EOFAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}

	// quit stops the loop before the following command is read.
	sc := bufio.NewScanner(strings.NewReader("quit\nadd\n"))
	runREPL(context.Background(), exec, func() string { return "s" }, sc)
	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}

	// EOF without exit also terminates.
	sc = bufio.NewScanner(strings.NewReader(""))
	runREPL(context.Background(), exec, func() string { return "s" }, sc)
}
