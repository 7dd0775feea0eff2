package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) call(name string, arg ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(arg, " ")))
	return nil
}

func (f *fakeExec) Register(ctx context.Context) error { return f.call("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.call("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.call("logout")
}
func (f *fakeExec) Search(ctx context.Context, q string) error { return f.call("search", q) }
func (f *fakeExec) Book(ctx context.Context, ref string) error { return f.call("book", ref) }
func (f *fakeExec) Reviews(ctx context.Context) error { return f.call("reviews") }
func (f *fakeExec) Review(ctx context.Context) error { return f.call("review") }
func (f *fakeExec) Edit(ctx context.Context, ref string) error { return f.call("edit", ref) }
func (f *fakeExec) Save(ctx context.Context) error { return f.call("save") }
func (f *fakeExec) Cancel(ctx context.Context) error { return f.call("cancel") }
func (f *fakeExec) Delete(ctx context.Context, ref string) error { return f.call("delete", ref) }
func (f *fakeExec) Mine(ctx context.Context) error { return f.call("mine") }

func captureREPL(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(a ...any) (int, error) { return 0, nil }
	t.Cleanup(func() {
		printlnFn = origPrintln
		printFn = origPrint
	})
	return &printed
}

func TestRunREPL_DispatchesWithArguments(t *testing.T) {
	printed := captureREPL(t)

	input := strings.Join([]string{
		"help",
		"search   the left hand of darkness ",
		"book 2",
		"login",
		"help",
		"review",
		"edit 1",
		"save",
		"delete r9",
		"mine",
		"reviews",
		"foobar",
		"logout",
		"exit",
		"search never reached",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Equal(t, []string{
		"search the left hand of darkness",
		"book 2",
		"login",
		"review",
		"edit 1",
		"save",
		"delete r9",
		"mine",
		"reviews",
		"logout",
	}, exec.calls)
	assert.Contains(t, *printed, helpLoggedOut)
	assert.Contains(t, *printed, helpLoggedIn)
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*printed)[len(*printed)-1])
}

func TestRunREPL_GatedCommandsNeedLogin(t *testing.T) {
	printed := captureREPL(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("review\nedit 1\ndelete 1\nmine\nsave\ncancel\nlogout\n"))

	assert.Empty(t, exec.calls)
	assert.Len(t, *printed, 8)
	assert.Equal(t, "Please log in first.", (*printed)[0])
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureREPL(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("register"))

	assert.Equal(t, []string{"register"}, exec.calls)
}
