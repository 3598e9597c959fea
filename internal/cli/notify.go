package cli

import (
	"fmt"
	"io"
	"sync"
)

// consoleNotifier renders notifications to the terminal. It satisfies the
// shop package's Notifier and is the CLI's toast analog.
type consoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles *styles
}

func (n *consoleNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, n.styles.Success.Render("✓ "+msg))
}

func (n *consoleNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, n.styles.Warning.Render("! "+msg))
}

func (n *consoleNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, n.styles.Error.Render("✗ "+msg))
}

// hintNavigator translates view redirects into terminal guidance. A redirect
// to /login becomes a hint to run the login command.
type hintNavigator struct {
	mu   sync.Mutex
	out  io.Writer
	sty  *styles
	last string
}

var redirectHints = map[string]string{
	"/login":                 "run `ymgs login` to continue",
	"/":                      "this area needs a different account role",
	"/pharmacy-registration": "run `ymgs pharmacy register` to finish onboarding",
	"/delivery-registration": "run `ymgs delivery register` to finish onboarding",
}

func (n *hintNavigator) NavigateTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = path
	hint, ok := redirectHints[path]
	if !ok {
		hint = "redirected to " + path
	}
	fmt.Fprintln(n.out, n.sty.Muted.Render(hint))
}
