package cli

import (
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// EnvOrganization names the environment variable holding the organization
// shown in front of error lines.
const EnvOrganization = "MODELSHIM_ORGANIZATION"

// Reporter writes error lines. The zero value writes colored lines to
// os.Stderr without an organization prefix.
type Reporter struct {
	Out          io.Writer
	Organization string
	NoColor      bool
}

// DefaultReporter writes to os.Stderr. The organization comes from
// EnvOrganization; color is off when NO_COLOR is set or stderr is not a
// terminal.
func DefaultReporter() *Reporter {
	return &Reporter{
		Out:          os.Stderr,
		Organization: os.Getenv(EnvOrganization),
		NoColor:      os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stderr),
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Format renders the line Display writes for err.
func (r *Reporter) Format(err error) string {
	var b strings.Builder
	if r.Organization != "" {
		b.WriteString("[organization=")
		b.WriteString(r.Organization)
		b.WriteString("] ")
	}
	label := color.New(color.FgHiRed)
	if r.NoColor {
		label.DisableColor()
	} else {
		label.EnableColor()
	}
	b.WriteString(label.Sprint("Error:"))
	b.WriteByte(' ')
	b.WriteString(lineBreaks.Replace(err.Error()))
	b.WriteByte('\n')
	return b.String()
}

// Display writes one line for err. Nil (including typed nil) and silent
// errors print nothing; write failures and panicking Error methods are
// ignored.
func (r *Reporter) Display(err error) {
	defer func() { _ = recover() }()
	if isNil(err) || IsSilent(err) {
		return
	}
	if r == nil {
		r = DefaultReporter()
	}
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = io.WriteString(out, r.Format(err))
}

var (
	mu  sync.Mutex
	std = DefaultReporter()
)

// SetOrganization overrides the organization of the package reporter.
func SetOrganization(org string) {
	mu.Lock()
	defer mu.Unlock()
	std.Organization = org
}

// SetReporter replaces the package reporter and returns the previous one.
// A nil r restores DefaultReporter.
func SetReporter(r *Reporter) *Reporter {
	mu.Lock()
	defer mu.Unlock()
	if r == nil {
		r = DefaultReporter()
	}
	prev := std
	std = r
	return prev
}

// DisplayError writes err through the package reporter.
func DisplayError(err error) {
	mu.Lock()
	defer mu.Unlock()
	std.Display(err)
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	rv := reflect.ValueOf(err)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
