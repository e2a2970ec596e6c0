package output

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
)

// DefaultEmpty is shown for an empty successful result.
const DefaultEmpty = "Chưa có dữ liệu"

// Printer writes command output: results to Out, feedback to Err.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	Format  Format
	Wide    bool
	Verbose bool

	// Animate enables the spinner and progress bars.
	Animate bool
}

// NewPrinter creates a printer. Animation is enabled when errOut is a
// terminal.
func NewPrinter(out, errOut io.Writer, format Format, wide bool) *Printer {
	return &Printer{
		Out:     out,
		Err:     errOut,
		Format:  format,
		Wide:    wide,
		Animate: IsTerminal(errOut),
	}
}

// Print formats v in the configured format.
func (p *Printer) Print(v any) error {
	return NewFormatter(p.Format, p.Wide).Format(p.Out, v)
}

// Println writes a plain message line to Out.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.Out, a...)
}

// Printf writes a formatted message to Out.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.Out, format, a...)
}

// Failure shows "✗ title: reason" on Err, plus the raw error when verbose,
// and returns err marked as reported.
func (p *Printer) Failure(title string, err error) error {
	fmt.Fprintf(p.Err, "✗ %s: %s\n", title, Describe(err))
	if p.Verbose {
		fmt.Fprintf(p.Err, "  chi tiết: %v\n", err)
	}
	return &ReportedError{Err: err}
}

// Spinner returns a spinner on Err, or nil when animation is off.
func (p *Printer) Spinner(message string) *Spinner {
	if !p.Animate {
		return nil
	}
	return NewSpinner(p.Err, message)
}

// Progress returns a progress callback drawing on Err, or nil when
// animation is off. finish ends the progress line.
func (p *Printer) Progress(title string) (update func(done, total int), finish func()) {
	if !p.Animate {
		return nil, func() {}
	}
	bar := NewProgressBar(p.Err, title)
	return bar.Update, bar.Finish
}

// View describes how a command fetches and shows one result.
type View[T any] struct {
	// Loading is shown while Fetch runs.
	Loading string
	// Failure titles the inline error, e.g. "Không thể tải khóa học".
	Failure string
	// Empty is shown in table mode when the result is empty.
	Empty string

	Fetch func(context.Context) (T, error)

	// Table builds the table form. When nil the value is rendered by
	// reflection.
	Table func(T) *Table
}

// Render runs the view's fetch with a spinner and shows the outcome.
func Render[T any](ctx context.Context, p *Printer, v View[T]) error {
	spin := p.Spinner(v.Loading)
	spin.Start()
	res := service.Fetch(ctx, v.Fetch)
	spin.Stop()

	return Show(p, v, res)
}

// Show renders one view state. A failure is shown inline and returned as
// a ReportedError.
func Show[T any](p *Printer, v View[T], res domain.Result[T]) error {
	switch res.State() {
	case domain.StateLoading:
		fmt.Fprintln(p.Err, v.Loading)
		return nil
	case domain.StateFailure:
		return p.Failure(v.Failure, res.Err())
	}

	value := res.Value()
	if p.Format != FormatTable && p.Format != "" {
		return p.Print(value)
	}

	if isEmpty(value) {
		empty := v.Empty
		if empty == "" {
			empty = DefaultEmpty
		}
		p.Println(empty)
		return nil
	}

	if v.Table != nil {
		return (&TableFormatter{Wide: p.Wide}).Format(p.Out, v.Table(value))
	}
	return p.Print(value)
}

// isEmpty reports whether v is nil or an empty slice or map.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	default:
		return false
	}
}
