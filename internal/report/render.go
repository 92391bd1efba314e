// Package report turns a harness report into human and machine readable
// output.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Options controls rendering.
type Options struct {
	Format Format
	// Profile is the colour profile for text and styled markdown output.
	// termenv.Ascii disables styling.
	Profile termenv.Profile
	// Width wraps styled markdown; zero means 100 columns.
	Width int
}

// DetectProfile returns the colour profile supported by w. Anything other
// than a terminal gets termenv.Ascii.
func DetectProfile(w io.Writer) termenv.Profile {
	f, ok := w.(*os.File)
	if !ok {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).EnvColorProfile()
}

// Render writes the summary in the requested format.
func Render(w io.Writer, s *Summary, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return renderText(w, s, opts.Profile)
	case FormatMarkdown:
		return renderMarkdown(w, s, opts)
	case FormatJSON:
		return renderJSON(w, s)
	}
	return fmt.Errorf("unknown report format %q", opts.Format)
}
