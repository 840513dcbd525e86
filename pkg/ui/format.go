package ui

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/photosnap/pkg/errors"
)

// Format names a report style, as accepted by --format
type Format string

const (
	// FormatAuto picks term or text from the output writer
	FormatAuto     Format = "auto"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

func (f Format) String() string { return string(f) }

// FormatNames lists the accepted --format values
func FormatNames() []string {
	names := make([]string, 0, len(formatAliases))
	for name := range formatAliases {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ParseFormat maps a --format value, case insensitively, to a Format
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q (want one of %s)",
		s, strings.Join(FormatNames(), ", "))
}

// fdWriter is satisfied by *os.File and by wrappers that expose a descriptor
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// resolveFormat turns FormatAuto into a concrete format for w. Only a
// colour capable terminal gets the styled report; NO_COLOR, files, pipes
// and in-memory buffers get plain text.
func resolveFormat(f Format, w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fw, ok := w.(fdWriter)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(fw.Fd()) && !isatty.IsCygwinTerminal(fw.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(w).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
