package planner

import (
	"strings"
	"time"

	"github.com/arthur-debert/photosnap/pkg/errors"
)

// DefaultDateFormat names snapshot folders like 2024-06-01_13-45-00
const DefaultDateFormat = "yyyy-MM-dd_HH-mm-ss"

// patternLayouts maps a pattern letter and run length to a Go layout
// element. A zero-length key entry is the fallback for other run lengths.
var patternLayouts = map[byte]map[int]string{
	'y': {2: "06", 0: "2006"},
	'M': {1: "1", 2: "01", 3: "Jan", 0: "January"},
	'd': {1: "2", 2: "02"},
	'D': {3: "002"},
	'H': {0: "15"},
	'h': {1: "3", 2: "03"},
	'm': {1: "4", 2: "04"},
	's': {1: "5", 2: "05"},
	'a': {0: "PM"},
	'E': {4: "Monday", 0: "Mon"},
	'z': {0: "MST"},
	'Z': {5: "Z07:00", 0: "-0700"},
	'X': {1: "Z07", 2: "Z0700", 0: "Z07:00"},
	'x': {1: "-07", 2: "-0700", 0: "-07:00"},
}

// Layout translates a Unicode date pattern into a Go time layout.
// Quoted text ('T') is copied literally and '' is a single quote.
// Fractional seconds (S) must follow a '.' or ','.
func Layout(pattern string) (string, error) {
	if pattern == "" {
		return "", errors.New(errors.ErrDateParse, "empty date format")
	}

	var parts []layoutPart
	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				parts = append(parts, layoutPart{text: "'", literal: true})
				i += 2
				continue
			}
			end := strings.IndexByte(pattern[i+1:], '\'')
			if end < 0 {
				return "", errors.Newf(errors.ErrDateParse, "unterminated quote in date format %q", pattern)
			}
			parts = append(parts, layoutPart{text: strings.ReplaceAll(pattern[i+1:i+1+end], "''", "'"), literal: true})
			i += end + 2
			continue
		}

		if !isLetter(c) {
			parts = append(parts, layoutPart{text: string(c), literal: true})
			i++
			continue
		}

		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}

		if c == 'S' {
			if i == 0 || (pattern[i-1] != '.' && pattern[i-1] != ',') {
				return "", errors.Newf(errors.ErrDateParse, "fractional seconds must follow '.' or ',' in %q", pattern)
			}
			parts = append(parts, layoutPart{text: strings.Repeat("0", n)})
			i += n
			continue
		}

		forms, ok := patternLayouts[c]
		if !ok {
			return "", errors.Newf(errors.ErrDateParse, "unsupported pattern letter %q in %q", c, pattern)
		}
		elem, ok := forms[n]
		if !ok {
			elem, ok = forms[0]
		}
		if !ok {
			return "", errors.Newf(errors.ErrDateParse, "unsupported pattern %q in %q", strings.Repeat(string(c), n), pattern)
		}
		parts = append(parts, layoutPart{text: elem})
		i += n
	}
	return joinLayout(pattern, parts)
}

type layoutPart struct {
	text    string
	literal bool
}

// layoutTokens are Go layout words that literal text must not spell,
// alone or together with a neighbouring element.
var layoutTokens = []string{"January", "Jan", "Monday", "Mon", "MST", "PM", "pm", "_2"}

// joinLayout concatenates parts, rejecting literal text that time.Format
// would read as a layout element.
func joinLayout(pattern string, parts []layoutPart) (string, error) {
	var b strings.Builder
	for i, part := range parts {
		if !part.literal {
			b.WriteString(part.text)
			continue
		}
		if strings.ContainsAny(part.text, "0123456789") {
			return "", errors.Newf(errors.ErrDateParse, "digits must not appear as literal text in %q", pattern)
		}
		prev := b.String()
		next := ""
		if i+1 < len(parts) {
			next = parts[i+1].text
		}
		window := prev + part.text + next
		start, end := len(prev), len(prev)+len(part.text)
		for _, tok := range layoutTokens {
			for off := 0; ; {
				at := strings.Index(window[off:], tok)
				if at < 0 {
					break
				}
				at += off
				if at < end && at+len(tok) > start {
					return "", errors.Newf(errors.ErrDateParse, "literal text %q in %q reads as date element %q", part.text, pattern, tok)
				}
				off = at + 1
			}
		}
		b.WriteString(part.text)
	}
	return b.String(), nil
}

// ParseFolderTime parses a snapshot folder name in local time.
func ParseFolderTime(layout, name string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, name, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, errors.ErrDateParse, "unable to parse date %q", name)
	}
	return t, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
