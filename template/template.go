// Package template prepares the static SVG wrapper: it splits a full
// template at the dynamic-content markers and minifies each part line by line.
package template

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"xdao.co/paint/document"
)

const (
	StartMarker = "<!-- Dynamic Content Start -->"
	EndMarker   = "<!-- Dynamic Content End -->"
)

var (
	ErrMissingMarker = errors.New("template: dynamic content markers not found")
	ErrMarkerOrder   = errors.New("template: end marker precedes start marker")
)

//go:embed default.svg
var defaultSVG []byte

// DefaultSource returns the embedded full template, unminified.
func DefaultSource() []byte {
	return append([]byte(nil), defaultSVG...)
}

// Default returns the embedded template, split and minified. It panics if the
// embedded file is missing its markers.
func Default() document.Wrapper {
	w, err := Load(defaultSVG)
	if err != nil {
		panic(err)
	}
	return w
}

// Split returns the bytes before the start marker and after the end marker.
// Markers and anything between them are dropped.
func Split(full []byte) (start, end []byte, err error) {
	s := strings.Index(string(full), StartMarker)
	e := strings.Index(string(full), EndMarker)
	if s < 0 || e < 0 {
		return nil, nil, ErrMissingMarker
	}
	if e < s {
		return nil, nil, ErrMarkerOrder
	}
	return full[:s], full[e+len(EndMarker):], nil
}

// Minify drops blank lines, whole-line <!-- --> comments, and // comment
// lines, strips trailing // comments not preceded by ':', trims every line, and
// joins the result without newlines.
func Minify(part []byte) []byte {
	var sb strings.Builder
	for _, line := range strings.Split(string(part), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "<!--") && strings.HasSuffix(line, "-->") {
			continue
		}
		if strings.HasPrefix(line, "//") {
			continue
		}
		if i := trailingComment(line); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		sb.WriteString(line)
	}
	return []byte(sb.String())
}

// trailingComment returns the index of the first "//" that is not part of a
// scheme separator such as "http://", or -1.
func trailingComment(line string) int {
	for i := 1; i+1 < len(line); i++ {
		if line[i] == '/' && line[i+1] == '/' && line[i-1] != ':' {
			return i
		}
	}
	return -1
}

// Load splits full and minifies both parts.
func Load(full []byte) (document.Wrapper, error) {
	start, end, err := Split(full)
	if err != nil {
		return document.Wrapper{}, err
	}
	return document.Wrapper{Start: Minify(start), End: Minify(end)}, nil
}

// LoadFile reads and loads a full template from disk.
func LoadFile(path string) (document.Wrapper, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return document.Wrapper{}, err
	}
	w, err := Load(b)
	if err != nil {
		return document.Wrapper{}, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// LoadParts reads pre-split start and end files verbatim.
func LoadParts(startPath, endPath string) (document.Wrapper, error) {
	start, err := os.ReadFile(startPath)
	if err != nil {
		return document.Wrapper{}, err
	}
	end, err := os.ReadFile(endPath)
	if err != nil {
		return document.Wrapper{}, err
	}
	return document.Wrapper{Start: start, End: end}, nil
}
