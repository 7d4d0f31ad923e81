// artvec recomputes the wire and SVG columns of the object conformance
// vectors from their decoded objects.
//
//	go run ./internal/tools/artvec            # rewrite testdata/vectors/objects.json
//	go run ./internal/tools/artvec -check     # exit 1 if the file is stale
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"xdao.co/paint/art"
	"xdao.co/paint/model"
	"xdao.co/paint/render"
)

type vector struct {
	Name             string       `json:"name"`
	Object           model.Object `json:"object"`
	Base             string       `json:"base"`
	AdditionalPoints string       `json:"additionalPoints"`
	SVG              string       `json:"svg"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("artvec", flag.ContinueOnError)
	fs.SetOutput(errOut)
	path := fs.String("file", "testdata/vectors/objects.json", "Vector file")
	check := fs.Bool("check", false, "Report stale vectors instead of rewriting")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	b, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(errOut, "read vectors: %v\n", err)
		return 1
	}
	var vs []vector
	if err := json.Unmarshal(b, &vs); err != nil {
		fmt.Fprintf(errOut, "parse vectors: %v\n", err)
		return 1
	}
	for i := range vs {
		if err := regenerate(&vs[i]); err != nil {
			fmt.Fprintf(errOut, "vector %q: %v\n", vs[i].Name, err)
			return 1
		}
	}
	next := format(vs)

	if *check {
		if !bytes.Equal(b, next) {
			fmt.Fprintf(errOut, "%s is stale; run artvec\n", *path)
			return 1
		}
		_, _ = fmt.Fprintf(out, "%d vectors OK\n", len(vs))
		return 0
	}
	if err := os.WriteFile(*path, next, 0o644); err != nil {
		fmt.Fprintf(errOut, "write vectors: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(out, "wrote %d vectors to %s\n", len(vs), *path)
	return 0
}

func regenerate(v *vector) error {
	o, err := v.Object.ToObject()
	if err != nil {
		return err
	}
	if err := art.ValidateStructure(o); err != nil {
		return err
	}
	p, err := art.Encode(o)
	if err != nil {
		return err
	}
	v.Base = p.BaseHex()
	v.AdditionalPoints = hex.EncodeToString(p.AdditionalPoints)
	v.SVG = string(render.Object(o))
	return nil
}

// format writes one field per line and each object on a single line.
func format(vs []vector) []byte {
	var b bytes.Buffer
	b.WriteString("[\n")
	for i, v := range vs {
		b.WriteString("  {\n")
		fmt.Fprintf(&b, "    \"name\": %s,\n", jsonString(v.Name))
		fmt.Fprintf(&b, "    \"object\": %s,\n", formatObject(v.Object))
		fmt.Fprintf(&b, "    \"base\": %s,\n", jsonString(v.Base))
		fmt.Fprintf(&b, "    \"additionalPoints\": %s,\n", jsonString(v.AdditionalPoints))
		fmt.Fprintf(&b, "    \"svg\": %s\n", jsonString(v.SVG))
		if i == len(vs)-1 {
			b.WriteString("  }\n")
		} else {
			b.WriteString("  },\n")
		}
	}
	b.WriteString("]\n")
	return b.Bytes()
}

func formatObject(o model.Object) string {
	pts := make([]string, 0, len(o.Points))
	for _, p := range o.Points {
		pts = append(pts, fmt.Sprintf("[%d, %d]", p[0], p[1]))
	}
	return fmt.Sprintf(`{"shape": %s, "color": %s, "stroke": %d, "points": [%s]}`,
		jsonString(o.Shape), jsonString(o.Color), o.Stroke, strings.Join(pts, ", "))
}

func jsonString(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}
