package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"xdao.co/paint/art"
	"xdao.co/paint/document"
	"xdao.co/paint/mint"
	"xdao.co/paint/model"
	"xdao.co/paint/raster"
	"xdao.co/paint/template"
)

func cmdRender(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var (
		traitPath    string
		templatePath string
		asMetadata   bool
		asURI        bool
		tokenID      uint64
		noValidate   bool
		collection   document.Collection
	)
	fs.StringVar(&traitPath, "trait", "", "Trait JSON file")
	fs.StringVar(&templatePath, "template", "", "Full SVG template with dynamic content markers (default: embedded)")
	fs.BoolVar(&asMetadata, "metadata", false, "Print metadata JSON instead of SVG")
	fs.BoolVar(&asURI, "uri", false, "Print the data:application/json;base64 token URI")
	fs.Uint64Var(&tokenID, "token", 0, "Token id (for --metadata/--uri)")
	fs.BoolVar(&noValidate, "no-validate", false, "Render without checking objects against the trait")
	fs.StringVar(&collection.Name, "name", "Paint", "Collection name")
	fs.StringVar(&collection.Description, "description", "", "Collection description")
	fs.StringVar(&collection.ExternalURL, "external-url", "", "External URL base")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if traitPath == "" || fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: paintctl render --trait <trait.json> [--template <full.svg>] [--metadata|--uri --token <id>] [<objects.json>|-]")
		return 2
	}

	t, err := readTrait(traitPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --trait: %s\n", artError(err))
		return 1
	}
	objs, err := readObjects(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read objects: %v\n", err)
		return 1
	}
	if !noValidate {
		for i, o := range objs {
			if err := art.Validate(o, t); err != nil {
				fmt.Fprintf(errOut, "object %d rejected: %s\n", i, artError(err))
				return 1
			}
		}
	}
	w := template.Default()
	if templatePath != "" {
		if w, err = template.LoadFile(templatePath); err != nil {
			fmt.Fprintf(errOut, "load --template: %v\n", err)
			return 1
		}
	}

	svg := w.Assemble(t, objs)
	if !asMetadata && !asURI {
		_, _ = out.Write(svg)
		return 0
	}
	meta, err := document.AssembleMetadata(collection, tokenID, svg, t)
	if err != nil {
		fmt.Fprintf(errOut, "metadata: %v\n", err)
		return 1
	}
	if asURI {
		_, _ = fmt.Fprintln(out, document.TokenURI(meta))
		return 0
	}
	_, _ = fmt.Fprintln(out, string(meta))
	return 0
}

func cmdPNG(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("png", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var (
		outPath string
		size    int
		isSVG   bool
	)
	fs.StringVar(&outPath, "out", "", "Output PNG file")
	fs.IntVar(&size, "size", 512, "Longer side in pixels (0 keeps the SVG size)")
	fs.BoolVar(&isSVG, "svg", false, "Input is an SVG document instead of objects JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if outPath == "" || fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: paintctl png --out <file.png> [--size <px>] [--svg] [<input>|-]")
		return 2
	}

	var svg []byte
	if isSVG {
		b, err := readInput(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read svg: %v\n", err)
			return 1
		}
		svg = b
	} else {
		objs, err := readObjects(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read objects: %v\n", err)
			return 1
		}
		svg = raster.Preview(objs)
	}
	b, err := raster.PNG(svg, size)
	if err != nil {
		fmt.Fprintf(errOut, "rasterize: %v\n", err)
		return 1
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		fmt.Fprintf(errOut, "write --out: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(out, "%s (%d bytes)\n", outPath, len(b))
	return 0
}

func cmdTrait(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("trait", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var (
		seed    string
		tokenID uint64
	)
	fs.StringVar(&seed, "seed", "", "Trait derivation seed")
	fs.Uint64Var(&tokenID, "token", 0, "Token id")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if seed == "" {
		fmt.Fprintln(errOut, "usage: paintctl trait --seed <text> --token <id>")
		return 2
	}
	t, err := mint.KeccakSource{Seed: []byte(seed)}.TraitFor(tokenID)
	if err != nil {
		fmt.Fprintf(errOut, "derive: %v\n", err)
		return 1
	}
	if err := writeJSON(out, model.FromTrait(t)); err != nil {
		fmt.Fprintf(errOut, "write: %v\n", err)
		return 1
	}
	return 0
}

func cmdTemplate(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: paintctl template <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: split")
		return 2
	}
	switch args[0] {
	case "split":
		return cmdTemplateSplit(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown template subcommand: %s\n", args[0])
		return 2
	}
}

// cmdTemplateSplit writes <base>.min.start.svg, <base>.min.end.svg and
// <base>.min.svg next to the input, or into --out-dir.
func cmdTemplateSplit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("template split", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var outDir string
	fs.StringVar(&outDir, "out-dir", "", "Output directory (default: the input's directory)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: paintctl template split [--out-dir <dir>] <name.full.svg>")
		return 2
	}
	path := fs.Arg(0)
	full, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(path), err)
		return 1
	}
	w, err := template.Load(full)
	if err != nil {
		fmt.Fprintf(errOut, "split: %v\n", err)
		return 1
	}
	minified := template.Minify(full)

	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	base := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".svg"), ".full")
	files := []struct {
		name string
		data []byte
	}{
		{base + ".min.start.svg", w.Start},
		{base + ".min.end.svg", w.End},
		{base + ".min.svg", minified},
	}
	for _, f := range files {
		p := filepath.Join(outDir, f.name)
		if err := os.WriteFile(p, f.data, 0o644); err != nil {
			fmt.Fprintf(errOut, "write %s: %v\n", f.name, err)
			return 1
		}
		_, _ = fmt.Fprintln(out, p)
	}
	if len(full) > 0 {
		_, _ = fmt.Fprintf(out, "reduction: %.1f%%\n", float64(len(minified))/float64(len(full))*100)
	}
	return 0
}
