package main

import (
	"flag"
	"fmt"
	"io"

	"xdao.co/paint/art"
	"xdao.co/paint/model"
)

func cmdEncode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: paintctl encode [<objects.json>|-]")
		return 2
	}
	var objs []model.Object
	if err := readJSON(fs.Arg(0), &objs); err != nil {
		fmt.Fprintf(errOut, "read objects: %v\n", err)
		return 1
	}
	packed := make([]model.PackedObject, 0, len(objs))
	for i, o := range objs {
		ao, err := o.ToObject()
		if err != nil {
			fmt.Fprintf(errOut, "object %d: %s\n", i, artError(err))
			return 1
		}
		p, err := art.Encode(ao)
		if err != nil {
			fmt.Fprintf(errOut, "object %d: %s\n", i, artError(err))
			return 1
		}
		packed = append(packed, model.FromPacked(p))
	}
	if err := writeJSON(out, packed); err != nil {
		fmt.Fprintf(errOut, "write: %v\n", err)
		return 1
	}
	return 0
}

func cmdDecode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: paintctl decode [<packed.json>|-]")
		return 2
	}
	ps, err := readPacked(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read packed: %v\n", err)
		return 1
	}
	objs, err := art.DecodeAll(ps)
	if err != nil {
		fmt.Fprintf(errOut, "decode: %s\n", artError(err))
		return 1
	}
	if err := writeJSON(out, model.FromObjects(objs)); err != nil {
		fmt.Fprintf(errOut, "write: %v\n", err)
		return 1
	}
	return 0
}

func cmdValidate(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var traitPath string
	fs.StringVar(&traitPath, "trait", "", "Trait JSON file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if traitPath == "" || fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: paintctl validate --trait <trait.json> [<packed.json>|-]")
		return 2
	}
	t, err := readTrait(traitPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --trait: %s\n", artError(err))
		return 1
	}
	ps, err := readPacked(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read packed: %v\n", err)
		return 1
	}
	resp := model.Lint(ps, t)
	if err := writeJSON(out, resp); err != nil {
		fmt.Fprintf(errOut, "write: %v\n", err)
		return 1
	}
	if !resp.Valid {
		for _, v := range resp.Violations {
			fmt.Fprintf(errOut, "object %d: %s: %s\n", v.Index, v.Rule, v.Message)
		}
		return 1
	}
	return 0
}

// artError prefixes err with its rule id when it carries one.
func artError(err error) string {
	if rule := art.RuleID(err); rule != "" {
		return rule + ": " + err.Error()
	}
	return err.Error()
}

func readPacked(path string) ([]art.Packed, error) {
	var req []model.PackedObject
	if err := readJSON(path, &req); err != nil {
		return nil, err
	}
	return model.ArtRequest{Objects: req}.Packed()
}

func readTrait(path string) (art.Trait, error) {
	var t model.Trait
	if err := readJSON(path, &t); err != nil {
		return art.Trait{}, err
	}
	return t.ToTrait()
}

// readObjects reads decoded objects and checks they are encodable.
func readObjects(path string) ([]art.Object, error) {
	var in []model.Object
	if err := readJSON(path, &in); err != nil {
		return nil, err
	}
	objs := make([]art.Object, 0, len(in))
	for i, o := range in {
		ao, err := o.ToObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if _, err := art.Encode(ao); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objs = append(objs, ao)
	}
	return objs, nil
}
