package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"xdao.co/paint/storage"
	"xdao.co/paint/storage/bundle"
	"xdao.co/paint/storage/registry"

	_ "xdao.co/paint/storage/grpcstore"
	_ "xdao.co/paint/storage/localfs"
)

func cmdBundle(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: paintctl bundle <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: export, import")
		return 2
	}
	switch args[0] {
	case "export":
		return cmdBundleExport(args[1:], out, errOut)
	case "import":
		return cmdBundleImport(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown bundle subcommand: %s\n", args[0])
		return 2
	}
}

type storeFlags struct {
	backend      string
	listBackends bool
}

func (c *storeFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&c.backend, "backend", "localfs", "Token store backend name")
	fs.BoolVar(&c.listBackends, "list-backends", false, "List supported backends and exit")
	registry.RegisterFlags(fs, registry.UsageCLI)
}

func (c *storeFlags) list(out io.Writer) {
	for _, b := range registry.List(registry.UsageCLI) {
		_, _ = fmt.Fprintf(out, "%s\t%s\n", b.Name, b.Description)
	}
}

func cmdBundleExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("bundle export", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var (
		sf      storeFlags
		outPath string
		tokens  uint64List
		noIndex bool
	)
	sf.add(fs)
	fs.StringVar(&outPath, "out", "", "Output bundle (.tar)")
	fs.Var(&tokens, "token", "Token id to export (repeatable; default all)")
	fs.BoolVar(&noIndex, "no-index", false, "Omit index.json")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if sf.listBackends {
		sf.list(out)
		return 0
	}
	if outPath == "" || fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: paintctl bundle export --backend <name> ... --out <bundle.tar> [--token <id> ...]")
		return 2
	}

	store, closeFn, err := registry.Open(sf.backend, registry.UsageCLI)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	ids := []uint64(tokens)
	if len(ids) == 0 {
		lister, ok := store.(storage.Lister)
		if !ok {
			fmt.Fprintf(errOut, "backend %s cannot list tokens; pass --token\n", sf.backend)
			return 2
		}
		if ids, err = lister.Tokens(); err != nil {
			fmt.Fprintf(errOut, "list tokens: %v\n", err)
			return 1
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(errOut, "create --out: %v\n", err)
		return 1
	}
	if err := bundle.Export(f, store, ids, bundle.ExportOptions{IncludeIndex: !noIndex}); err != nil {
		_ = f.Close()
		fmt.Fprintf(errOut, "export: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "close --out: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(out, "exported %d tokens to %s\n", len(ids), outPath)
	return 0
}

func cmdBundleImport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("bundle import", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var (
		sf            storeFlags
		ignoreUnknown bool
	)
	sf.add(fs)
	fs.BoolVar(&ignoreUnknown, "ignore-unknown", false, "Skip unknown archive entries")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if sf.listBackends {
		sf.list(out)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: paintctl bundle import --backend <name> ... <bundle.tar>")
		return 2
	}

	store, closeFn, err := registry.Open(sf.backend, registry.UsageCLI)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "open bundle: %v\n", err)
		return 1
	}
	defer f.Close()

	ids, err := bundle.ImportWithOptions(f, store, bundle.ImportOptions{IgnoreUnknown: ignoreUnknown})
	if err != nil {
		fmt.Fprintf(errOut, "import: %v\n", err)
		return 1
	}
	for _, id := range ids {
		_, _ = fmt.Fprintln(out, id)
	}
	return 0
}
