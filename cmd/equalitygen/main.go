// Program equalitygen derives EqualityParts methods for value-object
// structs. It scans a package for struct types that embed
// domain.ValueObject (directly or through local ancestor structs) and
// emits one override per type yielding the eligible members in the
// contract order: the concrete type's own fields in declaration order
// first, then each embedded base's fields, recursively, most-derived
// first. Fields tagged `domain:"-"` are excluded.
//
// Typical use:
//
//	//go:generate go run domainkit/cmd/equalitygen -out money_equality_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

var exitFunc = os.Exit

func main() {
	pattern := flag.String("pkg", ".", "package pattern to scan")
	outPath := flag.String("out", "equality_gen.go", "output file, relative to the scanned package directory")
	flag.Parse()

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax}
	pkgs, err := packages.Load(cfg, *pattern)
	if err != nil {
		exitErr(fmt.Errorf("load packages: %w", err))
		return
	}
	if len(pkgs) == 0 || packages.PrintErrors(pkgs) > 0 {
		exitErr(fmt.Errorf("no loadable package for pattern %q", *pattern))
		return
	}
	pkg := pkgs[0]
	if len(pkg.GoFiles) == 0 {
		exitErr(fmt.Errorf("package %s has no Go files", pkg.Name))
		return
	}

	models := buildModels(pkg.Syntax)
	if len(models) == 0 {
		exitErr(fmt.Errorf("package %s declares no value-object structs", pkg.Name))
		return
	}
	code, err := render(pkg.Name, models)
	if err != nil {
		exitErr(err)
		return
	}

	target := filepath.Join(filepath.Dir(pkg.GoFiles[0]), *outPath)
	if err := os.WriteFile(target, code, 0o600); err != nil {
		exitErr(fmt.Errorf("write %s: %w", target, err))
		return
	}
	fmt.Printf("wrote %s (%d types)\n", target, len(models))
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, "equalitygen:", err)
	exitFunc(1)
}
