// Program injectgen derives service-injecting overloads for annotated
// methods. A method carrying a directive comment of the form
//
//	//domainkit:inject RateProvider TaxPolicy
//
// must list the named service types as its trailing parameters. For each
// such method the generator emits a <Name>Ctx overload that takes a
// context.Context plus the remaining parameters and resolves every service
// argument from the ambient slot via resolve.Service before delegating.
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
	outPath := flag.String("out", "inject_gen.go", "output file, relative to the scanned package directory")
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

	methods, err := scanMethods(pkg.Syntax)
	if err != nil {
		exitErr(err)
		return
	}
	if len(methods) == 0 {
		exitErr(fmt.Errorf("package %s has no //domainkit:inject directives", pkg.Name))
		return
	}
	code, err := render(pkg.Name, methods)
	if err != nil {
		exitErr(err)
		return
	}

	target := filepath.Join(filepath.Dir(pkg.GoFiles[0]), *outPath)
	if err := os.WriteFile(target, code, 0o600); err != nil {
		exitErr(fmt.Errorf("write %s: %w", target, err))
		return
	}
	fmt.Printf("wrote %s (%d methods)\n", target, len(methods))
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, "injectgen:", err)
	exitFunc(1)
}
