package main

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
)

const generatedHeader = "// Code generated by injectgen. DO NOT EDIT."

// render emits the generated overloads and gofmts the result.
func render(pkgName string, methods []methodModel) ([]byte, error) {
	imports := map[string]bool{
		"context":               true,
		"domainkit/pkg/resolve": true,
	}
	for _, m := range methods {
		for _, path := range m.Imports {
			imports[path] = true
		}
	}
	paths := make([]string, 0, len(imports))
	for path := range imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n\nimport (\n", generatedHeader, pkgName)
	for _, path := range paths {
		fmt.Fprintf(&buf, "\t%q\n", path)
	}
	buf.WriteString(")\n")

	for _, m := range methods {
		writeMethod(&buf, m)
	}

	code, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return code, nil
}

func writeMethod(buf *bytes.Buffer, m methodModel) {
	fmt.Fprintf(buf, "\n// %sCtx resolves %s from the ambient context and calls %s.\n",
		m.Name, strings.Join(m.Injected, ", "), m.Name)

	sig := make([]string, 0, len(m.Kept)+1)
	sig = append(sig, "ctx context.Context")
	args := make([]string, 0, len(m.Kept)+len(m.Injected))
	for _, p := range m.Kept {
		sig = append(sig, p.Name+" "+p.Type)
		args = append(args, p.Name)
	}
	for _, svc := range m.Injected {
		args = append(args, fmt.Sprintf("resolve.Service[%s](ctx)", svc))
	}

	fmt.Fprintf(buf, "func (%s %s) %sCtx(%s) %s {\n", m.RecvName, m.RecvType, m.Name, strings.Join(sig, ", "), m.Results)
	call := fmt.Sprintf("%s.%s(%s)", m.RecvName, m.Name, strings.Join(args, ", "))
	if m.Results == "" {
		fmt.Fprintf(buf, "\t%s\n}\n", call)
		return
	}
	fmt.Fprintf(buf, "\treturn %s\n}\n", call)
}
