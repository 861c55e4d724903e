package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"strconv"
	"strings"
)

const directive = "//domainkit:inject"

// paramModel is one parameter kept on the generated overload.
type paramModel struct {
	Name string
	Type string
}

// methodModel captures everything needed to render one overload.
type methodModel struct {
	RecvName string
	RecvType string
	Name     string
	Kept     []paramModel
	Injected []string
	Results  string
	Imports  []string
}

// scanMethods collects annotated methods across the package files in
// declaration order.
func scanMethods(files []*ast.File) ([]methodModel, error) {
	var methods []methodModel
	for _, file := range files {
		imports := fileImports(file)
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 {
				continue
			}
			services, ok := directiveServices(fd.Doc)
			if !ok {
				continue
			}
			m, err := buildMethod(fd, services, imports)
			if err != nil {
				return nil, err
			}
			methods = append(methods, m)
		}
	}
	return methods, nil
}

// directiveServices extracts the service type names from a doc comment
// carrying the inject directive.
func directiveServices(doc *ast.CommentGroup) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directive) {
			continue
		}
		rest := strings.TrimPrefix(c.Text, directive)
		return strings.Fields(rest), true
	}
	return nil, false
}

func buildMethod(fd *ast.FuncDecl, services []string, imports map[string]string) (methodModel, error) {
	if len(services) == 0 {
		return methodModel{}, fmt.Errorf("method %s: directive names no service types", fd.Name.Name)
	}

	recv := fd.Recv.List[0]
	recvName := "v"
	if len(recv.Names) == 1 && recv.Names[0].Name != "_" {
		recvName = recv.Names[0].Name
	}

	var params []paramModel
	for _, field := range fd.Type.Params.List {
		typeText := exprText(field.Type)
		if len(field.Names) == 0 {
			params = append(params, paramModel{Name: "", Type: typeText})
			continue
		}
		for _, ident := range field.Names {
			params = append(params, paramModel{Name: ident.Name, Type: typeText})
		}
	}
	if len(params) < len(services) {
		return methodModel{}, fmt.Errorf("method %s: directive names %d services but the method has %d parameters", fd.Name.Name, len(services), len(params))
	}
	kept := params[:len(params)-len(services)]
	trailing := params[len(params)-len(services):]
	for i, p := range trailing {
		if p.Type != services[i] {
			return methodModel{}, fmt.Errorf("method %s: trailing parameter %d has type %s, directive expects %s", fd.Name.Name, i, p.Type, services[i])
		}
	}
	for i, p := range kept {
		if p.Name == "" {
			return methodModel{}, fmt.Errorf("method %s: kept parameter %d must be named", fd.Name.Name, i)
		}
	}

	m := methodModel{
		RecvName: recvName,
		RecvType: exprText(recv.Type),
		Name:     fd.Name.Name,
		Kept:     kept,
		Injected: services,
		Results:  resultsText(fd.Type.Results),
	}
	m.Imports = neededImports(fd, imports)
	return m, nil
}

func resultsText(results *ast.FieldList) string {
	if results == nil || len(results.List) == 0 {
		return ""
	}
	var parts []string
	for _, field := range results.List {
		text := exprText(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			parts = append(parts, text)
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func exprText(expr ast.Expr) string {
	var buf bytes.Buffer
	_ = printer.Fprint(&buf, token.NewFileSet(), expr)
	return buf.String()
}

// fileImports maps local package qualifiers to import paths for one file.
func fileImports(file *ast.File) map[string]string {
	out := make(map[string]string)
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if spec.Name != nil {
			name = spec.Name.Name
		}
		out[name] = path
	}
	return out
}

// neededImports returns the import paths for package qualifiers appearing
// in the method's signature, so the generated file can re-import them.
func neededImports(fd *ast.FuncDecl, imports map[string]string) []string {
	seen := make(map[string]bool)
	var paths []string
	ast.Inspect(fd.Type, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		if path, ok := imports[ident.Name]; ok && !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
		return true
	})
	return paths
}
