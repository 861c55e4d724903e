package main

import (
	"go/ast"
	"reflect"
	"sort"
	"strconv"
)

// typeModel captures one value-object struct and the selector paths of its
// equality parts, relative to the receiver, in derivation order.
type typeModel struct {
	Name  string
	Parts []string
}

const valueObjectName = "ValueObject"

// buildModels scans the package syntax for structs that transitively embed
// domain.ValueObject and derives their part selectors.
func buildModels(files []*ast.File) []typeModel {
	structs := indexStructs(files)

	names := make([]string, 0, len(structs))
	for name := range structs {
		names = append(names, name)
	}
	// Deterministic output regardless of declaration placement.
	sort.Strings(names)

	var models []typeModel
	for _, name := range names {
		st := structs[name]
		if !embedsValueObject(st, structs, map[string]bool{name: true}) {
			continue
		}
		models = append(models, typeModel{
			Name:  name,
			Parts: deriveSelectors(st, structs, "", map[string]bool{name: true}),
		})
	}
	return models
}

func indexStructs(files []*ast.File) map[string]*ast.StructType {
	structs := make(map[string]*ast.StructType)
	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if st, ok := ts.Type.(*ast.StructType); ok {
					structs[ts.Name.Name] = st
				}
			}
		}
	}
	return structs
}

// embedsValueObject reports whether st embeds the value-object root,
// directly or through a local ancestor. seen guards embedding cycles.
func embedsValueObject(st *ast.StructType, structs map[string]*ast.StructType, seen map[string]bool) bool {
	for _, field := range st.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		name, local := embeddedTypeName(field.Type)
		if name == "" {
			continue
		}
		if name == valueObjectName {
			return true
		}
		if !local || seen[name] {
			continue
		}
		if base, ok := structs[name]; ok {
			seen[name] = true
			if embedsValueObject(base, structs, seen) {
				return true
			}
		}
	}
	return false
}

// deriveSelectors returns the part selector paths for st in the contract
// order: own named fields first, then embedded bases most-derived first.
func deriveSelectors(st *ast.StructType, structs map[string]*ast.StructType, prefix string, seen map[string]bool) []string {
	var parts []string
	var bases []string
	for _, field := range st.Fields.List {
		if ignored(field) {
			continue
		}
		if len(field.Names) == 0 {
			name, local := embeddedTypeName(field.Type)
			if name == "" || name == valueObjectName {
				continue
			}
			if !local {
				// Opaque foreign base: yield the embedded value itself and
				// let its own equality semantics apply.
				parts = append(parts, prefix+name)
				continue
			}
			bases = append(bases, name)
			continue
		}
		for _, ident := range field.Names {
			if ident.Name == "_" {
				continue
			}
			parts = append(parts, prefix+ident.Name)
		}
	}
	for _, base := range bases {
		if seen[base] {
			continue
		}
		bst, ok := structs[base]
		if !ok {
			parts = append(parts, prefix+base)
			continue
		}
		seen[base] = true
		parts = append(parts, deriveSelectors(bst, structs, prefix+base+".", seen)...)
	}
	return parts
}

// embeddedTypeName resolves an anonymous field's type expression to a type
// name; local reports whether the type belongs to the scanned package.
func embeddedTypeName(expr ast.Expr) (name string, local bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, true
	case *ast.StarExpr:
		return embeddedTypeName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name, false
	case *ast.IndexExpr:
		return embeddedTypeName(t.X)
	case *ast.IndexListExpr:
		return embeddedTypeName(t.X)
	}
	return "", false
}

func ignored(field *ast.Field) bool {
	if field.Tag == nil {
		return false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return false
	}
	return reflect.StructTag(raw).Get("domain") == "-"
}

