package main

import (
	"bytes"
	"fmt"
	"go/format"
	"unicode"
)

const generatedHeader = "// Code generated by equalitygen. DO NOT EDIT."

// render emits the generated source for the given models and gofmts it.
func render(pkgName string, models []typeModel) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n", generatedHeader, pkgName)
	for _, m := range models {
		recv := receiverName(m.Name)
		fmt.Fprintf(&buf, "\n// EqualityParts returns the ordered data members defining %s's identity.\n", m.Name)
		fmt.Fprintf(&buf, "func (%s *%s) EqualityParts() []any {\n", recv, m.Name)
		if len(m.Parts) == 0 {
			buf.WriteString("\treturn []any{}\n}\n")
			continue
		}
		buf.WriteString("\treturn []any{\n")
		for _, part := range m.Parts {
			fmt.Fprintf(&buf, "\t\t%s.%s,\n", recv, part)
		}
		buf.WriteString("\t}\n}\n")
	}
	code, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return code, nil
}

func receiverName(typeName string) string {
	r := []rune(typeName)
	if len(r) == 0 {
		return "v"
	}
	return string(unicode.ToLower(r[0]))
}
