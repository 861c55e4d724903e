package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"testing"
)

func parseFixture(t *testing.T, src string) []*ast.File {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return []*ast.File{file}
}

const moneyFixture = `package fixtures

import "domainkit/pkg/domain"

type Money struct {
	domain.ValueObject
	Amount   int64
	Currency string
}
`

func TestBuildModelsSimpleValueObject(t *testing.T) {
	models := buildModels(parseFixture(t, moneyFixture))
	if len(models) != 1 {
		t.Fatalf("expected one model, got %d", len(models))
	}
	if models[0].Name != "Money" {
		t.Fatalf("got %s", models[0].Name)
	}
	want := []string{"Amount", "Currency"}
	if !reflect.DeepEqual(models[0].Parts, want) {
		t.Fatalf("parts mismatch: got %v want %v", models[0].Parts, want)
	}
}

func TestBuildModelsSkipsPlainStructs(t *testing.T) {
	src := `package fixtures

type Plain struct {
	A int
}
`
	if models := buildModels(parseFixture(t, src)); len(models) != 0 {
		t.Fatalf("expected no models, got %v", models)
	}
}

func TestBuildModelsEmbeddingChainOrder(t *testing.T) {
	src := `package fixtures

import "domainkit/pkg/domain"

type Address struct {
	domain.ValueObject
	Street string
	City   string
}

type GeoAddress struct {
	Address
	Lat float64 ` + "`domain:\"-\"`" + `
	Lng float64
}
`
	models := buildModels(parseFixture(t, src))
	if len(models) != 2 {
		t.Fatalf("expected two models, got %d", len(models))
	}
	// Sorted by type name: Address then GeoAddress.
	if !reflect.DeepEqual(models[0].Parts, []string{"Street", "City"}) {
		t.Fatalf("Address parts: %v", models[0].Parts)
	}
	// Most-derived first: own members before the embedded base's, and the
	// ignored member excluded.
	want := []string{"Lng", "Address.Street", "Address.City"}
	if !reflect.DeepEqual(models[1].Parts, want) {
		t.Fatalf("GeoAddress parts: got %v want %v", models[1].Parts, want)
	}
}

func TestBuildModelsUnexportedFieldsParticipate(t *testing.T) {
	src := `package fixtures

import "domainkit/pkg/domain"

type token struct {
	domain.ValueObject
	secret string
	Label  string
}
`
	models := buildModels(parseFixture(t, src))
	if len(models) != 1 {
		t.Fatalf("expected one model, got %d", len(models))
	}
	want := []string{"secret", "Label"}
	if !reflect.DeepEqual(models[0].Parts, want) {
		t.Fatalf("got %v want %v", models[0].Parts, want)
	}
}

func TestBuildModelsZeroEligibleMembers(t *testing.T) {
	src := `package fixtures

import "domainkit/pkg/domain"

type Unit struct {
	domain.ValueObject
}
`
	models := buildModels(parseFixture(t, src))
	if len(models) != 1 {
		t.Fatalf("expected one model, got %d", len(models))
	}
	if len(models[0].Parts) != 0 {
		t.Fatalf("expected no parts, got %v", models[0].Parts)
	}
}

func TestBuildModelsForeignEmbeddedBaseIsOnePart(t *testing.T) {
	src := `package fixtures

import (
	"domainkit/pkg/domain"
	"example.com/ext"
)

type Shape struct {
	domain.ValueObject
	ext.Origin
	Name string
}
`
	models := buildModels(parseFixture(t, src))
	if len(models) != 1 {
		t.Fatalf("expected one model, got %d", len(models))
	}
	want := []string{"Origin", "Name"}
	if !reflect.DeepEqual(models[0].Parts, want) {
		t.Fatalf("got %v want %v", models[0].Parts, want)
	}
}

func TestRenderGolden(t *testing.T) {
	code, err := render("fixtures", []typeModel{{Name: "Money", Parts: []string{"Amount", "Currency"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `// Code generated by equalitygen. DO NOT EDIT.

package fixtures

// EqualityParts returns the ordered data members defining Money's identity.
func (m *Money) EqualityParts() []any {
	return []any{
		m.Amount,
		m.Currency,
	}
}
`
	if string(code) != want {
		t.Fatalf("golden mismatch:\n--- got ---\n%s\n--- want ---\n%s", code, want)
	}
}

func TestRenderEmptyParts(t *testing.T) {
	code, err := render("fixtures", []typeModel{{Name: "Unit"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `// Code generated by equalitygen. DO NOT EDIT.

package fixtures

// EqualityParts returns the ordered data members defining Unit's identity.
func (u *Unit) EqualityParts() []any {
	return []any{}
}
`
	if string(code) != want {
		t.Fatalf("golden mismatch:\n--- got ---\n%s\n--- want ---\n%s", code, want)
	}
}
