package domain

import "reflect"

// IgnoreTag marks a struct field as excluded from equality and hashing:
// `domain:"-"`.
const IgnoreTag = "domain"

// DeriveParts walks v's struct fields and returns its equality parts in
// the contract order: the concrete type's own non-embedded fields in
// declaration order first, then each embedded base's fields, recursively,
// most-derived first. Embedded structs declared in a different package are
// a single opaque part at their declaration position, mirroring the
// generated walk, which cannot see into foreign packages. Fields tagged
// `domain:"-"` and the embedded ValueObject base are skipped. Unexported
// fields are not reachable via reflection; types whose identity depends on
// unexported members must use the generated EqualityParts instead.
//
// A type with zero eligible members derives an empty sequence; all
// instances of such a type compare equal.
func DeriveParts(v any) []any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return deriveStructParts(rv)
}

func deriveStructParts(rv reflect.Value) []any {
	rt := rv.Type()
	parts := make([]any, 0, rt.NumField())
	var embedded []reflect.Value
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Tag.Get(IgnoreTag) == "-" {
			continue
		}
		if field.Anonymous {
			ev, ok := embeddedBase(rv.Field(i))
			if !ok {
				continue
			}
			if ev.Type().PkgPath() != rt.PkgPath() {
				// Foreign base: one opaque part, same as the generator emits.
				parts = append(parts, ev.Interface())
				continue
			}
			embedded = append(embedded, ev)
			continue
		}
		if !field.IsExported() {
			continue
		}
		parts = append(parts, rv.Field(i).Interface())
	}
	for _, ev := range embedded {
		parts = append(parts, deriveStructParts(ev)...)
	}
	return parts
}

var valueObjectType = reflect.TypeOf(ValueObject{})

// embeddedBase resolves an anonymous field to a walkable ancestor struct.
// The ValueObject root terminates the walk; nil embedded pointers
// contribute nothing.
func embeddedBase(fv reflect.Value) (reflect.Value, bool) {
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return reflect.Value{}, false
		}
		fv = fv.Elem()
	}
	if fv.Kind() != reflect.Struct || fv.Type() == valueObjectType {
		return reflect.Value{}, false
	}
	return fv, true
}
