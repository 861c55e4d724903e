package domain

import (
	"reflect"
	"strings"
)

// Proxied is implemented by persistence-layer wrappers (lazy-loading
// proxies and the like) that stand in for a domain object. Unproxy returns
// the wrapped object.
type Proxied interface {
	Unproxy() any
}

// UnproxiedType returns the declared runtime type beneath any proxy
// wrappers around v, with pointer indirection stripped. Two unwrapping
// conventions are recognised: values implementing Proxied, and types named
// with a "Proxy" suffix whose first embedded field is the wrapped type.
func UnproxiedType(v any) reflect.Type {
	return unproxiedType(reflect.TypeOf(unproxyValue(v)))
}

func unproxyValue(v any) any {
	for {
		p, ok := v.(Proxied)
		if !ok {
			return v
		}
		v = p.Unproxy()
	}
}

func unproxiedType(rt reflect.Type) reflect.Type {
	for rt != nil {
		for rt.Kind() == reflect.Pointer {
			rt = rt.Elem()
		}
		if rt.Kind() != reflect.Struct || !strings.HasSuffix(rt.Name(), "Proxy") || rt.NumField() == 0 {
			return rt
		}
		first := rt.Field(0)
		if !first.Anonymous {
			return rt
		}
		rt = first.Type
	}
	return rt
}
