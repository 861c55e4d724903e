package domain

import "testing"

type Money struct {
	ValueObject
	Amount   int64
	Currency string
}

func (m *Money) EqualityParts() []any { return []any{m.Amount, m.Currency} }

type Price struct {
	ValueObject
	Amount   int64
	Currency string
}

func (p *Price) EqualityParts() []any { return []any{p.Amount, p.Currency} }

type Unit struct {
	ValueObject
}

func (u *Unit) EqualityParts() []any { return []any{} }

type MoneyProxy struct {
	Money
	loaded bool `domain:"-"`
}

func TestMoneyStructuralEquality(t *testing.T) {
	usd := &Money{Amount: 10, Currency: "USD"}
	if !Equal(usd, &Money{Amount: 10, Currency: "USD"}) {
		t.Fatalf("expected equal money values")
	}
	if Equal(usd, &Money{Amount: 10, Currency: "EUR"}) {
		t.Fatalf("expected currencies to differentiate")
	}
	if Equal(usd, &Money{Amount: 11, Currency: "USD"}) {
		t.Fatalf("expected amounts to differentiate")
	}
}

func TestEqualNilAndReference(t *testing.T) {
	m := &Money{Amount: 1, Currency: "USD"}
	if Equal(nil, m) || Equal(m, nil) {
		t.Fatalf("nil never equals a value object")
	}
	if !Equal(m, m) {
		t.Fatalf("reference-identical instances must be equal")
	}
}

func TestDifferentRuntimeTypeNotEqual(t *testing.T) {
	m := &Money{Amount: 10, Currency: "USD"}
	p := &Price{Amount: 10, Currency: "USD"}
	if Equal(m, p) {
		t.Fatalf("identical parts must not bridge distinct runtime types")
	}
}

func TestHashAgreesWithEquality(t *testing.T) {
	a := &Money{Amount: 42, Currency: "JPY"}
	b := &Money{Amount: 42, Currency: "JPY"}
	if Hash(a) != Hash(b) {
		t.Fatalf("equal value objects must hash identically: %d vs %d", Hash(a), Hash(b))
	}
	c := &Money{Amount: 42, Currency: "GBP"}
	if Hash(a) == Hash(c) {
		t.Fatalf("expected differing parts to change the hash")
	}
}

func TestHashStableAcrossCalls(t *testing.T) {
	m := &Money{Amount: 7, Currency: "CHF"}
	first := Hash(m)
	for i := 0; i < 5; i++ {
		if got := Hash(m); got != first {
			t.Fatalf("hash changed across calls: %d then %d", first, got)
		}
	}
}

func TestHashMemoized(t *testing.T) {
	m := &Money{Amount: 7, Currency: "CHF"}
	first := Hash(m)
	// The object is immutable by contract; a mutation after the first read
	// must not be observable through the cached hash.
	m.Amount = 9999
	if got := Hash(m); got != first {
		t.Fatalf("expected memoized hash %d, got %d", first, got)
	}
}

func TestProxyTypeComparesAsTarget(t *testing.T) {
	bare := &Money{Amount: 5, Currency: "USD"}
	proxied := &MoneyProxy{Money: Money{Amount: 5, Currency: "USD"}, loaded: true}
	if !Equal(proxied, bare) {
		t.Fatalf("proxy wrapper must compare as its target type")
	}
}

func TestEmptyPartsAllEqual(t *testing.T) {
	if !Equal(&Unit{}, &Unit{}) {
		t.Fatalf("instances with no eligible members must compare equal")
	}
	if Hash(&Unit{}) != Hash(&Unit{}) {
		t.Fatalf("instances with no eligible members must hash identically")
	}
}

type Tagged struct {
	ValueObject
	Label *string
}

func (g *Tagged) EqualityParts() []any {
	if g.Label == nil {
		return []any{nil}
	}
	return []any{*g.Label}
}

func TestNilPartPositions(t *testing.T) {
	if !Equal(&Tagged{}, &Tagged{}) {
		t.Fatalf("nil part positions must compare equal")
	}
	label := "fragile"
	if Equal(&Tagged{Label: &label}, &Tagged{}) {
		t.Fatalf("nil part must not equal a set part")
	}
}

type Label struct {
	ValueObject
	Name *string
}

func (l *Label) EqualityParts() []any { return []any{l.Name} }

type Dimensions struct {
	W int
	H int
}

type Box struct {
	ValueObject
	Size *Dimensions
}

func (b *Box) EqualityParts() []any { return []any{b.Size} }

func TestPointerPartsHashByPointee(t *testing.T) {
	first := "fragile"
	second := "fragile"
	a := &Label{Name: &first}
	b := &Label{Name: &second}
	if !Equal(a, b) {
		t.Fatalf("parts pointing at equal values must compare equal")
	}
	if Hash(a) != Hash(b) {
		t.Fatalf("equal value objects must hash identically: %d vs %d", Hash(a), Hash(b))
	}
}

func TestStructPointerPartsHashByPointee(t *testing.T) {
	a := &Box{Size: &Dimensions{W: 3, H: 4}}
	b := &Box{Size: &Dimensions{W: 3, H: 4}}
	if !Equal(a, b) {
		t.Fatalf("parts pointing at equal structs must compare equal")
	}
	if Hash(a) != Hash(b) {
		t.Fatalf("equal value objects must hash identically: %d vs %d", Hash(a), Hash(b))
	}
	c := &Box{Size: &Dimensions{W: 3, H: 5}}
	if Equal(a, c) {
		t.Fatalf("differing pointees must break equality")
	}
}

func TestNilPointerPartsHashEqual(t *testing.T) {
	if !Equal(&Label{}, &Label{}) {
		t.Fatalf("nil pointer parts must compare equal")
	}
	if Hash(&Label{}) != Hash(&Label{}) {
		t.Fatalf("nil pointer parts must hash identically")
	}
}

type Line struct {
	ValueObject
	Qty   int64
	Price *Money
}

func (l *Line) EqualityParts() []any { return []any{l.Qty, l.Price} }

func TestNestedValueObjectParts(t *testing.T) {
	a := &Line{Qty: 2, Price: &Money{Amount: 10, Currency: "USD"}}
	b := &Line{Qty: 2, Price: &Money{Amount: 10, Currency: "USD"}}
	if !Equal(a, b) {
		t.Fatalf("nested value-object parts must use structural equality")
	}
	if Hash(a) != Hash(b) {
		t.Fatalf("nested value-object parts must hash identically")
	}
	c := &Line{Qty: 2, Price: &Money{Amount: 11, Currency: "USD"}}
	if Equal(a, c) {
		t.Fatalf("nested part difference must break equality")
	}
}
