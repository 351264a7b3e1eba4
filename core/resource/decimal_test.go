package resource

import "testing"

func mustDecimal(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := ParseDecimal(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestDecimalParseAndString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0", "0"},
		{"100", "100"},
		{"100.5", "100.5"},
		{"-0.000000000000000001", "-0.000000000000000001"},
		{"0.000", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			d := mustDecimal(t, tc.in)
			if got := d.String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecimalAddSub(t *testing.T) {
	a := mustDecimal(t, "100.5")
	b := mustDecimal(t, "0.5")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if sum.String() != "101" {
		t.Fatalf("got %q, want 101", sum.String())
	}
	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if diff.String() != "100" {
		t.Fatalf("got %q, want 100", diff.String())
	}
}

func TestDecimalMulDiv(t *testing.T) {
	a := mustDecimal(t, "10")
	b := mustDecimal(t, "0.5")
	prod, err := a.Mul(b)
	if err != nil {
		t.Fatalf("mul: %v", err)
	}
	if prod.String() != "5" {
		t.Fatalf("got %q, want 5", prod.String())
	}
	quot, err := a.Div(b)
	if err != nil {
		t.Fatalf("div: %v", err)
	}
	if quot.String() != "20" {
		t.Fatalf("got %q, want 20", quot.String())
	}
}

func TestDecimalDivByZero(t *testing.T) {
	a := mustDecimal(t, "10")
	if _, err := a.Div(DecimalZero); err != ErrDivideByZero {
		t.Fatalf("got %v, want ErrDivideByZero", err)
	}
}

func TestDecimalCmp(t *testing.T) {
	a := mustDecimal(t, "1")
	b := mustDecimal(t, "-1")
	if a.Cmp(b) <= 0 {
		t.Fatalf("1 should be > -1")
	}
	if b.Cmp(a) >= 0 {
		t.Fatalf("-1 should be < 1")
	}
	if a.Cmp(a) != 0 {
		t.Fatalf("a should equal a")
	}
}

func TestDecimalRoundDivisibility(t *testing.T) {
	d := mustDecimal(t, "1.23456")
	got, err := d.Round(Rounded(RoundToZero), 2)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if got.String() != "1.23" {
		t.Fatalf("got %q, want 1.23", got.String())
	}
	gotUp, err := d.Round(Rounded(RoundAwayFromZero), 2)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if gotUp.String() != "1.24" {
		t.Fatalf("got %q, want 1.24", gotUp.String())
	}
}

func TestDecimalRoundExactRejectsInexact(t *testing.T) {
	d := mustDecimal(t, "1.005")
	if _, err := d.Round(Exact(), 2); err != ErrInexactRounding {
		t.Fatalf("got %v, want ErrInexactRounding", err)
	}
}

func TestPreciseDecimalSqrt(t *testing.T) {
	d, err := ParsePreciseDecimal("100")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := d.Sqrt()
	if err != nil {
		t.Fatalf("sqrt: %v", err)
	}
	asDecimal, err := root.ToDecimal(Rounded(RoundToZero))
	if err != nil {
		t.Fatalf("to decimal: %v", err)
	}
	if asDecimal.String() != "10" {
		t.Fatalf("sqrt(100) got %q, want 10", asDecimal.String())
	}
}

func TestPreciseDecimalNthRoot(t *testing.T) {
	d, err := ParsePreciseDecimal("1000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := d.NthRoot(3)
	if err != nil {
		t.Fatalf("nthroot: %v", err)
	}
	asDecimal, err := root.ToDecimal(Rounded(RoundToZero))
	if err != nil {
		t.Fatalf("to decimal: %v", err)
	}
	if asDecimal.String() != "10" {
		t.Fatalf("cbrt(1000) got %q, want 10", asDecimal.String())
	}
}

func TestDecimalToPreciseRoundTrip(t *testing.T) {
	d := mustDecimal(t, "123.456789012345678")
	p := d.ToPrecise()
	back, err := p.ToDecimal(Exact())
	if err != nil {
		t.Fatalf("to decimal: %v", err)
	}
	if back.String() != d.String() {
		t.Fatalf("got %q, want %q", back.String(), d.String())
	}
}
