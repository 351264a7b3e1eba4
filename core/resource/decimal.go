package resource

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// DecimalScale is the number of fractional digits a Decimal carries.
const DecimalScale = 18

// decimalMaxBits bounds Decimal's magnitude to fit a 192-bit signed value
// (sign handled separately, so the magnitude itself must fit in 191 bits).
const decimalMaxBits = 191

var decimalScaleFactor = uint256.NewInt(1)

func init() {
	for i := 0; i < DecimalScale; i++ {
		decimalScaleFactor.Mul(decimalScaleFactor, uint256.NewInt(10))
	}
}

// Decimal is a 192-bit signed fixed-point number with 18 fractional digits,
// backed by a holiman/uint256 magnitude plus an explicit sign (uint256.Int
// itself is unsigned).
type Decimal struct {
	neg bool
	mag uint256.Int
}

// DecimalZero is the additive identity.
var DecimalZero = Decimal{}

// DecimalOne is 1.000000000000000000.
var DecimalOne = Decimal{mag: *decimalScaleFactor}

// NewDecimalFromInt64 builds a Decimal representing n (no fractional part).
func NewDecimalFromInt64(n int64) Decimal {
	neg := n < 0
	u := n
	if neg {
		u = -u
	}
	var mag uint256.Int
	mag.SetUint64(uint64(u))
	mag.Mul(&mag, decimalScaleFactor)
	return Decimal{neg: neg, mag: mag}
}

// NewDecimalFromAtto builds a Decimal directly from its raw scaled magnitude
// (the integer count of 10^-18 units), e.g. for deserializing from storage.
func NewDecimalFromAtto(neg bool, atto *uint256.Int) (Decimal, error) {
	d := Decimal{neg: neg, mag: *atto}
	if err := d.checkBounds(); err != nil {
		return Decimal{}, err
	}
	return d.normalizeZero(), nil
}

func (d Decimal) checkBounds() error {
	if d.mag.BitLen() > decimalMaxBits {
		return ErrDecimalOverflow
	}
	return nil
}

func (d Decimal) normalizeZero() Decimal {
	if d.mag.IsZero() {
		d.neg = false
	}
	return d
}

// IsZero reports whether d is exactly zero.
func (d Decimal) IsZero() bool { return d.mag.IsZero() }

// IsNegative reports whether d is strictly less than zero.
func (d Decimal) IsNegative() bool { return d.neg && !d.mag.IsZero() }

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return Decimal{neg: !d.neg, mag: d.mag}.normalizeZero()
}

// Add returns d+o, erroring on overflow past the 192-bit signed range.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	if d.neg == o.neg {
		var sum uint256.Int
		if _, overflow := sum.AddOverflow(&d.mag, &o.mag); overflow {
			return Decimal{}, ErrDecimalOverflow
		}
		res := Decimal{neg: d.neg, mag: sum}
		if err := res.checkBounds(); err != nil {
			return Decimal{}, err
		}
		return res.normalizeZero(), nil
	}
	// opposite signs: subtract the smaller magnitude from the larger.
	if d.mag.Cmp(&o.mag) >= 0 {
		var diff uint256.Int
		diff.Sub(&d.mag, &o.mag)
		return Decimal{neg: d.neg, mag: diff}.normalizeZero(), nil
	}
	var diff uint256.Int
	diff.Sub(&o.mag, &d.mag)
	return Decimal{neg: o.neg, mag: diff}.normalizeZero(), nil
}

// Sub returns d-o.
func (d Decimal) Sub(o Decimal) (Decimal, error) { return d.Add(o.Neg()) }

// Mul returns d*o, rounded toward zero at the 18th fractional digit and
// erroring on overflow. Intermediate products use a 512-bit-aware divide so
// a product that would overflow a plain 256-bit multiply by the scale factor
// is still computed correctly.
func (d Decimal) Mul(o Decimal) (Decimal, error) {
	var res uint256.Int
	_, overflow := res.MulDivOverflow(&d.mag, &o.mag, decimalScaleFactor)
	if overflow {
		return Decimal{}, ErrDecimalOverflow
	}
	out := Decimal{neg: d.neg != o.neg, mag: res}
	if err := out.checkBounds(); err != nil {
		return Decimal{}, err
	}
	return out.normalizeZero(), nil
}

// Div returns d/o rounded toward zero at the 18th fractional digit.
func (d Decimal) Div(o Decimal) (Decimal, error) {
	if o.mag.IsZero() {
		return Decimal{}, ErrDivideByZero
	}
	var scaled uint256.Int
	_, overflow := scaled.MulDivOverflow(&d.mag, decimalScaleFactor, &o.mag)
	if overflow {
		return Decimal{}, ErrDecimalOverflow
	}
	out := Decimal{neg: d.neg != o.neg, mag: scaled}
	if err := out.checkBounds(); err != nil {
		return Decimal{}, err
	}
	return out.normalizeZero(), nil
}

// Cmp returns -1, 0, or 1 as d is less than, equal to, or greater than o.
func (d Decimal) Cmp(o Decimal) int {
	if d.neg != o.neg {
		if d.mag.IsZero() && o.mag.IsZero() {
			return 0
		}
		if d.neg {
			return -1
		}
		return 1
	}
	c := d.mag.Cmp(&o.mag)
	if d.neg {
		return -c
	}
	return c
}

// Min returns the lesser of d and o.
func (d Decimal) Min(o Decimal) Decimal {
	if d.Cmp(o) <= 0 {
		return d
	}
	return o
}

// Max returns the greater of d and o.
func (d Decimal) Max(o Decimal) Decimal {
	if d.Cmp(o) >= 0 {
		return d
	}
	return o
}

// Round applies strategy to d at the given divisibility (0..=18 fractional
// digits) and returns the result; see rounding.go.
func (d Decimal) Round(strategy RoundingStrategy, divisibility int) (Decimal, error) {
	return roundAtScale(d, strategy, divisibility)
}

// ToPrecise widens d into a PreciseDecimal with no loss of information.
func (d Decimal) ToPrecise() PreciseDecimal {
	var mag uint256.Int
	mag.Mul(&d.mag, preciseOverDecimalScaleFactor)
	return PreciseDecimal{neg: d.neg, mag: mag}
}

func (d Decimal) String() string {
	return formatScaled(d.neg, &d.mag, DecimalScale)
}

// MarshalJSON renders d as its canonical decimal string, not the raw
// magnitude/sign pair, so it round-trips through ParseDecimal unchanged.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDecimal parses a base-10 decimal string with up to 18 fractional
// digits, e.g. "100.5" or "-0.000000000000000001".
func ParseDecimal(s string) (Decimal, error) {
	neg, mag, err := parseScaled(s, DecimalScale)
	if err != nil {
		return Decimal{}, err
	}
	d := Decimal{neg: neg, mag: *mag}
	if err := d.checkBounds(); err != nil {
		return Decimal{}, err
	}
	return d.normalizeZero(), nil
}

func formatScaled(neg bool, mag *uint256.Int, scale int) string {
	b := mag.ToBig()
	s := b.String()
	for len(s) <= scale {
		s = "0" + s
	}
	intPart := s[:len(s)-scale]
	fracPart := s[len(s)-scale:]
	fracPart = strings.TrimRight(fracPart, "0")
	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

func parseScaled(s string, scale int) (neg bool, mag *uint256.Int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil, ErrDecimalParse
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > scale {
		return false, nil, ErrDecimalParse
	}
	for len(fracPart) < scale {
		fracPart += "0"
	}
	digits := intPart + fracPart
	if digits == "" {
		return false, nil, ErrDecimalParse
	}
	bi, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return false, nil, ErrDecimalParse
	}
	u, overflow := uint256.FromBig(bi)
	if overflow {
		return false, nil, ErrDecimalOverflow
	}
	return neg, u, nil
}
