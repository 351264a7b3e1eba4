package resource

import (
	"math/big"

	"github.com/holiman/uint256"
)

// PreciseScale is PreciseDecimal's fractional-digit count — wider than
// Decimal's 18 so pool math can multiply/divide Decimal quantities without
// the lossy intermediate rounding a same-width product would force.
const PreciseScale = 36

// preciseMaxBits bounds PreciseDecimal to a signed value that still fits a
// uint256 magnitude with room for the sign.
const preciseMaxBits = 255

var preciseScaleFactor = mustPow10(PreciseScale)
var preciseOverDecimalScaleFactor = mustPow10(PreciseScale - DecimalScale)
var preciseHalfScaleFactor = mustPow10(PreciseScale / 2)

func mustPow10(n int) *uint256.Int {
	u := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := 0; i < n; i++ {
		u.Mul(u, ten)
	}
	return u
}

// PreciseDecimal is an intermediate-precision fixed-point type used for pool
// ratio/geometric-mean math; callers round back to Decimal at the end via
// ToDecimal.
type PreciseDecimal struct {
	neg bool
	mag uint256.Int
}

var PreciseDecimalZero = PreciseDecimal{}

func (d PreciseDecimal) checkBounds() error {
	if d.mag.BitLen() > preciseMaxBits {
		return ErrDecimalOverflow
	}
	return nil
}

func (d PreciseDecimal) normalizeZero() PreciseDecimal {
	if d.mag.IsZero() {
		d.neg = false
	}
	return d
}

// IsZero reports whether d is exactly zero.
func (d PreciseDecimal) IsZero() bool { return d.mag.IsZero() }

// IsNegative reports whether d is strictly less than zero.
func (d PreciseDecimal) IsNegative() bool { return d.neg && !d.mag.IsZero() }

func (d PreciseDecimal) Add(o PreciseDecimal) (PreciseDecimal, error) {
	if d.neg == o.neg {
		var sum uint256.Int
		if _, overflow := sum.AddOverflow(&d.mag, &o.mag); overflow {
			return PreciseDecimal{}, ErrDecimalOverflow
		}
		res := PreciseDecimal{neg: d.neg, mag: sum}
		if err := res.checkBounds(); err != nil {
			return PreciseDecimal{}, err
		}
		return res.normalizeZero(), nil
	}
	if d.mag.Cmp(&o.mag) >= 0 {
		var diff uint256.Int
		diff.Sub(&d.mag, &o.mag)
		return PreciseDecimal{neg: d.neg, mag: diff}.normalizeZero(), nil
	}
	var diff uint256.Int
	diff.Sub(&o.mag, &d.mag)
	return PreciseDecimal{neg: o.neg, mag: diff}.normalizeZero(), nil
}

func (d PreciseDecimal) Sub(o PreciseDecimal) (PreciseDecimal, error) {
	return d.Add(PreciseDecimal{neg: !o.neg, mag: o.mag}.normalizeZero())
}

func (d PreciseDecimal) Mul(o PreciseDecimal) (PreciseDecimal, error) {
	var res uint256.Int
	_, overflow := res.MulDivOverflow(&d.mag, &o.mag, preciseScaleFactor)
	if overflow {
		return PreciseDecimal{}, ErrDecimalOverflow
	}
	out := PreciseDecimal{neg: d.neg != o.neg, mag: res}
	if err := out.checkBounds(); err != nil {
		return PreciseDecimal{}, err
	}
	return out.normalizeZero(), nil
}

func (d PreciseDecimal) Div(o PreciseDecimal) (PreciseDecimal, error) {
	if o.mag.IsZero() {
		return PreciseDecimal{}, ErrDivideByZero
	}
	var scaled uint256.Int
	_, overflow := scaled.MulDivOverflow(&d.mag, preciseScaleFactor, &o.mag)
	if overflow {
		return PreciseDecimal{}, ErrDecimalOverflow
	}
	out := PreciseDecimal{neg: d.neg != o.neg, mag: scaled}
	if err := out.checkBounds(); err != nil {
		return PreciseDecimal{}, err
	}
	return out.normalizeZero(), nil
}

func (d PreciseDecimal) Cmp(o PreciseDecimal) int {
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

func (d PreciseDecimal) Min(o PreciseDecimal) PreciseDecimal {
	if d.Cmp(o) <= 0 {
		return d
	}
	return o
}

// Sqrt returns sqrt(d) truncated to PreciseScale/2 (18) fractional digits,
// expressed at PreciseScale. d must be non-negative.
func (d PreciseDecimal) Sqrt() (PreciseDecimal, error) {
	if d.neg {
		return PreciseDecimal{}, ErrNegativeAmount
	}
	var root uint256.Int
	root.Sqrt(&d.mag)
	root.Mul(&root, preciseHalfScaleFactor)
	return PreciseDecimal{mag: root}, nil
}

// NthRoot returns floor(d^(1/n)) re-expressed at PreciseScale, for n>=1. Used
// for the multi-resource pool's geometric-mean new-pool mint. Root-finding
// itself runs on an arbitrary-precision integer (Newton's method) rather
// than fixed-width uint256 math, since an n-th root has no closed-form
// fixed-width algorithm the way +-*/ and sqrt do.
func (d PreciseDecimal) NthRoot(n int) (PreciseDecimal, error) {
	if d.neg {
		return PreciseDecimal{}, ErrNegativeAmount
	}
	if n <= 0 {
		return PreciseDecimal{}, ErrDecimalParse
	}
	if n == 1 {
		return d, nil
	}
	m := d.mag.ToBig()
	scaled := new(big.Int).Mul(m, bigPow10(PreciseScale*(n-1)))
	root := integerNthRoot(scaled, n)
	u, overflow := uint256.FromBig(root)
	if overflow {
		return PreciseDecimal{}, ErrDecimalOverflow
	}
	out := PreciseDecimal{mag: *u}
	if err := out.checkBounds(); err != nil {
		return PreciseDecimal{}, err
	}
	return out, nil
}

func bigPow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// integerNthRoot computes floor(x^(1/n)) for x >= 0, n >= 2, via Newton's
// method over arbitrary-precision integers.
func integerNthRoot(x *big.Int, n int) *big.Int {
	if x.Sign() == 0 {
		return big.NewInt(0)
	}
	bign := big.NewInt(int64(n))
	nMinus1 := big.NewInt(int64(n - 1))
	// Initial guess: 2^(floor(bitlen(x)/n)+1) is always >= the true root.
	guess := new(big.Int).Lsh(big.NewInt(1), uint(x.BitLen()/n+1))
	for {
		// next = ((n-1)*guess + x/guess^(n-1)) / n
		powN1 := new(big.Int).Exp(guess, nMinus1, nil)
		if powN1.Sign() == 0 {
			powN1 = big.NewInt(1)
		}
		term := new(big.Int).Div(x, powN1)
		next := new(big.Int).Mul(guess, nMinus1)
		next.Add(next, term)
		next.Div(next, bign)
		if next.Cmp(guess) >= 0 {
			break
		}
		guess = next
	}
	// guess may be off by one due to integer truncation; correct downward.
	for {
		p := new(big.Int).Exp(guess, big.NewInt(int64(n)), nil)
		if p.Cmp(x) <= 0 {
			break
		}
		guess.Sub(guess, big.NewInt(1))
	}
	return guess
}

// ToDecimal rounds d back down to Decimal's 18-digit scale using strategy.
func (d PreciseDecimal) ToDecimal(strategy RoundingStrategy) (Decimal, error) {
	wide := Decimal{neg: d.neg}
	var narrowed uint256.Int
	narrowed.Div(&d.mag, preciseOverDecimalScaleFactor)
	wide.mag = narrowed
	// Apply rounding based on the truncated remainder.
	var remainder uint256.Int
	remainder.Mod(&d.mag, preciseOverDecimalScaleFactor)
	return applyRemainderRounding(wide, &remainder, preciseOverDecimalScaleFactor, strategy)
}

func (d PreciseDecimal) String() string {
	return formatScaled(d.neg, &d.mag, PreciseScale)
}

// ParsePreciseDecimal parses a base-10 string with up to PreciseScale
// fractional digits.
func ParsePreciseDecimal(s string) (PreciseDecimal, error) {
	neg, mag, err := parseScaled(s, PreciseScale)
	if err != nil {
		return PreciseDecimal{}, err
	}
	d := PreciseDecimal{neg: neg, mag: *mag}
	if err := d.checkBounds(); err != nil {
		return PreciseDecimal{}, err
	}
	return d.normalizeZero(), nil
}
