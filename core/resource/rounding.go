package resource

import (
	"errors"

	"github.com/holiman/uint256"
)

// ErrInexactRounding is returned by RoundExact when the value is not already
// a multiple of the target precision.
var ErrInexactRounding = errors.New("resource: value is not exact at the requested precision")

// RoundingMode is the closed set of rounding rules take_advanced and pool
// math choose from.
type RoundingMode int

const (
	RoundExact RoundingMode = iota
	RoundAwayFromZero
	RoundToNearestMidpointAwayFromZero
	RoundToNearestMidpointTowardZero
	RoundToNearestMidpointToEven
	RoundToNegativeInfinity
	RoundToPositiveInfinity
	RoundToZero
)

// RoundingStrategy selects between an exact take (erroring if the amount
// isn't already a multiple of the target precision) and a rounded one.
type RoundingStrategy struct {
	Mode RoundingMode
}

func Exact() RoundingStrategy                   { return RoundingStrategy{Mode: RoundExact} }
func Rounded(mode RoundingMode) RoundingStrategy { return RoundingStrategy{Mode: mode} }

// roundQuotient decides, given mag = q*unit + r (0 <= r < unit) and the sign
// of the original signed value, whether the rounded quotient is q or q+1.
func roundQuotient(neg bool, q, r, unit *uint256.Int, strategy RoundingStrategy) (*uint256.Int, error) {
	if r.IsZero() {
		return new(uint256.Int).Set(q), nil
	}
	roundUp := func() *uint256.Int {
		return new(uint256.Int).AddUint64(q, 1)
	}
	switch strategy.Mode {
	case RoundExact:
		return nil, ErrInexactRounding
	case RoundToZero:
		return new(uint256.Int).Set(q), nil
	case RoundAwayFromZero:
		return roundUp(), nil
	case RoundToNegativeInfinity:
		if neg {
			return roundUp(), nil
		}
		return new(uint256.Int).Set(q), nil
	case RoundToPositiveInfinity:
		if !neg {
			return roundUp(), nil
		}
		return new(uint256.Int).Set(q), nil
	case RoundToNearestMidpointAwayFromZero, RoundToNearestMidpointTowardZero, RoundToNearestMidpointToEven:
		twiceR := new(uint256.Int).Lsh(r, 1)
		cmp := twiceR.Cmp(unit)
		switch {
		case cmp > 0:
			return roundUp(), nil
		case cmp < 0:
			return new(uint256.Int).Set(q), nil
		default: // exact midpoint
			switch strategy.Mode {
			case RoundToNearestMidpointAwayFromZero:
				return roundUp(), nil
			case RoundToNearestMidpointTowardZero:
				return new(uint256.Int).Set(q), nil
			default: // ToEven
				if q.IsUint64() && q.Uint64()%2 == 0 {
					return new(uint256.Int).Set(q), nil
				}
				var qMod2 uint256.Int
				qMod2.Mod(q, uint256.NewInt(2))
				if qMod2.IsZero() {
					return new(uint256.Int).Set(q), nil
				}
				return roundUp(), nil
			}
		}
	default:
		return nil, ErrInexactRounding
	}
}

// roundAtScale rounds d to `divisibility` fractional digits (0..DecimalScale)
// by zeroing the low (DecimalScale-divisibility) digits of its magnitude
// according to strategy, keeping d's overall scale at DecimalScale.
func roundAtScale(d Decimal, strategy RoundingStrategy, divisibility int) (Decimal, error) {
	if divisibility < 0 || divisibility > DecimalScale {
		return Decimal{}, ErrDivisibilityRange
	}
	if divisibility == DecimalScale {
		return d, nil
	}
	unit := mustPow10(DecimalScale - divisibility)
	var q, r uint256.Int
	q.DivMod(&d.mag, unit, &r)
	q2, err := roundQuotient(d.neg, &q, &r, unit, strategy)
	if err != nil {
		return Decimal{}, err
	}
	var mag uint256.Int
	mag.Mul(q2, unit)
	out := Decimal{neg: d.neg, mag: mag}
	if err := out.checkBounds(); err != nil {
		return Decimal{}, err
	}
	return out.normalizeZero(), nil
}

// applyRemainderRounding finishes PreciseDecimal.ToDecimal: truncated is
// already the truncated Decimal-scale quotient, remainder/unit describe the
// PreciseScale digits being dropped.
func applyRemainderRounding(truncated Decimal, remainder, unit *uint256.Int, strategy RoundingStrategy) (Decimal, error) {
	q2, err := roundQuotient(truncated.neg, &truncated.mag, remainder, unit, strategy)
	if err != nil {
		return Decimal{}, err
	}
	out := Decimal{neg: truncated.neg, mag: *q2}
	if err := out.checkBounds(); err != nil {
		return Decimal{}, err
	}
	return out.normalizeZero(), nil
}
