package core

import "fmt"

// BidScale is the factor applied to every revealed number before scoring.
// A revealed number n scores as n*BidScale when no modifier is applied; the
// extra digit gives the set-decimal modifier room to append a fractional
// digit without leaving integer arithmetic.
const BidScale = 10

// ScaleNumber returns the scored value of a revealed number with no modifier.
func ScaleNumber(number int64) int64 {
	return number * BidScale
}

// subtractClamp is the score assigned when a subtract modifier's value
// meets or exceeds the revealed number. The result stays one scale unit
// above zero so a clamped bid never scores below an unmodified reveal of 1.
const subtractClamp = 10

// ApplyModifier transforms a revealed number using the stored modifier
// parameters and returns the final scored value. All arithmetic is integer;
// division rounds half up.
func ApplyModifier(number int64, typ ModifierType, value int64) (int64, error) {
	if !typ.Valid() {
		return 0, fmt.Errorf("unknown modifier type %d", typ)
	}
	if value < 1 {
		return 0, fmt.Errorf("modifier value must be >= 1, got %d", value)
	}

	switch typ {
	case ModifierSetDecimal:
		return number*BidScale + value, nil
	case ModifierDivide:
		return divideRoundHalfUp(number*BidScale, value), nil
	case ModifierSubtract:
		if value >= number {
			return subtractClamp, nil
		}
		return (number - value) * BidScale, nil
	case ModifierAdd:
		return (number + value) * BidScale, nil
	case ModifierMultiply:
		return number * BidScale * value, nil
	}
	return 0, fmt.Errorf("unknown modifier type %d", typ)
}

// divideRoundHalfUp returns b/v rounded half up, for b >= 0 and v >= 1.
func divideRoundHalfUp(b, v int64) int64 {
	return (2*b + v) / (2 * v)
}
