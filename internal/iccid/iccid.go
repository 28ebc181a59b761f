// Package iccid normalizes and validates eSIM integrated circuit card
// identifiers.
//
// Two policies are exposed as separate functions. IsValid only checks the
// length and is the gate used by request flows, because some upstream
// providers issue identifiers that are usable but fail the Luhn check.
// IsStrictlyValid additionally requires a correct Luhn checksum.
package iccid

const (
	MinLength = 18
	MaxLength = 22
)

// Normalize strips every character that is not an ASCII decimal digit.
func Normalize(raw string) string {
	digits := make([]byte, 0, len(raw))

	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}

	return string(digits)
}

// IsValid reports whether raw has between MinLength and MaxLength digits
// after normalization. The checksum is not inspected.
func IsValid(raw string) bool {
	return validLength(Normalize(raw))
}

// IsStrictlyValid reports whether raw has a valid length and its digits pass
// the Luhn checksum.
func IsStrictlyValid(raw string) bool {
	digits := Normalize(raw)
	if !validLength(digits) {
		return false
	}

	return luhn(digits)
}

func validLength(digits string) bool {
	return len(digits) >= MinLength && len(digits) <= MaxLength
}

func luhn(digits string) bool {
	sum := 0
	double := false

	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}

		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}

		sum += d
		double = !double
	}

	return sum%10 == 0
}
