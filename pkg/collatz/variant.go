package collatz

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant selects the reduction rule a Graph is built with.
type Variant int

// Supported variants. The numeric codes are stable.
const (
	Full    Variant = 0 // n/2 or 3n+1
	Short   Variant = 1 // n/2 or (3n+1)/2
	Odd     Variant = 2 // odd values only, dispatch on n mod 8
	Compact Variant = 3 // values coprime to 6, dispatch on n mod 96
)

var variantNames = [...]string{
	Full:    "full",
	Short:   "short",
	Odd:     "odd",
	Compact: "compact",
}

// Variants returns every supported variant in code order.
func Variants() []Variant {
	return []Variant{Full, Short, Odd, Compact}
}

// String returns the lower-case name of the variant.
func (v Variant) String() string {
	if !v.Valid() {
		return "variant(" + strconv.Itoa(int(v)) + ")"
	}
	return variantNames[v]
}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	return v >= Full && v <= Compact
}

// InDomain reports whether n is a valid graph member under v.
// Zero is outside every domain.
func (v Variant) InDomain(n uint64) bool {
	r, err := v.rule()
	if err != nil {
		return false
	}
	return r.inDomain(n)
}

// ParseVariant accepts a variant name (case-insensitive) or its numeric code.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range variantNames {
		if s == name {
			return Variant(i), nil
		}
	}
	if code, err := strconv.Atoi(s); err == nil && Variant(code).Valid() {
		return Variant(code), nil
	}
	return Full, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
