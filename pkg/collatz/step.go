package collatz

import (
	"fmt"
	"math/bits"
)

// Preimage holds the predecessors of a value under the up-step. Primary is
// always present; Secondary only when HasSecondary is set.
type Preimage struct {
	Primary      uint64
	Secondary    uint64
	HasSecondary bool
}

// Values returns the predecessors in slot order.
func (p Preimage) Values() []uint64 {
	if p.HasSecondary {
		return []uint64{p.Primary, p.Secondary}
	}
	return []uint64{p.Primary}
}

// Down applies the down-step of v to n.
// Returns ErrInvalidDomain if n is not a member of v's domain and
// ErrOverflow if the successor does not fit in 64 bits.
func Down(v Variant, n uint64) (uint64, error) {
	r, err := v.rule()
	if err != nil {
		return 0, err
	}
	if !r.inDomain(n) {
		return 0, fmt.Errorf("%w: %d under %s", ErrInvalidDomain, n, v)
	}
	return r.down(n)
}

// Up returns the predecessors of n under v.
// Returns ErrInvalidDomain if n is not a member of v's domain and
// ErrOverflow if any predecessor does not fit in 64 bits.
func Up(v Variant, n uint64) (Preimage, error) {
	r, err := v.rule()
	if err != nil {
		return Preimage{}, err
	}
	if !r.inDomain(n) {
		return Preimage{}, fmt.Errorf("%w: %d under %s", ErrInvalidDomain, n, v)
	}
	return r.up(n)
}

// rule is the sealed set of reduction strategies, one per variant.
// down and up assume their argument already passed inDomain.
type rule interface {
	inDomain(n uint64) bool
	down(n uint64) (uint64, error)
	up(n uint64) (Preimage, error)
}

func (v Variant) rule() (rule, error) {
	switch v {
	case Full:
		return fullRule{}, nil
	case Short:
		return shortRule{}, nil
	case Odd:
		return oddRule{}, nil
	case Compact:
		return compactRule{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
}

// affine computes (m*n + c) >> shift in 128-bit intermediate precision and
// fails when the result does not fit in 64 bits.
func affine(n, m, c uint64, shift uint) (uint64, error) {
	hi, lo := bits.Mul64(n, m)
	lo, carry := bits.Add64(lo, c, 0)
	hi += carry
	if hi>>shift != 0 {
		return 0, ErrOverflow
	}
	return hi<<(64-shift) | lo>>shift, nil
}

func withSecondary(primary, secondary uint64) Preimage {
	return Preimage{Primary: primary, Secondary: secondary, HasSecondary: true}
}

type fullRule struct{}

func (fullRule) inDomain(n uint64) bool { return n != 0 }

func (fullRule) down(n uint64) (uint64, error) {
	if n%2 == 0 {
		return n / 2, nil
	}
	return affine(n, 3, 1, 0)
}

// n = 3(2m+1) + 1 = 6m + 4 has the odd predecessor (n-1)/3.
func (fullRule) up(n uint64) (Preimage, error) {
	p, err := affine(n, 2, 0, 0)
	if err != nil {
		return Preimage{}, err
	}
	if n%6 == 4 {
		return withSecondary(p, (n-1)/3), nil
	}
	return Preimage{Primary: p}, nil
}

type shortRule struct{}

func (shortRule) inDomain(n uint64) bool { return n != 0 }

func (shortRule) down(n uint64) (uint64, error) {
	if n%2 == 0 {
		return n / 2, nil
	}
	return affine(n, 3, 1, 1)
}

// n = (3(2m+1) + 1) / 2 = 3m + 2 has the odd predecessor (2n-1)/3.
func (shortRule) up(n uint64) (Preimage, error) {
	p, err := affine(n, 2, 0, 0)
	if err != nil {
		return Preimage{}, err
	}
	if n%3 == 2 {
		return withSecondary(p, (p-1)/3), nil
	}
	return Preimage{Primary: p}, nil
}

type oddRule struct{}

func (oddRule) inDomain(n uint64) bool { return n%2 == 1 }

func (oddRule) down(n uint64) (uint64, error) {
	switch n % 8 {
	case 5:
		return n / 4, nil // (n-1)/4
	case 3, 7:
		return affine(n, 3, 1, 1)
	case 1:
		return affine(n, 3, 1, 2)
	}
	return 0, fmt.Errorf("%w: %d under %s", ErrInvalidDomain, n, Odd)
}

// Every odd n has 4n+1 (from the n mod 8 == 5 case). Besides that:
//
//	(3(8m+3) + 1) / 2 = 12m + 5
//	(3(8m+7) + 1) / 2 = 12m + 11   so n mod 6 == 5 has (2n-1)/3
//	(3(8m+1) + 1) / 4 = 6m + 1     so n mod 6 == 1 has (4n-1)/3
func (oddRule) up(n uint64) (Preimage, error) {
	p, err := affine(n, 4, 1, 0)
	if err != nil {
		return Preimage{}, err
	}
	switch n % 6 {
	case 1:
		return withSecondary(p, (p-2)/3), nil
	case 5:
		return withSecondary(p, (2*n-1)/3), nil
	}
	return Preimage{Primary: p}, nil
}

type compactRule struct{}

func (compactRule) inDomain(n uint64) bool { return n%2 == 1 && n%3 != 0 }

func (compactRule) down(n uint64) (uint64, error) {
	switch n % 96 {
	case 5, 29, 53, 77:
		return n / 4, nil // (n-1)/4
	case 85:
		return n / 16, nil // (n-5)/16
	case 7, 11, 19, 23, 31, 35, 43, 47, 55, 59, 67, 71, 79, 83, 91, 95:
		return affine(n, 3, 1, 1)
	case 1, 17, 25, 41, 49, 65, 73, 89:
		return affine(n, 3, 1, 2)
	case 13, 61:
		return affine(n, 3, 1, 3)
	case 37:
		return affine(n, 3, 1, 4)
	}
	return 0, fmt.Errorf("%w: %d under %s", ErrInvalidDomain, n, Compact)
}

// Predecessors by case of down:
//
//	((24m+5) - 1) / 4 = 6m + 1       n mod 6 == 1 has 4n+1
//	((96m+85) - 5) / 16 = 6m + 5     n mod 6 == 5 has 16n+5
//	(3(12m+7) + 1) / 2 = 18m + 11    (2n-1)/3
//	(3(12m+11) + 1) / 2 = 18m + 17   (2n-1)/3
//	(3(24m+1) + 1) / 4 = 18m + 1     (4n-1)/3
//	(3(24m+17) + 1) / 4 = 18m + 13   (4n-1)/3
//	(3(48m+13) + 1) / 8 = 18m + 5    (8n-1)/3
//	(3(96m+37) + 1) / 16 = 18m + 7   (16n-1)/3
func (compactRule) up(n uint64) (Preimage, error) {
	var (
		p   uint64
		err error
	)
	if n%6 == 1 {
		p, err = affine(n, 4, 1, 0)
	} else {
		p, err = affine(n, 16, 5, 0)
	}
	if err != nil {
		return Preimage{}, err
	}

	var k uint64
	switch n % 18 {
	case 11, 17:
		k = 2
	case 1, 13:
		k = 4
	case 5:
		k = 8
	case 7:
		k = 16
	default:
		return Preimage{}, fmt.Errorf("%w: %d under %s", ErrInvalidDomain, n, Compact)
	}
	kn, err := affine(n, k, 0, 0)
	if err != nil {
		return Preimage{}, err
	}
	return withSecondary(p, (kn-1)/3), nil
}
