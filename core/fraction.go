package core

// Exact rational arithmetic for royalties and fees. Fractions are confined
// to [0, 1] and multiply u128 balances with floor rounding. The 128x64 bit
// product fits in 192 bits, so a 256-bit register never overflows.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

var (
	ErrZeroDenominator    = errors.New("Denominator must be a positive number, but was 0")
	ErrFractionExceedsOne = errors.New("The fraction must be less or equal to 1")
)

// Fraction is a rational number num/den in [0, 1].
type Fraction struct {
	Num uint64 `json:"num"`
	Den uint64 `json:"den"`
}

// ParseFraction reads the textual form "N/D".
func ParseFraction(s string) (Fraction, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Fraction{}, fmt.Errorf("fraction `%s` must have the form N/D", s)
	}
	num, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid numerator in `%s`: %w", s, err)
	}
	den, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid denominator in `%s`: %w", s, err)
	}
	f := Fraction{Num: num, Den: den}
	if err := f.Check(); err != nil {
		return Fraction{}, err
	}
	return f, nil
}

// Check validates the fraction invariants: positive denominator, value at
// most 1.
func (f Fraction) Check() error {
	if f.Den == 0 {
		return ErrZeroDenominator
	}
	if f.Num > f.Den {
		return ErrFractionExceedsOne
	}
	return nil
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// MultBalance computes balance * num / den with floor rounding.
func (f Fraction) MultBalance(balance Balance) Balance {
	prod := new(uint256.Int).Mul(&balance.Int, uint256.NewInt(f.Num))
	prod.Div(prod, uint256.NewInt(f.Den))
	return Balance{Int: *prod}
}

// Cmp compares two fractions by cross-multiplication and returns -1, 0 or 1.
func (f Fraction) Cmp(o Fraction) int {
	left := new(uint256.Int).Mul(uint256.NewInt(f.Num), uint256.NewInt(o.Den))
	right := new(uint256.Int).Mul(uint256.NewInt(o.Num), uint256.NewInt(f.Den))
	return left.Cmp(right)
}

// Add returns f + o as a fraction over the common denominator. Both inputs
// must be checked; the sum may exceed 1 and is meant for range checks only.
func (f Fraction) Add(o Fraction) Fraction {
	return Fraction{
		Num: f.Num*o.Den + o.Num*f.Den,
		Den: f.Den * o.Den,
	}
}

// -----------------------------------------------------------------------------
// Balance
// -----------------------------------------------------------------------------

var errBalanceRange = errors.New("balance does not fit in 128 bits")

// Balance is a u128 amount carried in a 256-bit register. It marshals as a
// decimal string, the wire form used by wallet UIs.
type Balance struct {
	uint256.Int
}

// NewBalance builds a Balance from a uint64 amount.
func NewBalance(v uint64) Balance {
	return Balance{Int: *uint256.NewInt(v)}
}

// ParseBalance reads a decimal string and rejects values above u128.
func ParseBalance(s string) (Balance, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Balance{}, err
	}
	if v.BitLen() > 128 {
		return Balance{}, errBalanceRange
	}
	return Balance{Int: *v}, nil
}

// Sub returns b - o. The caller guarantees o <= b.
func (b Balance) Sub(o Balance) Balance {
	res := new(uint256.Int).Sub(&b.Int, &o.Int)
	return Balance{Int: *res}
}

// Plus returns b + o.
func (b Balance) Plus(o Balance) Balance {
	res := new(uint256.Int).Add(&b.Int, &o.Int)
	return Balance{Int: *res}
}

func (b Balance) Equal(o Balance) bool {
	return b.Int.Cmp(&o.Int) == 0
}

func (b Balance) String() string {
	return b.Int.Dec()
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.Int.Dec())), nil
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := ParseBalance(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
