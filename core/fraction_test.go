package core

import (
	"encoding/json"
	"testing"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in       string
		num, den uint64
	}{
		{"5/100", 5, 100},
		{"0/1", 0, 1},
		{"1/1", 1, 1},
		{"25/1000", 25, 1000},
	}
	for _, tt := range tests {
		f, err := ParseFraction(tt.in)
		if err != nil {
			t.Fatalf("ParseFraction(%s) failed: %v", tt.in, err)
		}
		if f.Num != tt.num || f.Den != tt.den {
			t.Fatalf("ParseFraction(%s)=%v want %d/%d", tt.in, f, tt.num, tt.den)
		}
		if f.String() != tt.in {
			t.Fatalf("String()=%s want %s", f.String(), tt.in)
		}
	}
}

func TestParseFractionZeroDenominator(t *testing.T) {
	_, err := ParseFraction("1/0")
	wantErr(t, err, "Denominator must be a positive number, but was 0")
}

func TestParseFractionGreaterThanOne(t *testing.T) {
	_, err := ParseFraction("2/1")
	wantErr(t, err, "The fraction must be less or equal to 1")
}

func TestParseFractionMalformed(t *testing.T) {
	for _, in := range []string{"", "5", "a/b", "1/2/3x", "-1/2", "1/-2"} {
		if _, err := ParseFraction(in); err == nil {
			t.Fatalf("ParseFraction(%q) should fail", in)
		}
	}
}

func TestFractionCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1/2", "2/4", 0},
		{"5/100", "30/100", -1},
		{"30/100", "5/100", 1},
		{"1/6", "1/7", 1},
		{"0/5", "0/9", 0},
	}
	for _, tt := range tests {
		a, b := frac(t, tt.a), frac(t, tt.b)
		if got := a.Cmp(b); got != tt.want {
			t.Fatalf("Cmp(%s, %s)=%d want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMultBalanceFloors(t *testing.T) {
	tests := []struct {
		f       string
		balance uint64
		want    uint64
	}{
		{"25/1000", 2000, 50},
		{"15/100", 2000, 300},
		{"1/6", 2000, 333},
		{"1/7", 2000, 285},
		{"0/1", 2000, 0},
		{"1/1", 2000, 2000},
		{"30/100", 5_000_000, 1_500_000},
	}
	for _, tt := range tests {
		got := frac(t, tt.f).MultBalance(NewBalance(tt.balance))
		if !got.Equal(NewBalance(tt.want)) {
			t.Fatalf("MultBalance(%s, %d)=%s want %d", tt.f, tt.balance, got, tt.want)
		}
	}
}

// Near-u128 balances must not overflow the widened product.
func TestMultBalanceWideBalance(t *testing.T) {
	max128 := "340282366920938463463374607431768211455"
	balance, err := ParseBalance(max128)
	if err != nil {
		t.Fatalf("parse u128 max: %v", err)
	}

	whole := frac(t, "1/1").MultBalance(balance)
	if !whole.Equal(balance) {
		t.Fatalf("1/1 of u128 max = %s want %s", whole, max128)
	}

	half := frac(t, "1/2").MultBalance(balance)
	want, _ := ParseBalance("170141183460469231731687303715884105727")
	if !half.Equal(want) {
		t.Fatalf("1/2 of u128 max = %s want %s", half, want)
	}
}

func TestParseBalanceRejectsOverflow(t *testing.T) {
	if _, err := ParseBalance("340282366920938463463374607431768211456"); err == nil {
		t.Fatalf("expected range error above u128 max")
	}
	if _, err := ParseBalance("not-a-number"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestBalanceJSONRoundTrip(t *testing.T) {
	b, err := ParseBalance("123456789012345678901234567890")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"123456789012345678901234567890"` {
		t.Fatalf("unexpected wire form %s", raw)
	}
	var back Balance
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(b) {
		t.Fatalf("round trip mismatch: %s vs %s", back, b)
	}
}

func TestFractionAdd(t *testing.T) {
	sum := frac(t, "15/100").Add(frac(t, "25/1000"))
	if sum.Cmp(Fraction{Num: 175, Den: 1000}) != 0 {
		t.Fatalf("15/100 + 25/1000 = %s want 175/1000", sum)
	}
}
