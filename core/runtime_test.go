package core

import (
	"strings"
	"testing"
)

func TestValidateAccountID(t *testing.T) {
	valid := []AccountId{"alice", "bob", "admin.mintgate", "fee-account", "a_b", "a1.b2.c3"}
	for _, id := range valid {
		if err := ValidateAccountID(id); err != nil {
			t.Fatalf("ValidateAccountID(%s) failed: %v", id, err)
		}
	}
	invalid := []AccountId{
		"", "a", "Alice", "has space", "double..dot", ".leading", "trailing.",
		"has:colon", AccountId(strings.Repeat("a", 65)),
	}
	for _, id := range invalid {
		if err := ValidateAccountID(id); err == nil {
			t.Fatalf("ValidateAccountID(%q) should fail", id)
		}
	}
}

func TestValidateGateID(t *testing.T) {
	valid := []GateId{"GPZkspuVGaZxwWoP6bJoWU", "g", "a-b_c", "1234567890"}
	for _, id := range valid {
		if err := ValidateGateID(id); err != nil {
			t.Fatalf("ValidateGateID(%s) failed: %v", id, err)
		}
	}
	invalid := []GateId{"", "has:colon", "has space", GateId(strings.Repeat("g", 33))}
	for _, id := range invalid {
		if err := ValidateGateID(id); err == nil {
			t.Fatalf("ValidateGateID(%q) should fail", id)
		}
	}
}

func TestCallerEnv(t *testing.T) {
	env := NewCallerEnv(aliceAcc)
	if env.Predecessor() != aliceAcc {
		t.Fatalf("predecessor = %s", env.Predecessor())
	}
	if env.Now() == 0 {
		t.Fatalf("wall clock fallback returned zero")
	}
	env.Time = 42
	if env.Now() != 42 {
		t.Fatalf("pinned time not honored: %d", env.Now())
	}
}
