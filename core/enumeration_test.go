package core

import (
	"testing"
)

func u64ptr(v uint64) *uint64 { return &v }
func u32ptr(v uint32) *uint32 { return &v }

func TestClaimAndGetAFewTokens(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 100, "5/100")

	env.Caller = aliceAcc
	if got, _ := c.NftTokens(nil, u32ptr(0)); len(got) != 0 {
		t.Fatalf("limit 0 should return nothing, got %d", len(got))
	}
	if got, _ := c.NftTokens(nil, u32ptr(10)); len(got) != 0 {
		t.Fatalf("empty ledger should return nothing, got %d", len(got))
	}
	if got, _ := c.NftTokens(u64ptr(50), nil); len(got) != 0 {
		t.Fatalf("offset past end should return nothing, got %d", len(got))
	}

	for i := 0; i < 20; i++ {
		claimToken(t, c, gate1)
	}
	createCollectible(t, c, env, bobAcc, gate2, 15, "5/100")
	env.Caller = bobAcc
	for i := 0; i < 10; i++ {
		claimToken(t, c, gate2)
	}

	total, err := c.NftTotalSupply()
	if err != nil || total != 30 {
		t.Fatalf("total supply = %d err %v, want 30", total, err)
	}
	forAlice, err := c.NftSupplyForOwner(aliceAcc)
	if err != nil || forAlice != 20 {
		t.Fatalf("alice supply = %d err %v, want 20", forAlice, err)
	}

	if got, _ := c.NftTokens(nil, nil); len(got) != 30 {
		t.Fatalf("all tokens = %d, want 30", len(got))
	}
	if got, _ := c.NftTokensForOwner(aliceAcc, nil, nil); len(got) != 20 {
		t.Fatalf("alice tokens = %d, want 20", len(got))
	}
	if got, _ := c.NftTokens(nil, u32ptr(10)); len(got) != 10 {
		t.Fatalf("limited tokens = %d, want 10", len(got))
	}
	if got, _ := c.NftTokensForOwner(aliceAcc, nil, u32ptr(10)); len(got) != 10 {
		t.Fatalf("limited alice tokens = %d, want 10", len(got))
	}
	if got, _ := c.NftTokens(u64ptr(25), u32ptr(10)); len(got) != 5 {
		t.Fatalf("tail tokens = %d, want 5", len(got))
	}
	if got, _ := c.NftTokensForOwner(aliceAcc, u64ptr(15), u32ptr(10)); len(got) != 5 {
		t.Fatalf("tail alice tokens = %d, want 5", len(got))
	}
}

func TestTokensKeepClaimOrder(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")

	env.Caller = aliceAcc
	var ids []TokenId
	for i := 0; i < 5; i++ {
		ids = append(ids, claimToken(t, c, gate1))
	}
	tokens, err := c.NftTokens(nil, nil)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	for i, token := range tokens {
		if token.TokenID != ids[i] {
			t.Fatalf("order mismatch at %d: got %d want %d", i, token.TokenID, ids[i])
		}
	}
}

func TestGetTokensByOwnerAndGateID(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	createCollectible(t, c, env, aliceAcc, gate2, 10, "5/100")

	env.Caller = bobAcc
	claimToken(t, c, gate1)
	claimToken(t, c, gate2)
	claimToken(t, c, gate1)

	matched, err := c.GetTokensByOwnerAndGateID(gate1, bobAcc)
	if err != nil {
		t.Fatalf("by owner and gate: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 tokens for gate1, got %d", len(matched))
	}
	for _, token := range matched {
		if token.GateID != gate1 {
			t.Fatalf("wrong gate in result: %s", token.GateID)
		}
	}

	none, err := c.GetTokensByOwnerAndGateID(gate1, charlieAcc)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no tokens for charlie, got %d err %v", len(none), err)
	}
}

// -----------------------------------------------------------------------------
// Token URI
// -----------------------------------------------------------------------------

func TestTokenURIWithBaseURI(t *testing.T) {
	c, env := initDefault(t)
	uri, err := c.NftTokenURI(0)
	if err != nil || uri != nil {
		t.Fatalf("expected nil URI before claim, got %v err %v", uri, err)
	}

	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	tokenID := claimToken(t, c, gate1)

	uri, err = c.NftTokenURI(tokenID)
	if err != nil || uri == nil {
		t.Fatalf("token URI: %v err %v", uri, err)
	}
	want := "https://mintgate.app/t/" + string(gate1)
	if *uri != want {
		t.Fatalf("uri = %s, want %s", *uri, want)
	}
}

func TestTokenURIWithNoSlashBaseURI(t *testing.T) {
	c, env := initContractWith(t, "5/100", "30/100", testMetadata(strptr("https://mintgate/t")))
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	tokenID := claimToken(t, c, gate1)

	uri, err := c.NftTokenURI(tokenID)
	if err != nil || uri == nil {
		t.Fatalf("token URI: %v err %v", uri, err)
	}
	want := "https://mintgate/t/" + string(gate1)
	if *uri != want {
		t.Fatalf("uri = %s, want %s", *uri, want)
	}
}

func TestTokenURIWithNoBaseURI(t *testing.T) {
	c, env := initContractWith(t, "5/100", "30/100", testMetadata(nil))
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	tokenID := claimToken(t, c, gate1)

	uri, err := c.NftTokenURI(tokenID)
	if err != nil || uri != nil {
		t.Fatalf("expected nil URI, got %v err %v", uri, err)
	}
}
