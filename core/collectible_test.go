package core

import (
	"strings"
	"testing"
)

func TestCreateCollectibleWithZeroDenRoyalty(t *testing.T) {
	c, _ := initDefault(t)
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		Fraction{Num: 1, Den: 0}, nil, nil, nil, nil)
	wantErr(t, err, "Denominator must be a positive number, but was 0")
}

func TestCreateCollectibleWithInvalidRoyalty(t *testing.T) {
	c, _ := initDefault(t)
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		Fraction{Num: 2, Den: 1}, nil, nil, nil, nil)
	wantErr(t, err, "The fraction must be less or equal to 1")
}

func TestCreateCollectibleWithNoRoyalty(t *testing.T) {
	c, _ := initDefault(t)
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		frac(t, "0/100"), nil, nil, nil, nil)
	wantErr(t, err, "Royalty `0/100` of `GPZkspuVGaZxwWoP6bJoWU` is less than min")
}

func TestCreateCollectibleWithLessThanMinRoyalty(t *testing.T) {
	c, _ := initDefault(t)
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		frac(t, "2/100"), nil, nil, nil, nil)
	wantErr(t, err, "Royalty `2/100` of `GPZkspuVGaZxwWoP6bJoWU` is less than min")
}

func TestCreateCollectibleWithGreaterThanMaxRoyalty(t *testing.T) {
	c, _ := initDefault(t)
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		frac(t, "5/10"), nil, nil, nil, nil)
	wantErr(t, err, "Royalty `5/10` of `GPZkspuVGaZxwWoP6bJoWU` is greater than max")
}

func TestCreateCollectibleWithAllRoyalty(t *testing.T) {
	c, _ := initDefault(t)
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		frac(t, "1/1"), nil, nil, nil, nil)
	wantErr(t, err, "Royalty `1/1` of `GPZkspuVGaZxwWoP6bJoWU` is greater than max")
}

func TestCreateCollectibleWithNoSupply(t *testing.T) {
	c, _ := initDefault(t)
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 0,
		frac(t, "5/100"), nil, nil, nil, nil)
	wantErr(t, err, "Gate ID `GPZkspuVGaZxwWoP6bJoWU` must have a positive supply")
}

// With a permissive royalty range the fee compatibility check is what
// rejects a full royalty.
func TestCreateCollectibleWithFullRoyalty(t *testing.T) {
	c, _ := initContractWith(t, "0/10", "30/30", testMetadata(testBaseURI()))
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		frac(t, "1/1"), nil, nil, nil, nil)
	wantErr(t, err, "Royalty `1/1` is too large for the given NFT fee `25/1000`")
}

func TestCreateCollectibleWithInvalidTitle(t *testing.T) {
	c, _ := initContractWith(t, "0/10", "30/30", testMetadata(testBaseURI()))
	err := c.CreateCollectible(aliceAcc, gate1,
		strings.Repeat("X", 141), "desc", 10, frac(t, "1/100"),
		strptr(strings.Repeat("X", 1024)), nil, nil, nil)
	wantErr(t, err, "Invalid argument for gate ID `GPZkspuVGaZxwWoP6bJoWU`: Title exceeds 140 chars")
}

func TestCreateCollectibleWithOversizedFields(t *testing.T) {
	tests := []struct {
		field string
		apply func(*string, **string, **string, **string, **string)
	}{
		{"description", func(desc *string, media, mediaHash, ref, refHash **string) { *desc = strings.Repeat("X", 1025) }},
		{"media", func(desc *string, media, mediaHash, ref, refHash **string) { *media = strptr(strings.Repeat("X", 1025)) }},
		{"media_hash", func(desc *string, media, mediaHash, ref, refHash **string) { *mediaHash = strptr(strings.Repeat("X", 1025)) }},
		{"reference", func(desc *string, media, mediaHash, ref, refHash **string) { *ref = strptr(strings.Repeat("X", 1025)) }},
		{"reference_hash", func(desc *string, media, mediaHash, ref, refHash **string) { *refHash = strptr(strings.Repeat("X", 1025)) }},
	}
	for _, tt := range tests {
		c, _ := initContractWith(t, "0/10", "30/30", testMetadata(testBaseURI()))
		desc := "desc"
		var media, mediaHash, ref, refHash *string
		tt.apply(&desc, &media, &mediaHash, &ref, &refHash)

		err := c.CreateCollectible(aliceAcc, gate1, "title", desc, 10,
			frac(t, "1/100"), media, mediaHash, ref, refHash)
		wantErr(t, err,
			"Invalid argument for gate ID `GPZkspuVGaZxwWoP6bJoWU`: `"+tt.field+"` exceeds 1024 chars")
	}
}

func TestCreateCollectibleByNoAdmin(t *testing.T) {
	c, env := initContractWith(t, "0/10", "30/30", testMetadata(testBaseURI()))
	env.Caller = aliceAcc
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 10,
		frac(t, "1/100"), nil, nil, nil, nil)
	wantErr(t, err, "Operation is allowed only for admin")
}

func TestCreateCollectible(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")

	col, err := c.GetCollectibleByGateID(gate1)
	if err != nil {
		t.Fatalf("get collectible: %v", err)
	}
	if col == nil {
		t.Fatalf("collectible not stored")
	}
	if col.CreatorID != aliceAcc || col.GateID != gate1 {
		t.Fatalf("identity mismatch: %+v", col)
	}
	if col.CurrentSupply != 10 || col.Metadata.Copies != 10 {
		t.Fatalf("supply mismatch: %+v", col)
	}
	if len(col.MintedTokens) != 0 {
		t.Fatalf("expected no minted tokens")
	}
	if col.Royalty.Cmp(frac(t, "5/100")) != 0 {
		t.Fatalf("royalty mismatch: %s", col.Royalty)
	}
	if col.Metadata.Media == nil || *col.Metadata.Media != "media" {
		t.Fatalf("media mismatch: %v", col.Metadata.Media)
	}
	if col.Metadata.MediaHash == nil || *col.Metadata.MediaHash != "123" {
		t.Fatalf("media hash mismatch: %v", col.Metadata.MediaHash)
	}
	if col.Metadata.Reference == nil || *col.Metadata.Reference != "ref" {
		t.Fatalf("reference mismatch: %v", col.Metadata.Reference)
	}
	if col.Metadata.ReferenceHash == nil || *col.Metadata.ReferenceHash != "456" {
		t.Fatalf("reference hash mismatch: %v", col.Metadata.ReferenceHash)
	}

	cols, err := c.GetCollectiblesByCreator(aliceAcc)
	if err != nil {
		t.Fatalf("by creator: %v", err)
	}
	if len(cols) != 1 {
		t.Fatalf("expected 1 collectible for creator, got %d", len(cols))
	}
}

func TestCreateAFewCollectibles(t *testing.T) {
	c, env := initDefault(t)
	gates := []GateId{
		"GPZkspuVGaZxwWoP6bJoW1", "GPZkspuVGaZxwWoP6bJoW2", "GPZkspuVGaZxwWoP6bJoW3",
		"GPZkspuVGaZxwWoP6bJoW4", "GPZkspuVGaZxwWoP6bJoW5",
	}
	for i, g := range gates {
		createCollectible(t, c, env, aliceAcc, g, uint16(i+1), "5/100")
	}
	for _, g := range []GateId{"Nekq22i3rvzDe7c51Yc8h1", "Nekq22i3rvzDe7c51Yc8h2"} {
		createCollectible(t, c, env, bobAcc, g, 7, "5/100")
	}

	aliceCols, err := c.GetCollectiblesByCreator(aliceAcc)
	if err != nil {
		t.Fatalf("by creator: %v", err)
	}
	if len(aliceCols) != len(gates) {
		t.Fatalf("expected %d collectibles, got %d", len(gates), len(aliceCols))
	}
	// Listing preserves creation order.
	for i, col := range aliceCols {
		if col.GateID != gates[i] {
			t.Fatalf("order mismatch at %d: %s", i, col.GateID)
		}
	}
	bobCols, err := c.GetCollectiblesByCreator(bobAcc)
	if err != nil {
		t.Fatalf("by creator: %v", err)
	}
	if len(bobCols) != 2 {
		t.Fatalf("expected 2 collectibles for bob, got %d", len(bobCols))
	}
}

func TestCreateCollectibleWithSameGateID(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	err := c.CreateCollectible(aliceAcc, gate1, "title", "desc", 20,
		frac(t, "5/100"), nil, nil, nil, nil)
	wantErr(t, err, "Gate ID `GPZkspuVGaZxwWoP6bJoWU` already exists")
}

// -----------------------------------------------------------------------------
// Deletion
// -----------------------------------------------------------------------------

func TestDeleteNonExistentCollectible(t *testing.T) {
	c, env := initDefault(t)
	env.Caller = aliceAcc
	wantErr(t, c.DeleteCollectible(gate2), "Gate ID `Nekq22i3rvzDe7c51Yc8hU` was not found")
}

func TestDeleteClaimedCollectible(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	claimToken(t, c, gate1)
	wantErr(t, c.DeleteCollectible(gate1), "Gate ID `GPZkspuVGaZxwWoP6bJoWU` has already some claimed tokens")
}

func TestDeleteCollectibleFromNonCreator(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	env.Caller = bobAcc
	wantErr(t, c.DeleteCollectible(gate1), "Unable to delete gate ID `GPZkspuVGaZxwWoP6bJoWU`")
}

func TestDeleteCollectibleFromCreator(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")

	env.Caller = aliceAcc
	if err := c.DeleteCollectible(gate1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	col, err := c.GetCollectibleByGateID(gate1)
	if err != nil || col != nil {
		t.Fatalf("expected collectible gone, got %v err %v", col, err)
	}
	cols, err := c.GetCollectiblesByCreator(aliceAcc)
	if err != nil {
		t.Fatalf("by creator: %v", err)
	}
	if len(cols) != 0 {
		t.Fatalf("creator index not emptied")
	}
}

func TestDeleteCollectibleFromAdmin(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")

	env.Caller = adminAcc
	if err := c.DeleteCollectible(gate1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cols, err := c.GetCollectiblesByCreator(aliceAcc)
	if err != nil {
		t.Fatalf("by creator: %v", err)
	}
	if len(cols) != 0 {
		t.Fatalf("creator index not emptied")
	}
}

// Create then delete with no claims restores the registry.
func TestCreateDeleteRoundTrip(t *testing.T) {
	c, env := initDefault(t)
	createCollectible(t, c, env, aliceAcc, gate1, 10, "5/100")
	env.Caller = adminAcc
	if err := c.DeleteCollectible(gate1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	createCollectible(t, c, env, aliceAcc, gate1, 20, "5/100")
	col, err := c.GetCollectibleByGateID(gate1)
	if err != nil || col == nil {
		t.Fatalf("recreate failed: %v err %v", col, err)
	}
	if col.CurrentSupply != 20 {
		t.Fatalf("expected fresh supply 20, got %d", col.CurrentSupply)
	}
}
