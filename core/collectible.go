package core

// Collectible registry. A collectible is a named token template with a
// bounded supply; tokens are claimed from it until the supply is exhausted.

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	maxTitleLen = 140
	maxFieldLen = 1024
)

// TokenMetadata describes a collectible and is snapshotted onto every token
// claimed from it.
type TokenMetadata struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Media         *string `json:"media"`
	MediaHash     *string `json:"media_hash"`
	Copies        uint16  `json:"copies"`
	Reference     *string `json:"reference"`
	ReferenceHash *string `json:"reference_hash"`
}

// Collectible is immutable after creation except for CurrentSupply,
// MintedTokens and the Copies counter maintained by burns.
type Collectible struct {
	GateID        GateId        `json:"gate_id"`
	CreatorID     AccountId     `json:"creator_id"`
	CurrentSupply uint16        `json:"current_supply"`
	MintedTokens  []TokenId     `json:"minted_tokens"`
	Royalty       Fraction      `json:"royalty"`
	Metadata      TokenMetadata `json:"metadata"`
}

// CreateCollectible registers a new collectible under gateID. Only the
// contract admin may create collectibles; the creator receives the royalty.
func (c *NftContract) CreateCollectible(
	creator AccountId,
	gateID GateId,
	title string,
	description string,
	supply uint16,
	royalty Fraction,
	media, mediaHash, reference, referenceHash *string,
) error {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ValidateGateID(gateID); err != nil {
		return err
	}
	if err := ValidateAccountID(creator); err != nil {
		return err
	}
	if err := royalty.Check(); err != nil {
		return err
	}
	if supply == 0 {
		return fmt.Errorf("Gate ID `%s` must have a positive supply", gateID)
	}

	st, err := c.loadState()
	if err != nil {
		return err
	}
	if royalty.Cmp(st.MinRoyalty) < 0 {
		return fmt.Errorf("Royalty `%s` of `%s` is less than min", royalty, gateID)
	}
	if royalty.Cmp(st.MaxRoyalty) > 0 {
		return fmt.Errorf("Royalty `%s` of `%s` is greater than max", royalty, gateID)
	}
	// The fee and the royalty are both taken from a sale price, so together
	// they cannot exceed the whole.
	feeComplement := Fraction{Num: st.MintgateFee.Den - st.MintgateFee.Num, Den: st.MintgateFee.Den}
	if royalty.Cmp(feeComplement) > 0 {
		return fmt.Errorf(
			"Royalty `%s` is too large for the given NFT fee `%s`", royalty, st.MintgateFee)
	}

	if len(title) > maxTitleLen {
		return fmt.Errorf("Invalid argument for gate ID `%s`: Title exceeds %d chars", gateID, maxTitleLen)
	}
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"description", &description},
		{"media", media},
		{"media_hash", mediaHash},
		{"reference", reference},
		{"reference_hash", referenceHash},
	} {
		if field.value != nil && len(*field.value) > maxFieldLen {
			return fmt.Errorf(
				"Invalid argument for gate ID `%s`: `%s` exceeds %d chars",
				gateID, field.name, maxFieldLen)
		}
	}

	if err := c.requireAdmin(st); err != nil {
		return err
	}

	if existing, err := c.loadCollectible(gateID); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("Gate ID `%s` already exists", gateID)
	}

	col := &Collectible{
		GateID:        gateID,
		CreatorID:     creator,
		CurrentSupply: supply,
		MintedTokens:  []TokenId{},
		Royalty:       royalty,
		Metadata: TokenMetadata{
			Title:         title,
			Description:   description,
			Media:         media,
			MediaHash:     mediaHash,
			Copies:        supply,
			Reference:     reference,
			ReferenceHash: referenceHash,
		},
	}
	if err := c.saveCollectible(col); err != nil {
		return err
	}

	gates, err := c.loadGateList(creator)
	if err != nil {
		return err
	}
	if err := c.saveGateList(creator, append(gates, gateID)); err != nil {
		return err
	}

	logger.Infow("collectible created",
		"gate_id", gateID, "creator", creator, "supply", supply, "royalty", royalty.String())
	return nil
}

// DeleteCollectible removes a collectible that has no claimed tokens. The
// creator and the admin are allowed to delete.
func (c *NftContract) DeleteCollectible(gateID GateId) error {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()

	col, err := c.loadCollectible(gateID)
	if err != nil {
		return err
	}
	if col == nil {
		return fmt.Errorf("Gate ID `%s` was not found", gateID)
	}
	if col.CurrentSupply != col.Metadata.Copies {
		return fmt.Errorf("Gate ID `%s` has already some claimed tokens", gateID)
	}

	st, err := c.loadState()
	if err != nil {
		return err
	}
	if err := c.requireCreatorOrAdmin(st, col); err != nil {
		return err
	}

	if err := c.store.Delete([]byte(fmt.Sprintf(gateKeyFmt, gateID))); err != nil {
		return err
	}
	gates, err := c.loadGateList(col.CreatorID)
	if err != nil {
		return err
	}
	for i, g := range gates {
		if g == gateID {
			gates = append(gates[:i], gates[i+1:]...)
			break
		}
	}
	if err := c.saveGateList(col.CreatorID, gates); err != nil {
		return err
	}

	logger.Infow("collectible deleted", "gate_id", gateID, "creator", col.CreatorID)
	return nil
}

// GetCollectibleByGateID returns the collectible or nil when absent.
func (c *NftContract) GetCollectibleByGateID(gateID GateId) (*Collectible, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadCollectible(gateID)
}

// GetCollectiblesByCreator lists a creator's collectibles in creation order.
func (c *NftContract) GetCollectiblesByCreator(creator AccountId) ([]Collectible, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	gates, err := c.loadGateList(creator)
	if err != nil {
		return nil, err
	}
	out := make([]Collectible, 0, len(gates))
	for _, g := range gates {
		col, err := c.loadCollectible(g)
		if err != nil {
			return nil, err
		}
		if col == nil {
			return nil, fmt.Errorf("creator index references missing gate ID `%s`", g)
		}
		out = append(out, *col)
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Registry accessors
// -----------------------------------------------------------------------------

func (c *NftContract) loadCollectible(gateID GateId) (*Collectible, error) {
	var col Collectible
	ok, err := c.getJSON(fmt.Sprintf(gateKeyFmt, gateID), &col)
	if err != nil || !ok {
		return nil, err
	}
	return &col, nil
}

func (c *NftContract) saveCollectible(col *Collectible) error {
	return c.putJSON(fmt.Sprintf(gateKeyFmt, col.GateID), col)
}

func (c *NftContract) loadGateList(creator AccountId) ([]GateId, error) {
	var gates []GateId
	if _, err := c.getJSON(fmt.Sprintf(creatorKeyFmt, creator), &gates); err != nil {
		return nil, err
	}
	return gates, nil
}

func (c *NftContract) saveGateList(creator AccountId, gates []GateId) error {
	key := fmt.Sprintf(creatorKeyFmt, creator)
	if len(gates) == 0 {
		return c.store.Delete([]byte(key))
	}
	return c.putJSON(key, gates)
}
