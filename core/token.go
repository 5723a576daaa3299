package core

// Token ledger. Tokens are claimed from a collectible, owned by exactly one
// account, and tracked by a primary index plus a per-owner index and a
// global listing order.

import (
	"fmt"

	"go.uber.org/zap"
)

// TokenApproval grants one account the right to transfer the token at or
// above MinPrice.
type TokenApproval struct {
	ApprovalID uint64  `json:"approval_id"`
	MinPrice   Balance `json:"min_price"`
}

// Token is an owned instance of a collectible.
type Token struct {
	TokenID  TokenId       `json:"token_id"`
	GateID   GateId        `json:"gate_id"`
	OwnerID  AccountId     `json:"owner_id"`
	Metadata TokenMetadata `json:"metadata"`
	// Approvals holds at most one entry; see NftApprove.
	Approvals       map[AccountId]TokenApproval `json:"approvals"`
	ApprovalCounter uint64                      `json:"approval_counter"`
	CreatedAt       uint64                      `json:"created_at"`
	ModifiedAt      uint64                      `json:"modified_at"`
}

// ClaimToken mints the next token of the collectible for the caller and
// returns its id. Token ids are monotonic and never reused, even after a
// burn.
func (c *NftContract) ClaimToken(gateID GateId) (TokenId, error) {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()

	col, err := c.loadCollectible(gateID)
	if err != nil {
		return 0, err
	}
	if col == nil {
		return 0, fmt.Errorf("Gate ID `%s` was not found", gateID)
	}
	if col.CurrentSupply == 0 {
		return 0, fmt.Errorf("Tokens for gate id `%s` have already been claimed", gateID)
	}

	st, err := c.loadState()
	if err != nil {
		return 0, err
	}
	tokenID := st.NextTokenID
	st.NextTokenID++
	if err := c.saveState(st); err != nil {
		return 0, err
	}

	col.CurrentSupply--
	col.MintedTokens = append(col.MintedTokens, tokenID)
	if err := c.saveCollectible(col); err != nil {
		return 0, err
	}

	owner := c.env.Predecessor()
	now := c.env.Now()
	metadata := col.Metadata
	metadata.Copies = col.CurrentSupply

	token := &Token{
		TokenID:    tokenID,
		GateID:     gateID,
		OwnerID:    owner,
		Metadata:   metadata,
		Approvals:  map[AccountId]TokenApproval{},
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := c.saveToken(token); err != nil {
		return 0, err
	}
	if err := c.appendOwnedToken(owner, tokenID); err != nil {
		return 0, err
	}
	ledger, err := c.loadTokenLedger()
	if err != nil {
		return 0, err
	}
	if err := c.saveTokenLedger(append(ledger, tokenID)); err != nil {
		return 0, err
	}

	logger.Infow("token claimed", "token_id", tokenID, "gate_id", gateID, "owner", owner)
	return tokenID, nil
}

// BurnToken destroys a token owned by the caller. The collectible keeps the
// id in its minted list but its copy count drops by one, so once every
// claimed token is burned the collectible becomes deletable again.
func (c *NftContract) BurnToken(tokenID TokenId) error {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()

	token, err := c.loadToken(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("Token ID `U64(%d)` was not found", tokenID)
	}
	if err := c.requireOwner(token); err != nil {
		return err
	}

	col, err := c.loadCollectible(token.GateID)
	if err != nil {
		return err
	}
	if col == nil {
		return fmt.Errorf("Gate ID `%s` was not found", token.GateID)
	}
	col.Metadata.Copies--
	if err := c.saveCollectible(col); err != nil {
		return err
	}

	if err := c.store.Delete([]byte(fmt.Sprintf(tokenKeyFmt, tokenID))); err != nil {
		return err
	}
	if err := c.removeOwnedToken(token.OwnerID, tokenID); err != nil {
		return err
	}
	ledger, err := c.loadTokenLedger()
	if err != nil {
		return err
	}
	for i, id := range ledger {
		if id == tokenID {
			ledger = append(ledger[:i], ledger[i+1:]...)
			break
		}
	}
	if err := c.saveTokenLedger(ledger); err != nil {
		return err
	}

	logger.Infow("token burned", "token_id", tokenID, "gate_id", token.GateID)
	return nil
}

// NftTransfer reassigns the token to receiver. The caller must be the owner
// or hold the token's approval; when approvalID is given it must match the
// stored approval. Any approval is cleared by the transfer while the
// approval counter keeps its value.
func (c *NftContract) NftTransfer(receiver AccountId, tokenID TokenId, approvalID *uint64, memo *string) error {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transferLocked(receiver, tokenID, approvalID, memo, logger)
}

func (c *NftContract) transferLocked(
	receiver AccountId,
	tokenID TokenId,
	approvalID *uint64,
	memo *string,
	logger *zap.SugaredLogger,
) error {
	token, err := c.loadToken(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("Token ID `U64(%d)` was not found", tokenID)
	}
	if err := ValidateAccountID(receiver); err != nil {
		return err
	}

	sender := c.env.Predecessor()
	if sender != token.OwnerID {
		approval, ok := token.Approvals[sender]
		if !ok || (approvalID != nil && approval.ApprovalID != *approvalID) {
			return fmt.Errorf("Sender `%s` is not authorized to make transfer", sender)
		}
	}

	previous := token.OwnerID
	token.OwnerID = receiver
	token.Approvals = map[AccountId]TokenApproval{}
	token.ModifiedAt = c.env.Now()
	if err := c.saveToken(token); err != nil {
		return err
	}
	if err := c.removeOwnedToken(previous, tokenID); err != nil {
		return err
	}
	if err := c.appendOwnedToken(receiver, tokenID); err != nil {
		return err
	}

	if memo != nil {
		logger.Infow("token transferred",
			"token_id", tokenID, "from", previous, "to", receiver, "memo", *memo)
	} else {
		logger.Infow("token transferred", "token_id", tokenID, "from", previous, "to", receiver)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Ledger accessors
// -----------------------------------------------------------------------------

func (c *NftContract) loadToken(tokenID TokenId) (*Token, error) {
	var token Token
	ok, err := c.getJSON(fmt.Sprintf(tokenKeyFmt, tokenID), &token)
	if err != nil || !ok {
		return nil, err
	}
	return &token, nil
}

func (c *NftContract) saveToken(token *Token) error {
	return c.putJSON(fmt.Sprintf(tokenKeyFmt, token.TokenID), token)
}

func (c *NftContract) loadOwnedTokens(owner AccountId) ([]TokenId, error) {
	var ids []TokenId
	if _, err := c.getJSON(fmt.Sprintf(ownerKeyFmt, owner), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *NftContract) saveOwnedTokens(owner AccountId, ids []TokenId) error {
	key := fmt.Sprintf(ownerKeyFmt, owner)
	if len(ids) == 0 {
		return c.store.Delete([]byte(key))
	}
	return c.putJSON(key, ids)
}

func (c *NftContract) appendOwnedToken(owner AccountId, tokenID TokenId) error {
	ids, err := c.loadOwnedTokens(owner)
	if err != nil {
		return err
	}
	return c.saveOwnedTokens(owner, append(ids, tokenID))
}

func (c *NftContract) removeOwnedToken(owner AccountId, tokenID TokenId) error {
	ids, err := c.loadOwnedTokens(owner)
	if err != nil {
		return err
	}
	for i, id := range ids {
		if id == tokenID {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return c.saveOwnedTokens(owner, ids)
}

// loadTokenLedger returns every live token id in claim order.
func (c *NftContract) loadTokenLedger() ([]TokenId, error) {
	var ids []TokenId
	if _, err := c.getJSON(ledgerKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *NftContract) saveTokenLedger(ids []TokenId) error {
	if len(ids) == 0 {
		return c.store.Delete([]byte(ledgerKey))
	}
	return c.putJSON(ledgerKey, ids)
}
