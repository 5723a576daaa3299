package core

// Payout engine. Splits a sale price into marketplace fee, creator royalty
// and seller proceeds with exact integer arithmetic. The seller share is the
// residual, so the three shares always sum to the price.

import (
	"fmt"

	"go.uber.org/zap"
)

// Payout maps each receiving account to its exact share of a sale price.
type Payout map[AccountId]Balance

func (p Payout) add(account AccountId, amount Balance) {
	if prev, ok := p[account]; ok {
		p[account] = prev.Plus(amount)
		return
	}
	p[account] = amount
}

// NftPayout computes the split of a hypothetical sale of the token at
// balance. Entries for the same account are merged, so when the creator
// also owns the token the map has one combined entry for them.
func (c *NftContract) NftPayout(tokenID TokenId, balance Balance) (Payout, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.payoutLocked(tokenID, balance)
}

func (c *NftContract) payoutLocked(tokenID TokenId, balance Balance) (Payout, error) {
	token, err := c.loadToken(tokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("Token ID `U64(%d)` was not found", tokenID)
	}
	col, err := c.loadCollectible(token.GateID)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, fmt.Errorf("Gate ID `%s` was not found", token.GateID)
	}
	st, err := c.loadState()
	if err != nil {
		return nil, err
	}

	// Fee and royalty are both fractions of the full price; creation
	// guarantees royalty + fee <= 1, so the seller residual cannot go
	// negative.
	fee := st.MintgateFee.MultBalance(balance)
	creatorCut := col.Royalty.MultBalance(balance)
	sellerCut := balance.Sub(fee).Sub(creatorCut)

	payout := Payout{}
	payout.add(st.FeeAccountID, fee)
	payout.add(col.CreatorID, creatorCut)
	payout.add(token.OwnerID, sellerCut)
	return payout, nil
}

// NftTransferPayout performs a transfer and, when balance is given, returns
// the payout of a sale at that price. The split is captured against the
// owner before the transfer changes ownership.
func (c *NftContract) NftTransferPayout(
	receiver AccountId,
	tokenID TokenId,
	approvalID *uint64,
	memo *string,
	balance *Balance,
) (Payout, error) {
	logger := zap.L().Sugar()

	c.mu.Lock()
	defer c.mu.Unlock()

	var payout Payout
	if balance != nil {
		var err error
		payout, err = c.payoutLocked(tokenID, *balance)
		if err != nil {
			return nil, err
		}
	}
	if err := c.transferLocked(receiver, tokenID, approvalID, memo, logger); err != nil {
		return nil, err
	}
	return payout, nil
}
