package core

// Enumeration views over the ledger and registry. Views never mutate state
// and page through the stable listing order, which is claim order for the
// global list and insertion order for the per-owner lists.

import (
	"fmt"
	"strings"
)

// NftTotalSupply returns the number of live tokens.
func (c *NftContract) NftTotalSupply() (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids, err := c.loadTokenLedger()
	if err != nil {
		return 0, err
	}
	return uint64(len(ids)), nil
}

// NftSupplyForOwner returns how many tokens owner holds.
func (c *NftContract) NftSupplyForOwner(owner AccountId) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids, err := c.loadOwnedTokens(owner)
	if err != nil {
		return 0, err
	}
	return uint64(len(ids)), nil
}

// NftTokens pages through all live tokens. A nil from starts at the
// beginning, a nil limit means unbounded.
func (c *NftContract) NftTokens(from *uint64, limit *uint32) ([]Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids, err := c.loadTokenLedger()
	if err != nil {
		return nil, err
	}
	return c.tokensAt(paginate(ids, from, limit))
}

// NftTokensForOwner pages through owner's tokens in acquisition order.
func (c *NftContract) NftTokensForOwner(owner AccountId, from *uint64, limit *uint32) ([]Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids, err := c.loadOwnedTokens(owner)
	if err != nil {
		return nil, err
	}
	return c.tokensAt(paginate(ids, from, limit))
}

// NftToken returns the token or nil when absent.
func (c *NftContract) NftToken(tokenID TokenId) (*Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadToken(tokenID)
}

// NftTokenURI joins the contract base URI and the token's gate id. It
// returns nil when the token does not exist or no base URI is configured.
func (c *NftContract) NftTokenURI(tokenID TokenId) (*string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token, err := c.loadToken(tokenID)
	if err != nil || token == nil {
		return nil, err
	}
	st, err := c.loadState()
	if err != nil {
		return nil, err
	}
	if st.Metadata.BaseURI == nil {
		return nil, nil
	}
	base := *st.Metadata.BaseURI
	var uri string
	if strings.HasSuffix(base, "/") {
		uri = base + string(token.GateID)
	} else {
		uri = base + "/" + string(token.GateID)
	}
	return &uri, nil
}

// GetTokensByOwner returns all of owner's tokens.
func (c *NftContract) GetTokensByOwner(owner AccountId) ([]Token, error) {
	return c.NftTokensForOwner(owner, nil, nil)
}

// GetTokensByOwnerAndGateID returns owner's tokens claimed from gateID.
func (c *NftContract) GetTokensByOwnerAndGateID(gateID GateId, owner AccountId) ([]Token, error) {
	tokens, err := c.GetTokensByOwner(owner)
	if err != nil {
		return nil, err
	}
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.GateID == gateID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *NftContract) tokensAt(ids []TokenId) ([]Token, error) {
	out := make([]Token, 0, len(ids))
	for _, id := range ids {
		token, err := c.loadToken(id)
		if err != nil {
			return nil, err
		}
		if token == nil {
			return nil, fmt.Errorf("ledger references missing token ID `U64(%d)`", id)
		}
		out = append(out, *token)
	}
	return out, nil
}

func paginate(ids []TokenId, from *uint64, limit *uint32) []TokenId {
	start := uint64(0)
	if from != nil {
		start = *from
	}
	if start >= uint64(len(ids)) {
		return nil
	}
	end := uint64(len(ids))
	if limit != nil && start+uint64(*limit) < end {
		end = start + uint64(*limit)
	}
	return ids[start:end]
}
