package core

// Marketplace consumer. After an owner approves the marketplace account for
// a token, the marketplace records a listing and can later settle a sale by
// driving NftTransferPayout. The NFT core never moves funds; the payout
// split stored on the closed listing is what the settlement layer pays out.

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MarketListing is one token offered for sale, backed by its approval.
type MarketListing struct {
	ID         string    `json:"id"`
	GateID     GateId    `json:"gate_id"`
	TokenID    TokenId   `json:"token_id"`
	Seller     AccountId `json:"seller"`
	ApprovalID uint64    `json:"approval_id"`
	MinPrice   Balance   `json:"min_price"`
	CreatedAt  time.Time `json:"created_at"`
	Sold       bool      `json:"sold"`
	Buyer      AccountId `json:"buyer,omitempty"`
	SalePrice  *Balance  `json:"sale_price,omitempty"`
	Payout     Payout    `json:"payout,omitempty"`
}

// Marketplace consumes token approvals granted to its account.
type Marketplace struct {
	AccountID AccountId

	nft   *NftContract
	store KVStore
}

// NewMarketplace binds a marketplace to the NFT contract. Calls made by the
// marketplace against the contract are attributed to account.
func NewMarketplace(contract *NftContract, account AccountId, store KVStore) *Marketplace {
	return &Marketplace{
		AccountID: account,
		nft:       contract.AsCaller(account),
		store:     store,
	}
}

func (m *Marketplace) listingKey(id string) string {
	return fmt.Sprintf("market:list:%s", id)
}

func (m *Marketplace) saveListing(l *MarketListing) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return m.store.Set([]byte(m.listingKey(l.ID)), raw)
}

// ListToken records a listing for a token whose owner has approved this
// marketplace. The minimum price and approval id are read off the token.
func (m *Marketplace) ListToken(tokenID TokenId) (*MarketListing, error) {
	logger := zap.L().Sugar()

	token, err := m.nft.NftToken(tokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("Token ID `U64(%d)` was not found", tokenID)
	}
	approval, ok := token.Approvals[m.AccountID]
	if !ok {
		return nil, fmt.Errorf("token `U64(%d)` is not approved for marketplace `%s`", tokenID, m.AccountID)
	}

	l := &MarketListing{
		ID:         uuid.New().String(),
		GateID:     token.GateID,
		TokenID:    tokenID,
		Seller:     token.OwnerID,
		ApprovalID: approval.ApprovalID,
		MinPrice:   approval.MinPrice,
		CreatedAt:  time.Now().UTC(),
	}
	if err := m.saveListing(l); err != nil {
		return nil, err
	}

	logger.Infow("token listed",
		"listing", l.ID, "token_id", tokenID, "seller", l.Seller, "min_price", l.MinPrice.String())
	return l, nil
}

// GetListing retrieves a listing by id.
func (m *Marketplace) GetListing(id string) (*MarketListing, error) {
	raw, err := m.store.Get([]byte(m.listingKey(id)))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("listing not found")
	}
	var l MarketListing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Listings returns all listings, or those of a specific seller.
func (m *Marketplace) Listings(seller *AccountId) ([]MarketListing, error) {
	it := m.store.Iterator([]byte("market:list:"), nil)
	defer it.Close()
	var out []MarketListing
	for it.Next() {
		var l MarketListing
		if err := json.Unmarshal(it.Value(), &l); err != nil {
			continue
		}
		if seller != nil && l.Seller != *seller {
			continue
		}
		out = append(out, l)
	}
	return out, it.Error()
}

// CancelListing removes a listing that has not been sold yet. The approval
// itself is the owner's to revoke on the NFT contract.
func (m *Marketplace) CancelListing(id string) error {
	l, err := m.GetListing(id)
	if err != nil {
		return err
	}
	if l.Sold {
		return fmt.Errorf("cannot cancel sold listing")
	}
	return m.store.Delete([]byte(m.listingKey(id)))
}

// ExecuteSale settles a listing: the token moves to buyer and the recorded
// payout split of price is stored on the listing and returned.
func (m *Marketplace) ExecuteSale(listingID string, buyer AccountId, price Balance) (Payout, error) {
	logger := zap.L().Sugar()

	l, err := m.GetListing(listingID)
	if err != nil {
		return nil, err
	}
	if l.Sold {
		return nil, fmt.Errorf("listing already sold")
	}
	if price.Cmp(&l.MinPrice.Int) < 0 {
		return nil, fmt.Errorf(
			"price %s is below the minimum price %s of listing %s",
			price.String(), l.MinPrice.String(), listingID)
	}

	approvalID := l.ApprovalID
	payout, err := m.nft.NftTransferPayout(buyer, l.TokenID, &approvalID, nil, &price)
	if err != nil {
		return nil, err
	}

	l.Sold = true
	l.Buyer = buyer
	l.SalePrice = &price
	l.Payout = payout
	if err := m.saveListing(l); err != nil {
		return nil, err
	}

	logger.Infow("sale executed",
		"listing", listingID, "token_id", l.TokenID, "buyer", buyer, "price", price.String())
	return payout, nil
}
