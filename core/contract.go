package core

// NftContract is the MintGate non fungible token contract. State lives in a
// KVStore under the collection prefixes below; every entry point runs as a
// single serialized transaction against that state.

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrAdminOnly = errors.New("Operation is allowed only for admin")

// Storage layout. User supplied segments (gate ids, account ids) cannot
// contain ':', so they never collide with these prefixes.
const (
	stateKey      = "nft:state"
	gateKeyFmt    = "nft:gate:%s"
	creatorKeyFmt = "nft:creator:%s"
	tokenKeyFmt   = "nft:token:%020d"
	ownerKeyFmt   = "nft:owner:%s"
	ledgerKey     = "nft:tokens"
)

// NFTContractMetadata describes the whole contract to wallets and UIs.
type NFTContractMetadata struct {
	Spec          string  `json:"spec"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Icon          *string `json:"icon"`
	BaseURI       *string `json:"base_uri"`
	Reference     *string `json:"reference"`
	ReferenceHash *string `json:"reference_hash"`
}

// contractState holds the scalar fields persisted under stateKey.
type contractState struct {
	AdminID      AccountId           `json:"admin_id"`
	Metadata     NFTContractMetadata `json:"metadata"`
	MinRoyalty   Fraction            `json:"min_royalty"`
	MaxRoyalty   Fraction            `json:"max_royalty"`
	MintgateFee  Fraction            `json:"mintgate_fee"`
	FeeAccountID AccountId           `json:"mintgate_fee_account_id"`
	NextTokenID  TokenId             `json:"next_token_id"`
}

type NftContract struct {
	store KVStore
	env   Runtime
	mu    *sync.RWMutex
}

// AsCaller returns a handle on the same contract state whose calls are
// attributed to caller, the way a cross-contract call is attributed to the
// calling contract's account. Both handles share one lock.
func (c *NftContract) AsCaller(caller AccountId) *NftContract {
	clone := *c
	clone.env = NewCallerEnv(caller)
	return &clone
}

// InitContract deploys the contract state into the store. It must be called
// exactly once per deployment.
func InitContract(
	store KVStore,
	env Runtime,
	admin AccountId,
	metadata NFTContractMetadata,
	minRoyalty, maxRoyalty, mintgateFee Fraction,
	feeAccount AccountId,
) (*NftContract, error) {
	logger := zap.L().Sugar()

	for _, f := range []Fraction{minRoyalty, maxRoyalty, mintgateFee} {
		if err := f.Check(); err != nil {
			return nil, err
		}
	}
	if minRoyalty.Cmp(maxRoyalty) > 0 {
		return nil, fmt.Errorf(
			"Min royalty `%s` must be less or equal to max royalty `%s`",
			minRoyalty, maxRoyalty,
		)
	}
	if err := ValidateAccountID(admin); err != nil {
		return nil, err
	}
	if err := ValidateAccountID(feeAccount); err != nil {
		return nil, err
	}

	c := &NftContract{store: store, env: env, mu: new(sync.RWMutex)}
	st := &contractState{
		AdminID:      admin,
		Metadata:     metadata,
		MinRoyalty:   minRoyalty,
		MaxRoyalty:   maxRoyalty,
		MintgateFee:  mintgateFee,
		FeeAccountID: feeAccount,
	}
	if err := c.saveState(st); err != nil {
		return nil, err
	}
	logger.Infow("contract initialized",
		"admin", admin, "fee", mintgateFee.String(), "fee_account", feeAccount)
	return c, nil
}

// LoadContract attaches to a store that InitContract already populated.
func LoadContract(store KVStore, env Runtime) (*NftContract, error) {
	c := &NftContract{store: store, env: env, mu: new(sync.RWMutex)}
	if _, err := c.loadState(); err != nil {
		return nil, err
	}
	return c, nil
}

// NftMetadata returns the contract level metadata.
func (c *NftContract) NftMetadata() (NFTContractMetadata, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, err := c.loadState()
	if err != nil {
		return NFTContractMetadata{}, err
	}
	return st.Metadata, nil
}

// -----------------------------------------------------------------------------
// Permission gates
// -----------------------------------------------------------------------------

func (c *NftContract) requireAdmin(st *contractState) error {
	if c.env.Predecessor() != st.AdminID {
		return ErrAdminOnly
	}
	return nil
}

func (c *NftContract) requireCreatorOrAdmin(st *contractState, col *Collectible) error {
	caller := c.env.Predecessor()
	if caller != st.AdminID && caller != col.CreatorID {
		return fmt.Errorf("Unable to delete gate ID `%s`", col.GateID)
	}
	return nil
}

func (c *NftContract) requireOwner(token *Token) error {
	caller := c.env.Predecessor()
	if token.OwnerID != caller {
		return fmt.Errorf(
			"Token ID `U64(%d)` does not belong to account `%s`", token.TokenID, caller)
	}
	return nil
}

// -----------------------------------------------------------------------------
// State accessors
// -----------------------------------------------------------------------------

func (c *NftContract) loadState() (*contractState, error) {
	raw, err := c.store.Get([]byte(stateKey))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("contract state not initialized")
	}
	var st contractState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *NftContract) saveState(st *contractState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.store.Set([]byte(stateKey), raw)
}

func (c *NftContract) getJSON(key string, out any) (bool, error) {
	raw, err := c.store.Get([]byte(key))
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *NftContract) putJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.Set([]byte(key), raw)
}
