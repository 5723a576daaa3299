package services

import (
	core "github.com/epam/mintgate/core"
	"github.com/epam/mintgate/pkg/config"
)

// NftService wraps the contract and the marketplace used by the HTTP API.
// Callers are attributed per request, so the service keeps the base handle
// and derives per-caller views.
type NftService struct {
	contract *core.NftContract
	market   *core.Marketplace
}

// NewService attaches to an existing deployment in store, or performs the
// initial deployment from cfg when the store is still empty.
func NewService(store core.KVStore, cfg *config.Config) (*NftService, error) {
	env := core.NewCallerEnv(core.AccountId(cfg.Contract.AdminID))

	contract, err := core.LoadContract(store, env)
	if err != nil {
		contract, err = deploy(store, env, cfg)
		if err != nil {
			return nil, err
		}
	}

	marketAccount := core.AccountId(cfg.Contract.MarketAccount)
	if marketAccount == "" {
		marketAccount = "market.mintgate"
	}
	return &NftService{
		contract: contract,
		market:   core.NewMarketplace(contract, marketAccount, store),
	}, nil
}

func deploy(store core.KVStore, env core.Runtime, cfg *config.Config) (*core.NftContract, error) {
	minRoyalty, err := core.ParseFraction(cfg.Contract.MinRoyalty)
	if err != nil {
		return nil, err
	}
	maxRoyalty, err := core.ParseFraction(cfg.Contract.MaxRoyalty)
	if err != nil {
		return nil, err
	}
	fee, err := core.ParseFraction(cfg.Contract.MintgateFee)
	if err != nil {
		return nil, err
	}
	metadata := core.NFTContractMetadata{
		Spec:   "mg-nft-1.0.0",
		Name:   cfg.Contract.Name,
		Symbol: cfg.Contract.Symbol,
	}
	if cfg.Contract.BaseURI != "" {
		base := cfg.Contract.BaseURI
		metadata.BaseURI = &base
	}
	return core.InitContract(
		store,
		env,
		core.AccountId(cfg.Contract.AdminID),
		metadata,
		minRoyalty,
		maxRoyalty,
		fee,
		core.AccountId(cfg.Contract.FeeAccountID),
	)
}

// As returns the contract attributed to caller.
func (s *NftService) As(caller core.AccountId) *core.NftContract {
	return s.contract.AsCaller(caller)
}

// Views returns the contract for read-only access.
func (s *NftService) Views() *core.NftContract { return s.contract }

// Market returns the marketplace consumer.
func (s *NftService) Market() *core.Marketplace { return s.market }
