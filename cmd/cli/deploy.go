package cli

// ──────────────────────────────────────────────────────────────────────────────
// MintGate Deploy CLI – one-time contract initialization
// ──────────────────────────────────────────────────────────────────────────────

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	core "github.com/epam/mintgate/core"
	"github.com/epam/mintgate/pkg/config"
	"github.com/epam/mintgate/pkg/utils"
)

func depHandleInit(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("MINTGATE_ENV"))
	if err != nil {
		cliLogger.Debugf("config files unavailable, using environment: %v", err)
		cfg = config.LoadFromEnv()
	}

	path := utils.EnvOrDefault("MINTGATE_SNAPSHOT", "./mintgate.db")
	store, err := core.OpenSnapshotStore(path)
	if err != nil {
		return err
	}

	minRoyalty, err := core.ParseFraction(cfg.Contract.MinRoyalty)
	if err != nil {
		return err
	}
	maxRoyalty, err := core.ParseFraction(cfg.Contract.MaxRoyalty)
	if err != nil {
		return err
	}
	fee, err := core.ParseFraction(cfg.Contract.MintgateFee)
	if err != nil {
		return err
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

	admin := core.AccountId(cfg.Contract.AdminID)
	_, err = core.InitContract(
		store,
		core.NewCallerEnv(admin),
		admin,
		metadata,
		minRoyalty,
		maxRoyalty,
		fee,
		core.AccountId(cfg.Contract.FeeAccountID),
	)
	if err != nil {
		return err
	}
	cliLogger.Infof("contract deployed to %s, admin %s", path, admin)
	return nil
}

var depInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Deploy the contract state into the snapshot store",
	Args:  cobra.NoArgs,
	RunE:  depHandleInit,
}

var InitCmd = depInitCmd

func RegisterInit(root *cobra.Command) { root.AddCommand(InitCmd) }
