package cli

// ──────────────────────────────────────────────────────────────────────────────
// MintGate CLI – shared middleware and helpers
// ──────────────────────────────────────────────────────────────────────────────
// Every command group funnels through cliInitMiddleware, which loads the
// environment, configures logging and opens the contract store exactly once.
// Handler identifiers are uniquely prefixed per file (gate*, nft*, mkt*) to
// avoid clashes between command modules.
// ──────────────────────────────────────────────────────────────────────────────

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	core "github.com/epam/mintgate/core"
	"github.com/epam/mintgate/pkg/config"
	"github.com/epam/mintgate/pkg/utils"
)

var (
	cliStore    *core.SnapshotStore
	cliContract *core.NftContract
	cliMarket   *core.Marketplace
	cliLogger   = logrus.StandardLogger()
	cliOnce     sync.Once
)

func cliInitMiddleware(cmd *cobra.Command, _ []string) error {
	var err error
	cliOnce.Do(func() {
		_ = godotenv.Load()

		lvl := utils.EnvOrDefault("LOG_LEVEL", "info")
		lv, e := logrus.ParseLevel(lvl)
		if e != nil {
			err = e
			return
		}
		cliLogger.SetLevel(lv)

		cfg, e := config.Load(os.Getenv("MINTGATE_ENV"))
		if e != nil {
			cliLogger.Debugf("config files unavailable, using environment: %v", e)
			cfg = config.LoadFromEnv()
		}

		path := utils.EnvOrDefault("MINTGATE_SNAPSHOT", "./mintgate.db")
		cliStore, e = core.OpenSnapshotStore(path)
		if e != nil {
			err = e
			return
		}

		env := core.NewCallerEnv(core.AccountId(cfg.Contract.AdminID))
		cliContract, e = core.LoadContract(cliStore, env)
		if e != nil {
			err = fmt.Errorf("contract not deployed at %s, run `mintgate init` first", path)
			return
		}
		market := core.AccountId(utils.EnvOrDefault("MINTGATE_MARKET_ACCOUNT", "market.mintgate"))
		cliMarket = core.NewMarketplace(cliContract, market, cliStore)
	})
	return err
}

// cliCallerContract attributes contract calls to the --as flag, falling back
// to the MINTGATE_CALLER environment variable.
func cliCallerContract(cmd *cobra.Command) (*core.NftContract, error) {
	caller, _ := cmd.Flags().GetString("as")
	if caller == "" {
		caller = os.Getenv("MINTGATE_CALLER")
	}
	if caller == "" {
		return nil, fmt.Errorf("caller not set, use --as or MINTGATE_CALLER")
	}
	return cliContract.AsCaller(core.AccountId(caller)), nil
}
