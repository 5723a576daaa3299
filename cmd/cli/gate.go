package cli

// ──────────────────────────────────────────────────────────────────────────────
// MintGate Collectible CLI – administer collectibles (gate ids)
// ──────────────────────────────────────────────────────────────────────────────
// Root group   : `gate`
// Micro-routes : create, delete, show, by-creator
// ──────────────────────────────────────────────────────────────────────────────

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	core "github.com/epam/mintgate/core"
)

func gateHandleCreate(cmd *cobra.Command, args []string) error {
	contract, err := cliCallerContract(cmd)
	if err != nil {
		return err
	}
	creator, _ := cmd.Flags().GetString("creator")
	title, _ := cmd.Flags().GetString("title")
	desc, _ := cmd.Flags().GetString("desc")
	supply, _ := cmd.Flags().GetUint16("supply")
	royaltyStr, _ := cmd.Flags().GetString("royalty")

	royalty, err := core.ParseFraction(royaltyStr)
	if err != nil {
		return err
	}
	var media, mediaHash, reference, referenceHash *string
	for flag, target := range map[string]**string{
		"media": &media, "media-hash": &mediaHash,
		"reference": &reference, "reference-hash": &referenceHash,
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			s := v
			*target = &s
		}
	}

	if err := contract.CreateCollectible(
		core.AccountId(creator), core.GateId(args[0]),
		title, desc, supply, royalty,
		media, mediaHash, reference, referenceHash,
	); err != nil {
		return err
	}
	cliLogger.Infof("collectible %s created with supply %d", args[0], supply)
	return nil
}

func gateHandleDelete(cmd *cobra.Command, args []string) error {
	contract, err := cliCallerContract(cmd)
	if err != nil {
		return err
	}
	return contract.DeleteCollectible(core.GateId(args[0]))
}

func gateHandleShow(cmd *cobra.Command, args []string) error {
	col, err := cliContract.GetCollectibleByGateID(core.GateId(args[0]))
	if err != nil {
		return err
	}
	if col == nil {
		return fmt.Errorf("Gate ID `%s` was not found", args[0])
	}
	raw, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func gateHandleByCreator(cmd *cobra.Command, args []string) error {
	cols, err := cliContract.GetCollectiblesByCreator(core.AccountId(args[0]))
	if err != nil {
		return err
	}
	for _, col := range cols {
		fmt.Printf("%-32s supply %3d/%3d royalty %s\n",
			col.GateID, col.CurrentSupply, col.Metadata.Copies, col.Royalty)
	}
	return nil
}

var gateCmd = &cobra.Command{
	Use:               "gate",
	Short:             "Administer collectibles",
	PersistentPreRunE: cliInitMiddleware,
}

var gateCreateCmd = &cobra.Command{Use: "create <gate-id>", Short: "Create a collectible (admin)", Args: cobra.ExactArgs(1), RunE: gateHandleCreate}
var gateDeleteCmd = &cobra.Command{Use: "delete <gate-id>", Short: "Delete an unclaimed collectible", Args: cobra.ExactArgs(1), RunE: gateHandleDelete}
var gateShowCmd = &cobra.Command{Use: "show <gate-id>", Short: "Show a collectible", Args: cobra.ExactArgs(1), RunE: gateHandleShow}
var gateByCreatorCmd = &cobra.Command{Use: "by-creator <account>", Short: "List a creator's collectibles", Args: cobra.ExactArgs(1), RunE: gateHandleByCreator}

func init() {
	gateCreateCmd.Flags().String("as", "", "caller account")
	gateCreateCmd.Flags().String("creator", "", "creator account receiving the royalty")
	gateCreateCmd.Flags().String("title", "", "collectible title")
	gateCreateCmd.Flags().String("desc", "", "collectible description")
	gateCreateCmd.Flags().Uint16("supply", 0, "number of claimable copies")
	gateCreateCmd.Flags().String("royalty", "", "royalty fraction N/D")
	gateCreateCmd.MarkFlagRequired("creator")
	gateCreateCmd.MarkFlagRequired("supply")
	gateCreateCmd.MarkFlagRequired("royalty")
	gateCreateCmd.Flags().String("media", "", "media URL")
	gateCreateCmd.Flags().String("media-hash", "", "media hash")
	gateCreateCmd.Flags().String("reference", "", "reference URL")
	gateCreateCmd.Flags().String("reference-hash", "", "reference hash")

	gateDeleteCmd.Flags().String("as", "", "caller account")

	gateCmd.AddCommand(gateCreateCmd, gateDeleteCmd, gateShowCmd, gateByCreatorCmd)
}

var GateCmd = gateCmd

func RegisterGate(root *cobra.Command) { root.AddCommand(GateCmd) }
