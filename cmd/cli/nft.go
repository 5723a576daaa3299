package cli

// ──────────────────────────────────────────────────────────────────────────────
// MintGate Token CLI – claim, transfer and inspect tokens
// ──────────────────────────────────────────────────────────────────────────────
// Root group   : `nft`
// Micro-routes : claim, burn, transfer, approve, revoke, show, list, owner,
//                uri, payout
// ──────────────────────────────────────────────────────────────────────────────

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	core "github.com/epam/mintgate/core"
)

func nftParseTokenID(arg string) (core.TokenId, error) {
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad token id `%s`", arg)
	}
	return core.TokenId(n), nil
}

func nftHandleClaim(cmd *cobra.Command, args []string) error {
	contract, err := cliCallerContract(cmd)
	if err != nil {
		return err
	}
	tokenID, err := contract.ClaimToken(core.GateId(args[0]))
	if err != nil {
		return err
	}
	fmt.Printf("claimed token %d from %s\n", tokenID, args[0])
	return nil
}

func nftHandleBurn(cmd *cobra.Command, args []string) error {
	contract, err := cliCallerContract(cmd)
	if err != nil {
		return err
	}
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	return contract.BurnToken(tokenID)
}

func nftHandleTransfer(cmd *cobra.Command, args []string) error {
	contract, err := cliCallerContract(cmd)
	if err != nil {
		return err
	}
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	receiver, _ := cmd.Flags().GetString("to")
	var approvalID *uint64
	if cmd.Flags().Changed("approval-id") {
		id, _ := cmd.Flags().GetUint64("approval-id")
		approvalID = &id
	}
	var memo *string
	if v, _ := cmd.Flags().GetString("memo"); v != "" {
		memo = &v
	}
	return contract.NftTransfer(core.AccountId(receiver), tokenID, approvalID, memo)
}

func nftHandleApprove(cmd *cobra.Command, args []string) error {
	contract, err := cliCallerContract(cmd)
	if err != nil {
		return err
	}
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	account, _ := cmd.Flags().GetString("account")
	minPrice, _ := cmd.Flags().GetString("min-price")
	raw, err := json.Marshal(map[string]string{"min_price": minPrice})
	if err != nil {
		return err
	}
	msg := string(raw)
	return contract.NftApprove(tokenID, core.AccountId(account), &msg)
}

func nftHandleRevoke(cmd *cobra.Command, args []string) error {
	contract, err := cliCallerContract(cmd)
	if err != nil {
		return err
	}
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	return contract.NftRevokeAll(tokenID)
}

func nftHandleShow(cmd *cobra.Command, args []string) error {
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	token, err := cliContract.NftToken(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("Token ID `U64(%d)` was not found", tokenID)
	}
	raw, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func nftHandleList(cmd *cobra.Command, _ []string) error {
	var from *uint64
	var limit *uint32
	if cmd.Flags().Changed("from") {
		v, _ := cmd.Flags().GetUint64("from")
		from = &v
	}
	if cmd.Flags().Changed("limit") {
		v, _ := cmd.Flags().GetUint32("limit")
		limit = &v
	}
	tokens, err := cliContract.NftTokens(from, limit)
	if err != nil {
		return err
	}
	for _, t := range tokens {
		fmt.Printf("%6d  %-32s %s\n", t.TokenID, t.GateID, t.OwnerID)
	}
	return nil
}

func nftHandleOwner(cmd *cobra.Command, args []string) error {
	tokens, err := cliContract.GetTokensByOwner(core.AccountId(args[0]))
	if err != nil {
		return err
	}
	for _, t := range tokens {
		fmt.Printf("%6d  %-32s\n", t.TokenID, t.GateID)
	}
	return nil
}

func nftHandleURI(cmd *cobra.Command, args []string) error {
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	uri, err := cliContract.NftTokenURI(tokenID)
	if err != nil {
		return err
	}
	if uri == nil {
		return fmt.Errorf("no token URI for token %d", tokenID)
	}
	fmt.Println(*uri)
	return nil
}

func nftHandlePayout(cmd *cobra.Command, args []string) error {
	tokenID, err := nftParseTokenID(args[0])
	if err != nil {
		return err
	}
	balance, err := core.ParseBalance(args[1])
	if err != nil {
		return err
	}
	payout, err := cliContract.NftPayout(tokenID, balance)
	if err != nil {
		return err
	}
	for account, share := range payout {
		fmt.Printf("%-40s %s\n", account, share)
	}
	return nil
}

var nftCmd = &cobra.Command{
	Use:               "nft",
	Short:             "Claim, transfer and inspect tokens",
	PersistentPreRunE: cliInitMiddleware,
}

var nftClaimCmd = &cobra.Command{Use: "claim <gate-id>", Short: "Claim a token", Args: cobra.ExactArgs(1), RunE: nftHandleClaim}
var nftBurnCmd = &cobra.Command{Use: "burn <token-id>", Short: "Burn an owned token", Args: cobra.ExactArgs(1), RunE: nftHandleBurn}
var nftTransferCmd = &cobra.Command{Use: "transfer <token-id>", Short: "Transfer a token", Args: cobra.ExactArgs(1), RunE: nftHandleTransfer}
var nftApproveCmd = &cobra.Command{Use: "approve <token-id>", Short: "Approve a marketplace", Args: cobra.ExactArgs(1), RunE: nftHandleApprove}
var nftRevokeCmd = &cobra.Command{Use: "revoke <token-id>", Short: "Revoke all approvals", Args: cobra.ExactArgs(1), RunE: nftHandleRevoke}
var nftShowCmd = &cobra.Command{Use: "show <token-id>", Short: "Show a token", Args: cobra.ExactArgs(1), RunE: nftHandleShow}
var nftListCmd = &cobra.Command{Use: "list", Short: "List live tokens", Args: cobra.NoArgs, RunE: nftHandleList}
var nftOwnerCmd = &cobra.Command{Use: "owner <account>", Short: "List an owner's tokens", Args: cobra.ExactArgs(1), RunE: nftHandleOwner}
var nftURICmd = &cobra.Command{Use: "uri <token-id>", Short: "Token URI", Args: cobra.ExactArgs(1), RunE: nftHandleURI}
var nftPayoutCmd = &cobra.Command{Use: "payout <token-id> <balance>", Short: "Preview a sale split", Args: cobra.ExactArgs(2), RunE: nftHandlePayout}

func init() {
	for _, c := range []*cobra.Command{nftClaimCmd, nftBurnCmd, nftTransferCmd, nftApproveCmd, nftRevokeCmd} {
		c.Flags().String("as", "", "caller account")
	}

	nftTransferCmd.Flags().String("to", "", "receiver account")
	nftTransferCmd.Flags().Uint64("approval-id", 0, "expected approval id")
	nftTransferCmd.Flags().String("memo", "", "transfer memo")
	nftTransferCmd.MarkFlagRequired("to")

	nftApproveCmd.Flags().String("account", "", "approved account")
	nftApproveCmd.Flags().String("min-price", "", "minimum sale price")
	nftApproveCmd.MarkFlagRequired("account")
	nftApproveCmd.MarkFlagRequired("min-price")

	nftListCmd.Flags().Uint64("from", 0, "start index")
	nftListCmd.Flags().Uint32("limit", 0, "max results")

	nftCmd.AddCommand(nftClaimCmd, nftBurnCmd, nftTransferCmd, nftApproveCmd, nftRevokeCmd,
		nftShowCmd, nftListCmd, nftOwnerCmd, nftURICmd, nftPayoutCmd)
}

var NftCmd = nftCmd

func RegisterNft(root *cobra.Command) { root.AddCommand(NftCmd) }
