package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"typo3update/internal/diagfmt"
	"typo3update/internal/tokfile"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] <dump>",
	Short: "Print the tokens of a dump",
	Long:  `Print every token of a dump with its index, kind and position; handy for writing sniffs and debugging fixes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	dump, err := tokfile.Read(args[0])
	if err != nil {
		return err
	}
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), dump.Tokens)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), dump.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
