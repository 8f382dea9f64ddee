package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"typo3update/internal/tokfile"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <dump>",
	Short: "Reassemble PHP source from a dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "write the source to this file instead of stdout")
	renderCmd.Flags().Bool("in-place", false, "overwrite the PHP file recorded in the dump")
}

func runRender(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	inPlace, err := cmd.Flags().GetBool("in-place")
	if err != nil {
		return err
	}
	dump, err := tokfile.Read(args[0])
	if err != nil {
		return err
	}
	if inPlace {
		if output != "" {
			return fmt.Errorf("--in-place and --output are mutually exclusive")
		}
		if dump.Path == "" {
			return fmt.Errorf("%s: dump does not record its source path", args[0])
		}
		output = dump.Path
	}
	return writeSource(cmd.OutOrStdout(), output, tokfile.Render(dump.Tokens))
}

func writeSource(stdout io.Writer, path, src string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, src)
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, []byte(src), mode)
}
