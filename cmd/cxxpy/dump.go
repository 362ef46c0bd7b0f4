package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cxxpy/internal/ast"
	"cxxpy/internal/astio"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file>",
	Short: "Print a decoded syntax tree",
	Long: `Dump decodes an AST export and prints its tree, or re-encodes it into
another format with --to`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("format", "auto", "input format (auto|json|msgpack|cbor)")
	dumpCmd.Flags().String("to", "", "re-encode into json|msgpack|cbor instead of printing the tree")
	dumpCmd.Flags().StringP("out", "o", "", "write the re-encoded tree to this file")
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := astio.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	if format == astio.FormatAuto {
		format = astio.FormatFromPath(path)
	}
	toStr, err := cmd.Flags().GetString("to")
	if err != nil {
		return fmt.Errorf("failed to get to flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	decls, err := astio.Decode(data, format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if toStr == "" {
		for _, d := range decls {
			if err := ast.DumpDecl(cmd.OutOrStdout(), d); err != nil {
				return err
			}
		}
		return nil
	}

	to, err := astio.ParseFormat(toStr)
	if err != nil {
		return err
	}
	if to == astio.FormatAuto {
		return fmt.Errorf("--to needs an explicit format")
	}
	encoded, err := astio.Encode(decls, to)
	if err != nil {
		return err
	}
	if outPath != "" {
		return os.WriteFile(outPath, encoded, 0o644)
	}
	if to != astio.FormatJSON && isTerminal(os.Stdout) {
		return fmt.Errorf("refusing to write %s to a terminal, use --out", to)
	}
	_, err = cmd.OutOrStdout().Write(encoded)
	return err
}
