package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/normalize"
)

// normalizeCommand creates the command converting solver text output into
// an S.json document without running the solver.
func (c *CLI) normalizeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "normalize <out.txt|->",
		Short: "Convert solver output text into an S.json document",
		Long: `Convert a solver output file (or stdin with "-") into {"S": [[...]]}.

The dominant block of equally wide integer rows is selected and re-aligned
into an upper-triangular square matrix. The document is written to stdout
unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			res, err := normalize.NormalizeReader(bytes.NewReader(raw))
			if err != nil {
				return err
			}
			logger.Debug("normalized",
				"lines", res.Stats.Lines,
				"rows", res.Stats.Rows,
				"block_rows", res.Stats.BlockRows,
				"columns", res.Stats.Columns,
				"dimension", res.Stats.Dimension)
			if res.Degenerate {
				logger.Warn("no row with at least two integers, used padded fallback block")
			}

			data, err := res.Document.Render()
			if err != nil {
				return err
			}
			if output == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Wrote %d×%d matrix", res.Stats.Dimension, res.Stats.Dimension)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to this file")
	return cmd
}
