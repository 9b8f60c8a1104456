package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/client"
)

// resultCommand creates the command fetching a job's document.
func (c *CLI) resultCommand() *cobra.Command {
	var (
		server string
		local  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "result <job-id>",
		Short: "Fetch the S.json document of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.fetchResult(cmd, args[0], server, local)
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
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", client.DefaultBaseURL, "API base URL")
	cmd.Flags().BoolVar(&local, "local", false, "read from the local jobs directory instead of the API")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to this file")
	return cmd
}

// fetchResult returns the document bytes of jobID, either from the local
// jobs directory or from the API at server.
func (c *CLI) fetchResult(cmd *cobra.Command, jobID, server string, local bool) ([]byte, error) {
	ctx := cmd.Context()
	if !local {
		return client.New(server).FetchResultRaw(ctx, jobID)
	}

	_, orch, err := c.openOrchestrator(ctx)
	if err != nil {
		return nil, err
	}
	defer orch.Close()
	return orch.Result(ctx, jobID)
}
