package cli

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/client"
	apperr "github.com/nuss3d/foldserver/pkg/errors"
	"github.com/nuss3d/foldserver/pkg/job"
)

// foldCommand creates the command folding one sequence.
func (c *CLI) foldCommand() *cobra.Command {
	var (
		method  string
		threads int
		server  string
	)

	cmd := &cobra.Command{
		Use:   "fold <sequence|fasta-file>",
		Short: "Fold a sequence",
		Long: `Fold a sequence with the nuss3d solver.

The argument is either the sequence itself or a FASTA file. By default the
solver runs locally and the job is stored under jobs_dir; with --server the
job is submitted to a running API instead.`,
		Example: `  foldserver fold GGGAAACUCCC --method oryg --threads 4
  foldserver fold hairpin.fasta --server http://localhost:8000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			seq, err := readSequence(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Folding %d nt with %s...", len(apperr.CleanSequence(seq)), method))
			spinner.Start()

			var resp *job.FoldResponse
			if server != "" {
				resp, err = client.New(server).Fold(ctx, seq, method, threads)
			} else {
				resp, err = c.foldLocal(cmd, job.FoldRequest{Sequence: seq, Method: method, Threads: threads})
			}
			if err != nil {
				spinner.StopWithError("Fold failed: " + apperr.UserMessage(err))
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Folded %d nt", resp.Meta.SequenceLength))

			printSuccess("Job %s", StyleNumber.Render(resp.JobID))
			fmt.Println(foldSummary(resp.Meta.Dimension, resp.Meta.Degenerate, resp.Meta.Cached))
			printKeyValue("method", resp.Method)
			printKeyValue("threads", strconv.Itoa(resp.Threads))
			if !resp.Meta.Cached {
				printKeyValue("solver", fmt.Sprintf("%.1f ms", resp.Meta.TimeMS))
			}
			if resp.Meta.ReturnCode != 0 {
				printDetail("solver exited with code %d but wrote %s", resp.Meta.ReturnCode, resp.Meta.OutFile)
			}
			if server == "" {
				printFile(resp.Files.JSON)
			}
			if resp.Meta.Degenerate {
				printWarning("no row had two or more integers; the matrix comes from the padded fallback block")
			}
			printNextStep("View it", fmt.Sprintf("%s view %s", appName, resp.JobID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "oryg", "solver method")
	cmd.Flags().IntVarP(&threads, "threads", "t", min(runtime.NumCPU(), 8), "solver threads")
	cmd.Flags().StringVar(&server, "server", "", "submit to a running API at this URL instead of folding locally")
	return cmd
}

func (c *CLI) foldLocal(cmd *cobra.Command, req job.FoldRequest) (*job.FoldResponse, error) {
	_, orch, err := c.openOrchestrator(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer orch.Close()
	return orch.Fold(cmd.Context(), req)
}

// readSequence returns the sequence given on the command line, or the
// concatenated records of a FASTA file when arg names one.
func readSequence(arg string) (string, error) {
	f, err := os.Open(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return arg, nil
		}
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ">") || strings.HasPrefix(line, ";") {
			continue
		}
		b.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	if b.Len() == 0 {
		return "", apperr.New(apperr.ErrCodeInvalidSequence, "%s contains no sequence", arg)
	}
	return b.String(), nil
}
