package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/store"
)

// jobsCommand creates the command listing recent local jobs.
func (c *CLI) jobsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, orch, err := c.openOrchestrator(ctx)
			if err != nil {
				return err
			}
			defer orch.Close()

			metas, err := orch.Jobs(ctx, limit)
			if err != nil {
				return err
			}
			if len(metas) == 0 {
				printInfo("No jobs yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), jobsTable(metas, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of jobs to show")
	return cmd
}

// jobsTable renders job records newest first.
func jobsTable(metas []*store.Meta, now time.Time) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(metas))
	for _, m := range metas {
		status := m.Status
		if m.ErrorCode != "" {
			status = m.ErrorCode
		}
		size := "—"
		if m.Succeeded() {
			size = strconv.Itoa(m.Dimension)
		}
		rows = append(rows, []string{m.JobID, m.Method, strconv.Itoa(m.Threads), size, status, relativeTime(m.CreatedAt, now)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Job", "Method", "Threads", "N", "Status", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(metas) {
				return lipgloss.NewStyle()
			}
			if col == 4 {
				if metas[row].Succeeded() {
					return lipgloss.NewStyle().Foreground(colorGreen)
				}
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func relativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
