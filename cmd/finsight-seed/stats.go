package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Thaonnor/finsight/internal/cli"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/Thaonnor/finsight/internal/service"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts and per-account totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			counts, err := store.CountRows(ctx)
			if err != nil {
				return err
			}

			summaries, err := store.GetAccountSummaries(ctx)
			if err != nil {
				return err
			}

			return renderStats(cmd, counts, summaries)
		},
	}
}

func renderStats(cmd *cobra.Command, counts service.RowCounts, summaries []service.AccountSummary) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.FormatTitle("Database"))
	fmt.Fprintf(out, "Accounts:     %d\n", counts.Accounts)
	fmt.Fprintf(out, "Categories:   %d\n", counts.Categories)
	fmt.Fprintf(out, "Transactions: %d\n\n", counts.Transactions)

	if len(summaries) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No accounts yet. Run finsight-seed to create some."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle("Accounts"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("NAME"),
		cli.TableHeaderStyle.Render("TYPE"),
		cli.TableHeaderStyle.Render("TXNS"),
		cli.TableHeaderStyle.Render("DEBITS"),
		cli.TableHeaderStyle.Render("CREDITS"),
		cli.TableHeaderStyle.Render("NET"),
		cli.TableHeaderStyle.Render("RANGE"),
	}, "\t"))

	for _, s := range summaries {
		dateRange := "-"
		if s.Count > 0 {
			dateRange = s.FirstBooking.Format(model.DateLayout) + " .. " + s.LastBooking.Format(model.DateLayout)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			s.AccountID,
			s.Name,
			s.Type,
			s.Count,
			formatCents(s.DebitCents),
			formatCents(s.CreditCents),
			formatCents(s.NetCents()),
			dateRange,
		)
	}

	return w.Flush()
}
