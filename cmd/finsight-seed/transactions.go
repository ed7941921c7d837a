package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Thaonnor/finsight/internal/cli"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List and edit an account's transactions",
		Long: `List the transactions booked against an account, oldest first.
Debits are shown as negative amounts.`,
		Args: cobra.ExactArgs(1),
		RunE: runListTransactions,
	}

	cmd.AddCommand(recategorizeTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID: %w", what, err)
	}
	return id, nil
}

func runListTransactions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	accountID, err := parseID(args[0], "account")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := store.GetTransactionsByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	names := make(map[int64]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	return renderTransactions(cmd, txns, names)
}

func renderTransactions(cmd *cobra.Command, txns []model.Transaction, categoryNames map[int64]string) error {
	out := cmd.OutOrStdout()

	if len(txns) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No transactions for this account."))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("DATE"),
		cli.TableHeaderStyle.Render("DESCRIPTION"),
		cli.TableHeaderStyle.Render("CATEGORY"),
		cli.TableHeaderStyle.Render("AMOUNT"),
	}, "\t"))

	var net int64
	for i := range txns {
		txn := &txns[i]
		category, ok := categoryNames[txn.CategoryID]
		if !ok {
			category = fmt.Sprintf("#%d", txn.CategoryID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			txn.ID,
			txn.FormattedDate(),
			txn.Description,
			category,
			cli.FormatAmount(txn.SignedCents(), formatCents(txn.SignedCents())),
		)
		net += txn.SignedCents()
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d transactions, net %s\n", len(txns), cli.FormatAmount(net, formatCents(net)))
	return nil
}

func recategorizeTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recategorize <id> <category>",
		Short: "File a transaction under another category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "transaction")
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := store.GetTransaction(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get transaction: %w", err)
			}

			category, err := store.GetCategoryByName(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to find category %q: %w", args[1], err)
			}

			txn.CategoryID = category.ID
			if err := store.UpdateTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Moved transaction %d to %s", id, category.Name)))
			return nil
		},
	}
}

func deleteTransactionCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "transaction")
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Are you sure you want to delete transaction %d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
				return nil
			}

			if err := store.DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
