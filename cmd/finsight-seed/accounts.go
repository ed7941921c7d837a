package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Thaonnor/finsight/internal/cli"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/spf13/cobra"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, and archive the accounts transactions are booked against.`,
		Args:  cobra.NoArgs,
		RunE:  runListAccounts,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE:  runListAccounts,
	})
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(archiveAccountCmd())

	return cmd
}

func runListAccounts(cmd *cobra.Command, _ []string) error {
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

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	return renderAccounts(cmd, accounts)
}

func renderAccounts(cmd *cobra.Command, accounts []model.Account) error {
	out := cmd.OutOrStdout()

	if len(accounts) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No accounts yet. Run finsight-seed to create some."))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("NAME"),
		cli.TableHeaderStyle.Render("TYPE"),
		cli.TableHeaderStyle.Render("STATUS"),
	}, "\t"))

	for _, acc := range accounts {
		status := "active"
		if acc.Archived {
			status = "archived"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.Type, status)
	}

	return w.Flush()
}

func addAccountCmd() *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			typ, err := model.ParseAccountType(accountType)
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

			acc, err := store.CreateAccount(ctx, args[0], typ)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created account %s (%d)", acc.Name, acc.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeChecking), "Account type (checking, savings)")

	return cmd
}

func archiveAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive an account",
		Long: `Archive an account. Its transactions are kept and it still receives
transactions from future seed runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "account")
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

			if err := store.ArchiveAccount(ctx, id); err != nil {
				return fmt.Errorf("failed to archive account: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Archived account %d", id)))
			return nil
		},
	}
}
