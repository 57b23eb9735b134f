package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitease/internal/calculator"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
)

func newBalancesCmd() *cobra.Command {
	var (
		groupID  string
		simplify bool
	)
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print who owes whom in a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()
			return printBalances(cmd.Context(), cmd.OutOrStdout(), store, groupID, simplify)
		},
	}
	cmd.Flags().StringVarP(&groupID, "group", "g", "", "group ID")
	cmd.Flags().BoolVar(&simplify, "simplify", false, "print the minimal settlement plan instead of pairwise debts")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func printBalances(ctx context.Context, w io.Writer, store storage.Store, groupID string, simplify bool) error {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load group %s: %w", groupID, err)
	}
	expenses, err := store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	settlements, err := store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return err
	}

	debts := calculator.ComputeGroupBalances(group.Members, expenses, settlements)
	if simplify {
		debts = calculator.SimplifyDebts(debts)
	}

	users, err := store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s (%s)\n", group.Name, group.Currency)
	if len(debts) == 0 {
		fmt.Fprintln(w, "All settled up.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tAMOUNT")
	for _, d := range debts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", displayName(users, d.From), displayName(users, d.To), d.Amount.StringFixed(2))
	}
	return tw.Flush()
}

func displayName(users map[string]*models.User, id string) string {
	if u, ok := users[id]; ok && u.Name != "" {
		return u.Name
	}
	return id
}
