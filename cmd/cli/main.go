package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/payapi"
	"github.com/iho/payapi/client"
)

var (
	timeout time.Duration
	asJSON  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payapi-cli",
		Short: "payapi CLI tool",
		Long:  `A command line interface for the payments API transfer endpoints. Reads PAYAPI_KEY and PAYAPI_BASE_URL from the environment.`,
	}

	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")

	transfersCmd := &cobra.Command{
		Use:   "transfers",
		Short: "Transfer operations",
	}
	transfersCmd.AddCommand(listTransfersCmd())
	transfersCmd.AddCommand(getTransferCmd())
	transfersCmd.AddCommand(createTransferCmd())
	rootCmd.AddCommand(transfersCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listTransfersCmd() *cobra.Command {
	var (
		limit         int64
		startingAfter string
		endingBefore  string
		createdAfter  string
		createdBefore string
		expand        []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transfers, most recently created first",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := client.FromEnv()
			if err != nil {
				return err
			}

			params := &payapi.TransferListParams{Expand: expand}
			if limit > 0 {
				params.Limit = payapi.Int64(limit)
			}
			if startingAfter != "" {
				params.StartingAfter = payapi.String(startingAfter)
			}
			if endingBefore != "" {
				params.EndingBefore = payapi.String(endingBefore)
			}
			created, err := createdRange(createdAfter, createdBefore)
			if err != nil {
				return err
			}
			params.Created = created

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			list, err := payapi.ListTransfers(ctx, backend, params)
			if err != nil {
				return err
			}

			if asJSON {
				printJSON(list)
				return nil
			}
			printTransferTable(list.Data, list.HasMore)
			return nil
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", 0, "Maximum number of transfers (1-100)")
	cmd.Flags().StringVar(&startingAfter, "starting-after", "", "Cursor: page after this transfer id")
	cmd.Flags().StringVar(&endingBefore, "ending-before", "", "Cursor: page before this transfer id")
	cmd.Flags().StringVar(&createdAfter, "created-after", "", "Only transfers created at or after this RFC3339 time")
	cmd.Flags().StringVar(&createdBefore, "created-before", "", "Only transfers created before this RFC3339 time")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "Relations to expand, e.g. data.destination")

	return cmd
}

func getTransferCmd() *cobra.Command {
	var expand []string

	cmd := &cobra.Command{
		Use:   "get <transfer-id>",
		Short: "Retrieve a single transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := client.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			transfer, err := payapi.GetTransfer(ctx, backend, args[0], &payapi.TransferParams{Expand: expand})
			if err != nil {
				return err
			}

			printJSON(transfer)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&expand, "expand", nil, "Relations to expand, e.g. destination")

	return cmd
}

func createTransferCmd() *cobra.Command {
	var (
		amount      int64
		currency    string
		destination string
		description string
		group       string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Send funds to a connected account",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := client.FromEnv()
			if err != nil {
				return err
			}

			params := &payapi.TransferCreateParams{
				Amount:      amount,
				Currency:    payapi.Currency(currency),
				Destination: destination,
			}
			if description != "" {
				params.Description = payapi.String(description)
			}
			if group != "" {
				params.TransferGroup = payapi.String(group)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			transfer, err := payapi.CreateTransfer(ctx, backend, params)
			if err != nil {
				return err
			}

			printJSON(transfer)
			return nil
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount in minor currency units")
	cmd.Flags().StringVar(&currency, "currency", "usd", "Three-letter currency code")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination account id")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&group, "transfer-group", "", "Transfer group correlation string")

	return cmd
}

func createdRange(after, before string) (*payapi.RangeQuery, error) {
	if after == "" && before == "" {
		return nil, nil
	}

	created := &payapi.RangeQuery{}
	if after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			return nil, fmt.Errorf("invalid --created-after: %w", err)
		}
		created.GreaterThanOrEqual = payapi.NewTimestamp(t)
	}
	if before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			return nil, fmt.Errorf("invalid --created-before: %w", err)
		}
		created.LessThan = payapi.NewTimestamp(t)
	}
	return created, nil
}

func printTransferTable(transfers []payapi.Transfer, hasMore bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAMOUNT\tCREATED\tREVERSED\tDESCRIPTION")
	for _, t := range transfers {
		description := ""
		if t.Description != nil {
			description = truncate(*t.Description, 32)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n",
			t.ID,
			formatAmount(t.Amount, t.Currency),
			t.Created.Time().Format(time.RFC3339),
			t.Reversed,
			description,
		)
	}
	w.Flush()

	if hasMore {
		fmt.Println("(more results available)")
	}
}

// formatAmount renders a minor-unit amount in major units with the currency
// code, e.g. 1050 usd -> "10.50 USD".
func formatAmount(amount int64, currency payapi.Currency) string {
	value := payapi.AmountDecimal(amount, currency)
	return value.StringFixed(currency.Exponent()) + " " + strings.ToUpper(string(currency))
}

func printJSON(data any) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render JSON: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
