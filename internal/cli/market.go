package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMarketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Marketplace commands",
	}

	cmd.AddCommand(newMarketListCmd())
	cmd.AddCommand(newMarketBuyCmd())

	return cmd
}

func newMarketListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ItemList

			if err := client.Get(cmd.Context(), "/api/v1/market/items", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newMarketBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy an item with the logged-in user's coins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Purchase

			path := fmt.Sprintf("/api/v1/market/items/%s/purchase", pathEscape(args[0]))
			if err := client.Post(cmd.Context(), path, nil, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
