package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin commands (requires an admin session)",
	}

	cmd.AddCommand(newAdminGrantCmd())

	return cmd
}

func newAdminGrantCmd() *cobra.Command {
	var user string
	var amount int64

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Give currency to a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}

			req := map[string]any{
				"username": user,
				"amount":   amount,
			}

			if err := client.Post(cmd.Context(), "/api/v1/admin/currency", req, nil); err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("Granted %s to %s", coins(amount), user))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Recipient username (required)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount to grant")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
