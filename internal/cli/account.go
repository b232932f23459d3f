package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account and session commands",
	}

	cmd.AddCommand(newAccountLoginCmd())
	cmd.AddCommand(newAccountLogoutCmd())
	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountAvailableCmd())
	cmd.AddCommand(newAccountDeleteCmd())
	cmd.AddCommand(newAccountMeCmd())
	cmd.AddCommand(newAccountCurrencyCmd())

	return cmd
}

func newAccountLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || pass == "" {
				return fmt.Errorf("--user and --pass are required")
			}

			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result Session

			if err := client.Post(cmd.Context(), "/api/v1/session/login", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAccountLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), "/api/v1/session"); err != nil {
				return err
			}

			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newAccountCreateCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account and log in as it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || pass == "" {
				return fmt.Errorf("--user and --pass are required")
			}

			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result Session

			if err := client.Post(cmd.Context(), "/api/v1/accounts", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username, at least 3 characters (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password, at least 6 characters (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAccountAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available <username>",
		Short: "Check whether a username is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Availability

			path := "/api/v1/accounts/availability?username=" + url.QueryEscape(args[0])
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newAccountDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete without --yes")
			}

			if err := client.Delete(cmd.Context(), "/api/v1/accounts/me"); err != nil {
				return err
			}

			out.PrintMessage("Account deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")

	return cmd
}

func newAccountMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get(cmd.Context(), "/api/v1/session", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newAccountCurrencyCmd() *cobra.Command {
	var delta int64

	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Adjust the logged-in user's balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("delta") {
				return fmt.Errorf("--delta is required")
			}

			req := map[string]int64{"delta": delta}
			var result Session

			if err := client.Post(cmd.Context(), "/api/v1/accounts/me/currency", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&delta, "delta", 0, "Amount to add; negative to subtract (required)")

	return cmd
}
