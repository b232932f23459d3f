package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Published games catalog commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesShowCmd())
	cmd.AddCommand(newGamesPublishCmd())
	cmd.AddCommand(newGamesUpdateCmd())
	cmd.AddCommand(newGamesDeleteCmd())
	cmd.AddCommand(newGamesVoteCmd())
	cmd.AddCommand(newGamesBadgeCmd())

	return cmd
}

func gamePath(id string) string {
	return "/api/v1/games/" + pathEscape(id)
}

// parseBadge parses "name|description|icon"
func parseBadge(raw string) (Badge, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 3 {
		return Badge{}, fmt.Errorf("badge %q must be name|description|icon", raw)
	}
	return Badge{
		Name:        strings.TrimSpace(parts[0]),
		Description: strings.TrimSpace(parts[1]),
		Icon:        strings.TrimSpace(parts[2]),
	}, nil
}

func parseBadges(raws []string) ([]map[string]string, error) {
	badges := make([]map[string]string, 0, len(raws))
	for _, raw := range raws {
		b, err := parseBadge(raw)
		if err != nil {
			return nil, err
		}
		badges = append(badges, map[string]string{
			"name":        b.Name,
			"description": b.Description,
			"icon":        b.Icon,
		})
	}
	return badges, nil
}

func newGamesListCmd() *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published games",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games"
			if mine {
				path = "/api/v1/games/mine"
			}

			var result GameList
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Only games published by the logged-in user")

	return cmd
}

func newGamesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGamesPublishCmd() *cobra.Command {
	var name, description string
	var badges []string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a game as the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			parsed, err := parseBadges(badges)
			if err != nil {
				return err
			}

			req := map[string]any{
				"name":        name,
				"description": description,
				"badges":      parsed,
			}
			var result Game

			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Game description")
	cmd.Flags().StringArrayVar(&badges, "badge", nil, "Badge as name|description|icon (repeatable)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGamesUpdateCmd() *cobra.Command {
	var name, description string
	var badges []string
	var clearBadges bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a game's name, description or badges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("name") {
				req["name"] = name
			}
			if cmd.Flags().Changed("description") {
				req["description"] = description
			}
			if clearBadges || len(badges) > 0 {
				parsed, err := parseBadges(badges)
				if err != nil {
					return err
				}
				req["badges"] = parsed
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to update: pass --name, --description, --badge or --clear-badges")
			}

			var result Game
			if err := client.Patch(cmd.Context(), gamePath(args[0]), req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringArrayVar(&badges, "badge", nil, "Replacement badge as name|description|icon (repeatable)")
	cmd.Flags().BoolVar(&clearBadges, "clear-badges", false, "Remove all badges")

	return cmd
}

func newGamesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), gamePath(args[0])); err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("Deleted game %s", args[0]))
			return nil
		},
	}
}

func newGamesVoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "vote <id> <like|dislike>",
		Short:     "Vote on a game; repeating a vote withdraws it",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"like", "dislike"},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"vote": args[1]}
			var result Game

			if err := client.Post(cmd.Context(), gamePath(args[0])+"/vote", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGamesBadgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Manage a game's badges",
	}

	cmd.AddCommand(newGamesBadgeAddCmd())
	cmd.AddCommand(newGamesBadgeRemoveCmd())

	return cmd
}

func newGamesBadgeAddCmd() *cobra.Command {
	var name, description, icon string

	cmd := &cobra.Command{
		Use:   "add <game-id>",
		Short: "Add a badge to a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":        name,
				"description": description,
				"icon":        icon,
			}
			var result Badge

			if err := client.Post(cmd.Context(), gamePath(args[0])+"/badges", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Badge name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Badge description (required)")
	cmd.Flags().StringVar(&icon, "icon", "", "Badge icon (required)")

	return cmd
}

func newGamesBadgeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <game-id> <badge-id>",
		Short: "Remove a badge from a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := gamePath(args[0]) + "/badges/" + pathEscape(args[1])
			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("Removed badge %s", args[1]))
			return nil
		},
	}
}
