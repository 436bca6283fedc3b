// ABOUTME: CLI commands for household profiles
// ABOUTME: List, show, add, update, and delete users
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/habits/internal/models"
)

// NewUserCmd creates the user command group
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage profiles",
		Long: `Manage household profiles.

Creating a profile also creates its default daily Workout goal.
Deleting a profile removes its goals, logs, and weight entries.`,
	}

	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserShowCmd())
	cmd.AddCommand(newUserAddCmd())
	cmd.AddCommand(newUserUpdateCmd())
	cmd.AddCommand(newUserDeleteCmd())

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			users, err := svc.GetUsers()
			if err != nil {
				return fmt.Errorf("listing users: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), users)
			}
			if len(users) == 0 {
				info(cmd, "No profiles yet. Add one with 'habits user add'\n")
				return nil
			}

			now := time.Now()
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "NAME\tCOLOR\tBIRTHDAY\tCREATED\tID\n")
			for _, u := range users {
				birthday := u.Birthday
				if birthday == "" {
					birthday = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					truncate(u.Name, 30), u.AvatarColor, birthday, formatTime(u.CreatedAt, now), u.ID)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			info(cmd, "\nTotal: %d profile(s)\n", len(users))
			return nil
		},
	}
}

func newUserShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := svc.GetUser(args[0])
			if err != nil {
				return fmt.Errorf("getting user: %w", err)
			}
			if user == nil {
				return fmt.Errorf("user %s: %w", args[0], models.ErrNotFound)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), user)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", user.Name)
			fmt.Fprintf(out, "  ID:       %s\n", user.ID)
			fmt.Fprintf(out, "  Color:    %s\n", user.AvatarColor)
			if user.Birthday != "" {
				fmt.Fprintf(out, "  Birthday: %s\n", user.Birthday)
			}
			fmt.Fprintf(out, "  Created:  %s\n", user.CreatedAt)
			return nil
		},
	}
}

func newUserAddCmd() *cobra.Command {
	var in models.NewUserInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a profile",
		Example: `  habits user add --first Ada --last Lovelace --color "#ff8800"
  habits user add --first Sam --color "#3366ff" --birthday 1990-04-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := svc.CreateUser(in)
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), user)
			}
			info(cmd, "✓ Created %s (%s)\n", user.Name, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last", "", "Last name")
	cmd.Flags().StringVar(&in.AvatarColor, "color", "", "Avatar colour (required)")
	cmd.Flags().StringVar(&in.Birthday, "birthday", "", "Birthday as YYYY-MM-DD")
	cmd.Flags().StringVar(&in.ProfilePhoto, "photo", "", "Photo as a data URL")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func newUserUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a profile",
		Long: `Update a profile. Only the flags you pass change.

Changing --first or --last recomputes the display name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.UserPatch{
				Name:         changedString(cmd, "name"),
				FirstName:    changedString(cmd, "first"),
				LastName:     changedString(cmd, "last"),
				AvatarColor:  changedString(cmd, "color"),
				Birthday:     changedString(cmd, "birthday"),
				ProfilePhoto: changedString(cmd, "photo"),
			}

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := svc.UpdateUser(args[0], patch)
			if err != nil {
				return fmt.Errorf("updating user: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), user)
			}
			info(cmd, "✓ Updated %s (%s)\n", user.Name, user.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("first", "", "First name")
	cmd.Flags().String("last", "", "Last name")
	cmd.Flags().String("color", "", "Avatar colour")
	cmd.Flags().String("birthday", "", "Birthday as YYYY-MM-DD (empty clears)")
	cmd.Flags().String("photo", "", "Photo as a data URL (empty clears)")

	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a profile and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteUser(args[0]); err != nil {
				return fmt.Errorf("deleting user: %w", err)
			}
			info(cmd, "✓ Deleted %s\n", args[0])
			return nil
		},
	}
}
