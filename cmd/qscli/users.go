package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage admin users",
}

var userDisplayName string

var usersAddCmd = &cobra.Command{
	Use:   "add <username> <password>",
	Short: "Add an admin user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		u, err := backends.Users.Create(args[0], args[1], userDisplayName)
		if err != nil {
			return err
		}
		log.Printf("Created user '%s' (id %d)", u.Username, u.ID)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		users, err := backends.Users.List()
		if err != nil {
			return err
		}
		for _, u := range users {
			state := "enabled"
			if u.Disabled {
				state = "disabled"
			}
			fmt.Printf("%d\t%s\t%s\t%s\n", u.ID, u.Username, u.DisplayName, state)
		}
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an admin user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if err := backends.Users.Delete(args[0]); err != nil {
			return err
		}
		log.Printf("Deleted user '%s'", args[0])
		return nil
	},
}

func init() {
	usersAddCmd.Flags().StringVar(&userDisplayName, "display-name", "", "display name for the new user")
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}
