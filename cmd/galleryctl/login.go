package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, session, err := connect()
		if err != nil {
			return err
		}

		user, err := session.SignIn(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}

		if err := saveCredentials(storedCredentials{Token: gw.Token(), User: *user}); err != nil {
			return err
		}

		fmt.Printf("signed in as %s\n", user.Label())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := credentialsFile()
		if err != nil {
			return err
		}
		if err := removeIfExists(path); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, logoutCmd)
}
