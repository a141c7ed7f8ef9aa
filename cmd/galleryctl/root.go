package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"galleryapi/client"
)

var (
	serverURL string
	credsPath string
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:   "galleryctl",
	Short: "Command line client for the photo gallery server",
	Long: `galleryctl drives a gallery server from the terminal: sign in, list and
inspect photos, upload new ones, edit or delete records, and find a photo
by visual match.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("GALLERY_SERVER", "http://localhost:8080"),
		"Base URL of the gallery server")
	rootCmd.PersistentFlags().StringVar(&credsPath, "credentials", "",
		"Path of the credentials file (default ~/.config/galleryctl/credentials.json)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"Answer yes to confirmation prompts")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// storedCredentials is what login persists between runs.
type storedCredentials struct {
	Token string      `json:"token"`
	User  client.User `json:"user"`
}

func credentialsFile() (string, error) {
	if credsPath != "" {
		return credsPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "galleryctl", "credentials.json"), nil
}

func saveCredentials(c storedCredentials) error {
	path, err := credentialsFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func loadCredentials() (*storedCredentials, error) {
	path, err := credentialsFile()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c storedCredentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return &c, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// connect builds the gateway and session, resuming stored credentials when
// present.
func connect() (*client.Gateway, *client.Session, error) {
	gw := client.NewGateway(strings.TrimRight(serverURL, "/"))
	session := client.NewSession(gw)

	creds, err := loadCredentials()
	if err != nil {
		return nil, nil, err
	}
	if creds != nil {
		user := creds.User
		session.Resume(creds.Token, &user)
	}
	return gw, session, nil
}

// terminalFrontend adapts the flow UI port to the terminal. Busy and Restore
// print progress; Confirm prompts on stdin unless --yes was given.
type terminalFrontend struct{}

func (terminalFrontend) Busy(label string) {
	fmt.Fprintln(os.Stderr, label)
}

func (terminalFrontend) Restore() {}

func (terminalFrontend) Alert(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

func (terminalFrontend) Confirm(msg string) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", msg)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (terminalFrontend) Navigate(target string) {
	fmt.Println(target)
}
