package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Toggle between the dark and light theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := controller.Bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := controller.ToggleTheme(); err != nil {
			return err
		}
		fmt.Printf("Theme: %s\n", controller.State().Theme)
		return nil
	},
}

// langCmd represents the lang command
var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Toggle between Russian and English",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := controller.Bootstrap(ctx); err != nil {
			return err
		}
		return controller.ToggleLanguage(ctx)
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user and stored preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := controller.Bootstrap(ctx); err != nil {
			return err
		}

		state := controller.State()
		fmt.Printf("\nUser: %s (ID: %s)\n", state.User.Username, state.User.ID)
		fmt.Printf("- Collection: %d movies\n", len(state.Collection))
		fmt.Printf("- Language: %s\n", state.Language.Label())
		fmt.Printf("- Theme: %s\n", state.Theme)
		fmt.Printf("- State file: %s\n", store.Path())
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored user; the next command creates a new one",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Test the connection to the movie API and the poster host",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(themeCmd, langCmd, whoamiCmd, logoutCmd, statusCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	username := store.Username()
	if err := store.Reset(); err != nil {
		return fmt.Errorf("failed to reset state: %w", err)
	}
	if username == "" {
		fmt.Println("No stored user")
		return nil
	}
	fmt.Printf("✓ Forgot user %s\n", username)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", client.BaseURL())

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout+5*time.Second)
	defer cancel()

	result, err := client.Probe(ctx, store.Language(), cfg.Images.BaseURL)
	if err != nil {
		return fmt.Errorf("status check interrupted: %w", err)
	}

	if result.APIErr != nil {
		fmt.Printf("✗ Movie API: %v\n", result.APIErr)
	} else {
		fmt.Printf("✓ Movie API: %d popular movies (%s)\n", result.PopularCount, result.APILatency.Round(time.Millisecond))
	}

	if result.ImageURL != "" {
		if result.ImageErr != nil {
			fmt.Printf("✗ Poster host: %v\n", result.ImageErr)
		} else {
			fmt.Printf("✓ Poster host: %s (%s)\n", result.ImageURL, result.ImageLatency.Round(time.Millisecond))
		}
	}

	if breaker != nil {
		fmt.Printf("- Circuit breaker: %s\n", breaker.State())
	} else {
		fmt.Println("- Circuit breaker: Disabled")
	}

	if !result.Healthy() {
		return fmt.Errorf("status check failed")
	}
	return nil
}
