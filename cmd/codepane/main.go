// Package main provides the codepane server entry point.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/codepane/codepane/chat"
	"github.com/codepane/codepane/config"
	"github.com/codepane/codepane/llm"
	"github.com/codepane/codepane/server"
)

var (
	// Global flags
	providerName string
	addr         string
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "codepane",
		Short: "Chat with an LLM and preview the code it writes",
		Long: `codepane serves a browser chat UI that proxies prompts to an LLM
provider (Anthropic, OpenAI, Gemini, or any OpenAI-compatible endpoint),
extracts fenced code blocks from replies, and renders a combined live
preview in a sandboxed frame.`,
	}

	rootCmd.PersistentFlags().StringVarP(&providerName, "provider", "p", "", "LLM provider (anthropic, openai, gemini, custom)")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(providersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the chat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.New(providerName)
			if err != nil {
				return err
			}
			if addr != "" {
				settings.Addr = addr
			}

			svc := chat.NewService(nil)
			if err := settings.Validate(); err != nil {
				// Not fatal: the key can arrive later through the UI.
				log.Printf("provider not configured yet: %v", err)
			} else {
				provider, err := llm.New(settings.ProviderOptions())
				if err != nil {
					return err
				}
				svc.SetProvider(provider)
				log.Printf("provider: %s (%s)", provider.Name(), provider.Model())
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(settings, svc).ListenAndServe(ctx)
		},
	}
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, info := range llm.Registry {
				fmt.Printf("%-10s %s", info.ID, info.DisplayName)
				if info.DefaultModel != "" {
					fmt.Printf(" (default model: %s)", info.DefaultModel)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
