package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutorly/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the configured LLM provider",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate provider configuration and send a test request",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration: %w", err)
		}
		fmt.Printf("Provider:  %s\n", cfg.Provider)

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, cfg, slog.Default())
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}
		fmt.Printf("Model:     %s\n", provider.ModelID())

		skipCall, _ := cmd.Flags().GetBool("config-only")
		if skipCall {
			return nil
		}

		start := time.Now()
		resp, err := provider.Generate(llm.WithPurpose(ctx, "health-check"), llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("test request failed: %w", err)
		}

		fmt.Printf("Latency:   %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		if cost := llm.LookupCost(resp.Model); cost != nil {
			fmt.Printf("Est. cost: $%.6f\n", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
		fmt.Printf("Response:  %s\n", resp.Text)
		return nil
	},
}

func init() {
	llmCheckCmd.Flags().Bool("config-only", false, "Validate configuration without calling the provider")
	llmCmd.AddCommand(llmCheckCmd)
}
