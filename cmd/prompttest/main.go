// Command prompttest builds a feature prompt, sends it to the configured model
// and prints the parsed records.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/llm/gemini"
	"careercraft-backend/internal/llm/openai"
	"careercraft-backend/internal/parser"
	"careercraft-backend/internal/prompt"
	"careercraft-backend/internal/shared/config"
)

var (
	provider  string
	model     string
	dryRun    bool
	showReply bool

	skills    string
	interests string
	degree    string
	count     int
)

var rootCmd = &cobra.Command{
	Use:          "prompttest",
	Short:        "Try CareerCraft prompts against a language model",
	SilenceUsage: true,
}

var guidanceCmd = &cobra.Command{
	Use:   "guidance",
	Short: "Ask for career paths and print the parsed careers",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := prompt.CareerGuidance(skills, interests, degree)
		reply, err := complete(cmd.Context(), text)
		if err != nil || reply == "" {
			return err
		}
		return printJSON(parser.Careers(reply))
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Ask for job roles and print the parsed jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := prompt.JobSearch(skills, degree, count)
		reply, err := complete(cmd.Context(), text)
		if err != nil || reply == "" {
			return err
		}
		return printJSON(parser.Jobs(reply))
	},
}

var interviewCmd = &cobra.Command{
	Use:   "interview [message]",
	Short: "Send one interview message with no history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, farewell := prompt.Interview(args[0], nil)
		reply, err := complete(cmd.Context(), text)
		if err != nil || reply == "" {
			return err
		}
		return printJSON(map[string]any{"farewell": farewell, "reply": reply})
	},
}

func init() {
	cfg := config.Load()

	rootCmd.PersistentFlags().StringVar(&provider, "provider", cfg.LLMProvider, "gemini or openai")
	rootCmd.PersistentFlags().StringVar(&model, "model", cfg.LLMModel, "model name (provider default when empty)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print the prompt without calling the model")
	rootCmd.PersistentFlags().BoolVar(&showReply, "raw", false, "print the raw reply before the parsed records")

	for _, c := range []*cobra.Command{guidanceCmd, jobsCmd} {
		c.Flags().StringVar(&skills, "skills", "", "comma separated skills")
		c.Flags().StringVar(&degree, "degree", "", "degree")
	}
	guidanceCmd.Flags().StringVar(&interests, "interests", "", "interests")
	jobsCmd.Flags().IntVar(&count, "count", 5, "number of roles to request")

	rootCmd.AddCommand(guidanceCmd, jobsCmd, interviewCmd)
}

// complete returns an empty reply without error on a dry run.
func complete(ctx context.Context, text string) (string, error) {
	if dryRun {
		fmt.Println(text)
		return "", nil
	}
	c, err := buildCompleter(ctx)
	if err != nil {
		return "", err
	}
	reply, err := c.Complete(ctx, text)
	if err != nil {
		return "", errors.Wrapf(err, "%s (%s)", llm.FallbackText(err), llm.ReasonOf(err))
	}
	if showReply {
		fmt.Fprintln(os.Stderr, reply)
	}
	return reply, nil
}

func buildCompleter(ctx context.Context) (llm.Completer, error) {
	cfg := config.Load()
	switch provider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, model, "", 2*time.Minute)
	default:
		return gemini.New(ctx, gemini.Options{APIKey: cfg.GeminiAPIKey, Model: model, Timeout: 2 * time.Minute})
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
