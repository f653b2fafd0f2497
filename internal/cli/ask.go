package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cognitia/internal/pipeline"
)

var (
	askDebate  bool
	askTimeout time.Duration
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question over the indexed knowledge base",
	Long: `Ask retrieves the most relevant indexed material for the question and
synthesizes an answer from it. With --debate the answer is immediately
challenged with a structured counterargument.

Example:
  cognitia ask "how does message passing work?"
  cognitia ask --debate "how does message passing work?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askDebate, "debate", false, "debate the answer after generating it")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 10*time.Minute, "overall ask timeout")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	p, err := pipeline.New(cfg, logger, pipeline.Options{})
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	answer := p.Answer(ctx, question)
	fmt.Println(answer)

	if askDebate {
		_, message, err := p.Debate(ctx)
		if err != nil {
			return fmt.Errorf("debate failed: %w", err)
		}
		fmt.Println()
		fmt.Println(message)
	}

	return nil
}
