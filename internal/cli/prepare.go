package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cognitia/internal/pipeline"
)

var (
	prepareTopic   string
	prepareTimeout time.Duration
)

// prepareCmd represents the prepare command
var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Normalize raw documents and rebuild the knowledge index",
	Long: `Prepare cleans every PDF paper and WebVTT transcript in the raw data
directories into plain text, then rebuilds the vector index from the
result. The previous processed output and index contents are replaced.

Example:
  cognitia prepare
  cognitia prepare --topic "graph neural networks"`,
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().StringVar(&prepareTopic, "topic", "", "topic label for this working set")
	prepareCmd.Flags().DurationVar(&prepareTimeout, "timeout", 30*time.Minute, "overall prepare timeout")
}

func runPrepare(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), prepareTimeout)
	defer cancel()

	result, err := p.Prepare(ctx, prepareTopic)
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}

	fmt.Printf("Processed %d documents (%d skipped), indexed %d chunks\n",
		result.Processed, result.Skipped, result.Indexed)
	return nil
}
