package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/classify"
	"scrub/internal/deps"
	"scrub/internal/logging"
	"scrub/internal/review"
	"scrub/internal/segment"
	"scrub/internal/services"
	"scrub/internal/wordlist"
)

func newTopicsCommand(cctx *commandContext) *cobra.Command {
	var outputPath string
	var noCache bool
	var chunkSeconds float64
	var confidenceFloor float64

	cmd := &cobra.Command{
		Use:   "topics <media> <topicsfile>",
		Short: "Transcribe a media file and locate topical segments",
		Long: `topics transcribes the media file, splits the transcript into chunks, and
scores each chunk against the topic list with a zero-shot classifier. Chunks
whose best topic clears the confidence floor land in a review CSV alongside
the chunk text, so the reviewer can judge each hit before editing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath, listPath := args[0], args[1]
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("confidence-floor") && (confidenceFloor <= 0 || confidenceFloor > 1) {
				return services.Wrap(services.ErrConfiguration, "topics", "flags",
					"--confidence-floor must be greater than 0 and at most 1", nil)
			}
			ctx := runContext(cmd.Context(), mediaPath)
			logger := logging.WithContext(ctx, cctx.loggerValue()).With(logging.FieldComponent, "topics")

			if err := deps.Verify(deps.Required(true)); err != nil {
				return err
			}

			topics, err := wordlist.Load(listPath)
			if err != nil {
				return err
			}
			logger.Info("topic list loaded", "path", listPath, "entries", len(topics))

			if _, err := inspectInput(ctx, mediaPath, true, false); err != nil {
				return err
			}

			transcript, err := loadTranscript(ctx, cfg, cctx.loggerValue(), mediaPath, !noCache)
			if err != nil {
				return err
			}

			classifier := classify.NewClient(classify.Config{
				BaseURL:        cfg.Classifier.BaseURL,
				APIToken:       cfg.Classifier.APIToken,
				TimeoutSeconds: cfg.Classifier.TimeoutSeconds,
			})

			opts := segment.TopicOptions{
				ChunkSeconds:    cfg.Analysis.ChunkSeconds,
				ConfidenceFloor: cfg.Analysis.ConfidenceFloor,
			}
			if cmd.Flags().Changed("chunk-seconds") {
				opts.ChunkSeconds = chunkSeconds
			}
			if cmd.Flags().Changed("confidence-floor") {
				opts.ConfidenceFloor = confidenceFloor
			}
			update, finish := progressFunc("classifying chunks")
			opts.Progress = update

			records, err := segment.MatchTopics(ctx, transcript, topics, classifier, opts)
			finish()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No segments cleared the confidence floor; no review file written.")
				return nil
			}

			if err := review.WriteTopics(records, outputPath); err != nil {
				return err
			}
			logger.Info("review file written", "path", outputPath, "segments", len(records))
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d segment(s). Review %s, delete rows to keep, then run:\n", len(records), outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "  scrub edit %q %q\n", mediaPath, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "review_topics.csv", "Review CSV destination")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the transcript cache")
	cmd.Flags().Float64Var(&chunkSeconds, "chunk-seconds", 0, "Maximum chunk duration sent to the classifier")
	cmd.Flags().Float64Var(&confidenceFloor, "confidence-floor", 0, "Minimum top-topic score to report a chunk, in (0, 1]")
	return cmd
}
