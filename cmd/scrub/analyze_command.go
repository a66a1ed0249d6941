package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/deps"
	"scrub/internal/logging"
	"scrub/internal/review"
	"scrub/internal/segment"
	"scrub/internal/wordlist"
)

func newAnalyzeCommand(cctx *commandContext) *cobra.Command {
	var outputPath string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "analyze <media> <wordlist>",
		Short: "Transcribe a media file and locate banned words",
		Long: `analyze transcribes the media file with word-level timestamps, matches
every word and phrase from the word list against the transcript, and writes
the matches to a review CSV. Delete rows you do not want silenced, then run
"scrub edit" with the same file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath, listPath := args[0], args[1]
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			ctx := runContext(cmd.Context(), mediaPath)
			logger := logging.WithContext(ctx, cctx.loggerValue()).With(logging.FieldComponent, "analyze")

			if err := deps.Verify(deps.Required(true)); err != nil {
				return err
			}

			phrases, err := wordlist.Load(listPath)
			if err != nil {
				return err
			}
			logger.Info("word list loaded", "path", listPath, "entries", len(phrases))

			if _, err := inspectInput(ctx, mediaPath, true, false); err != nil {
				return err
			}

			transcript, err := loadTranscript(ctx, cfg, cctx.loggerValue(), mediaPath, !noCache)
			if err != nil {
				return err
			}

			records := segment.MatchWords(transcript, phrases)
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches found; no review file written.")
				return nil
			}

			if err := review.WriteWords(records, outputPath); err != nil {
				return err
			}
			logger.Info("review file written", "path", outputPath, "matches", len(records))
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d match(es). Review %s, delete rows to keep, then run:\n", len(records), outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "  scrub edit %q %q\n", mediaPath, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "review.csv", "Review CSV destination")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the transcript cache")
	return cmd
}
