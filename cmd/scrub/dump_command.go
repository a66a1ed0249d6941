package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scrub/internal/deps"
	"scrub/internal/dump"
	"scrub/internal/fileutil"
	"scrub/internal/logging"
	"scrub/internal/review"
	"scrub/internal/segment"
	"scrub/internal/wordlist"
)

func newDumpCommand(cctx *commandContext) *cobra.Command {
	var outputPath string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "dump <media>",
		Short: "Write the full timestamped transcription to a text file",
		Long: `dump transcribes the media file and writes every word with its timestamps
to a plain text file. Useful for inspecting what the recognizer heard; the
file can be fed back through "scrub parse-dump" to build a review CSV
without transcribing again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath := args[0]
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			ctx := runContext(cmd.Context(), mediaPath)
			logger := logging.WithContext(ctx, cctx.loggerValue()).With(logging.FieldComponent, "dump")

			if err := deps.Verify(deps.Required(true)); err != nil {
				return err
			}
			if _, err := inspectInput(ctx, mediaPath, true, false); err != nil {
				return err
			}

			transcript, err := loadTranscript(ctx, cfg, cctx.loggerValue(), mediaPath, !noCache)
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" {
				ext := filepath.Ext(mediaPath)
				target = fileutil.UniquePath(strings.TrimSuffix(mediaPath, ext) + "_transcription.txt")
			}
			if err := dump.Write(transcript, filepath.Base(mediaPath), target); err != nil {
				return err
			}
			logger.Info("transcription dumped", "path", target, "words", len(transcript.Words))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d words)\n", target, len(transcript.Words))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Transcript destination (default <input>_transcription.txt)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the transcript cache")
	return cmd
}

func newParseDumpCommand(cctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "parse-dump <transcription.txt> <wordlist>",
		Short: "Build a review CSV from a dumped transcription",
		Long: `parse-dump re-reads a text file produced by "scrub dump" and matches the
word list against it, producing the same review CSV "scrub analyze" would
have written. No transcription runs, so this works offline.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dumpPath, listPath := args[0], args[1]
			if _, err := cctx.ensureConfig(); err != nil {
				return err
			}
			ctx := runContext(cmd.Context(), dumpPath)
			logger := logging.WithContext(ctx, cctx.loggerValue()).With(logging.FieldComponent, "parse-dump")

			phrases, err := wordlist.Load(listPath)
			if err != nil {
				return err
			}

			transcript, err := dump.Parse(dumpPath)
			if err != nil {
				return err
			}
			logger.Info("transcription parsed", "path", dumpPath, "words", len(transcript.Words))

			records := segment.MatchWords(transcript, phrases)
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches found; no review file written.")
				return nil
			}
			if err := review.WriteWords(records, outputPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d match(es). Wrote %s\n", len(records), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "review.csv", "Review CSV destination")
	return cmd
}
