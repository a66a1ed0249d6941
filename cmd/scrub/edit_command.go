package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/deps"
	"scrub/internal/editor"
	"scrub/internal/logging"
	"scrub/internal/review"
)

func newEditCommand(cctx *commandContext) *cobra.Command {
	var outputPath string
	var blur bool
	var blurStrength int
	var audioBitrate string

	cmd := &cobra.Command{
		Use:   "edit <media> <review.csv>",
		Short: "Apply the approved review intervals to a media file",
		Long: `edit reads the review CSV produced by "scrub analyze" or "scrub topics"
(minus any rows you deleted) and produces a new media file with those time
ranges muted. With --blur the video picture is blurred over the ranges
instead and the audio is copied untouched. The input file is never modified.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath, reviewPath := args[0], args[1]
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			ctx := runContext(cmd.Context(), mediaPath)
			logger := logging.WithContext(ctx, cctx.loggerValue()).With(logging.FieldComponent, "edit")

			if err := deps.Verify(deps.Required(false)); err != nil {
				return err
			}

			records, schema, err := review.Read(reviewPath)
			if err != nil {
				return err
			}
			logger.Info("review file loaded", "path", reviewPath, "schema", schema.String(), "intervals", len(records))

			mode := editor.ModeAudio
			needVideo := false
			if blur {
				mode = editor.ModeVideo
				needVideo = true
			}
			if _, err := inspectInput(ctx, mediaPath, !blur, needVideo); err != nil {
				return err
			}

			opts := editor.Options{
				Mode:         mode,
				BlurStrength: cfg.Editor.BlurStrength,
				AudioBitrate: cfg.Editor.AudioBitrate,
				FFmpegBinary: cfg.Editor.FFmpegBinary,
				OutputPath:   outputPath,
			}
			if cmd.Flags().Changed("blur-strength") {
				opts.BlurStrength = blurStrength
			}
			if cmd.Flags().Changed("bitrate") {
				opts.AudioBitrate = audioBitrate
			}

			ed := editor.New(opts.FFmpegBinary)
			written, err := ed.Apply(ctx, mediaPath, records, opts)
			if err != nil {
				return err
			}
			logger.Info("edit complete", "output", written, "intervals", len(records))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d interval(s) applied)\n", written, len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output media path (default <input>_edited.<ext>)")
	cmd.Flags().BoolVar(&blur, "blur", false, "Blur the video picture instead of muting audio")
	cmd.Flags().IntVar(&blurStrength, "blur-strength", editor.DefaultBlurStrength, "boxblur luma radius for --blur")
	cmd.Flags().StringVar(&audioBitrate, "bitrate", editor.DefaultAudioBitrate, "Audio bitrate for the re-encoded stream")
	return cmd
}
