package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/deps"
	"scrub/internal/detect"
	"scrub/internal/logging"
	"scrub/internal/review"
)

func newDetectCommand(cctx *commandContext) *cobra.Command {
	var outputPath string
	var frameInterval float64
	var threshold float64

	cmd := &cobra.Command{
		Use:   "detect <video>",
		Short: "Scan video frames for nudity and build a blur review CSV",
		Long: `detect samples frames from the video at a fixed interval, runs the
configured external detector over them, and merges qualifying hits into
padded time ranges written to a review CSV. Apply the approved ranges with
"scrub edit --blur". Requires detector.command in the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath := args[0]
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			ctx := runContext(cmd.Context(), mediaPath)
			logger := logging.WithContext(ctx, cctx.loggerValue()).With(logging.FieldComponent, "detect")

			if err := deps.Verify(deps.Required(false)); err != nil {
				return err
			}

			probe, err := inspectInput(ctx, mediaPath, false, true)
			if err != nil {
				return err
			}

			detectorCfg := detect.Config{
				Command:       cfg.Detector.Command,
				FrameInterval: cfg.Detector.FrameInterval,
				Threshold:     cfg.Detector.Threshold,
				UnsafeClasses: cfg.Detector.UnsafeClasses,
				FFmpegBinary:  cfg.Editor.FFmpegBinary,
			}
			if cmd.Flags().Changed("frame-interval") {
				detectorCfg.FrameInterval = frameInterval
			}
			if cmd.Flags().Changed("threshold") {
				detectorCfg.Threshold = threshold
			}

			scanner := detect.NewScanner(detectorCfg)
			update, finish := progressFunc("scanning frames")
			records, err := scanner.Scan(ctx, mediaPath, probe.DurationSeconds(), update)
			finish()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No detections above the threshold; no review file written.")
				return nil
			}

			if err := review.WriteTopics(records, outputPath); err != nil {
				return err
			}
			logger.Info("review file written", "path", outputPath, "ranges", len(records))
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d range(s). Review %s, then run:\n", len(records), outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "  scrub edit --blur %q %q\n", mediaPath, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "review_detect.csv", "Review CSV destination")
	cmd.Flags().Float64Var(&frameInterval, "frame-interval", 0, "Seconds between sampled frames")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum detection score (0-1)")
	return cmd
}
