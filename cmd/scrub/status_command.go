package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/deps"
)

func newStatusCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration and external tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			requirements := deps.Required(true)
			requirements = append(requirements, deps.Requirement{
				Name:        "Detector",
				Command:     cfg.Detector.Command,
				Description: "Frame-level nudity detection",
				Optional:    true,
			})

			rows := make([][]string, 0, len(requirements))
			for _, status := range deps.CheckBinaries(requirements) {
				state := "ok"
				if !status.Available {
					state = status.Detail
					if status.Optional {
						state = "optional: " + state
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Description})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Status", "Purpose"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Model:            %s\n", cfg.WhisperX.Model)
			fmt.Fprintf(out, "CUDA:             %s\n", yesNo(cfg.WhisperX.CUDAEnabled))
			fmt.Fprintf(out, "Transcript cache: %s (%s)\n", yesNo(cfg.Cache.Enabled), cfg.Paths.CacheDir)
			fmt.Fprintf(out, "Work dir:         %s\n", cfg.Paths.WorkDir)
			return nil
		},
	}
	return cmd
}
