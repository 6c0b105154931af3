package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrack/internal/subtitle"
	"subtrack/internal/videostore"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the video pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store videostore.Store) error {
				info, err := store.WorkInfo(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, info)
				}
				printWorkInfo(cmd, info)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printWorkInfo(cmd *cobra.Command, info videostore.WorkInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "To split:  %d\n", info.ToSplit)
	fmt.Fprintf(out, "To upload: %d\n", info.ToUpload)
	fmt.Fprintf(out, "Processed: %d\n", info.ProcessedVideos)

	if len(info.CountsByStatus) > 0 {
		fmt.Fprintln(out, "By status:")
		for _, status := range subtitle.VideoStatusValues() {
			if count, ok := info.CountsByStatus[subtitle.VideoStatus(status)]; ok {
				fmt.Fprintf(out, "  %-10s %d\n", status, count)
			}
		}
	}
	if info.LastVideo != nil {
		fmt.Fprintf(out, "Latest: %s (%s)\n", info.LastVideo.Title, info.LastVideo.Status)
	}
}
