package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrack/internal/aggregate"
)

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	segCmd := &cobra.Command{
		Use:   "segment",
		Short: "Manage segments within a language pack",
	}

	segCmd.AddCommand(newSegmentAddCommand(ctx))
	segCmd.AddCommand(newSegmentSetCommand(ctx))
	segCmd.AddCommand(newSegmentRemoveCommand(ctx))

	return segCmd
}

func segmentFlags(cmd *cobra.Command, title, caption, start, end, status, url *string) {
	cmd.Flags().StringVar(title, "title", "", "Segment title")
	cmd.Flags().StringVar(caption, "caption", "", "Segment caption")
	cmd.Flags().StringVar(start, "start", "", "Start time (MM:SS.mmm, HH:MM:SS,mmm, or seconds)")
	cmd.Flags().StringVar(end, "end", "", "End time")
	cmd.Flags().StringVar(status, "status", "", "Segment status")
	cmd.Flags().StringVar(url, "url", "", "Published clip URL")
}

func newSegmentAddCommand(ctx *commandContext) *cobra.Command {
	var title, caption, start, end, status, url string

	cmd := &cobra.Command{
		Use:   "add <video-id> <language-code>",
		Short: "Append a segment to a language pack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := aggregate.SegmentFields{Title: title, Caption: caption, URL: url}
			var err error
			if fields.StartTime, err = parseTimeFlag("start", start); err != nil {
				return err
			}
			if fields.EndTime, err = parseTimeFlag("end", end); err != nil {
				return err
			}
			if status != "" {
				if fields.Status, err = parseSegmentStatus(status); err != nil {
					return err
				}
			}
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				seg, err := agg.AddSegment(args[1], fields)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added segment %d (%s)\n", seg.Index+1, seg.ID)
				return nil
			})
		},
	}

	segmentFlags(cmd, &title, &caption, &start, &end, &status, &url)
	return cmd
}

func newSegmentSetCommand(ctx *commandContext) *cobra.Command {
	var title, caption, start, end, status, url string

	cmd := &cobra.Command{
		Use:   "set <video-id> <language-code> <segment>",
		Short: "Update a segment's fields",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition("segment", args[2])
			if err != nil {
				return err
			}
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				current, err := agg.SegmentAt(args[1], position)
				if err != nil {
					return err
				}
				fields := aggregate.SegmentFields{
					Title:     current.Title,
					Caption:   current.Caption,
					StartTime: current.StartTime,
					EndTime:   current.EndTime,
					Status:    current.Status,
					URL:       current.URL,
				}
				if cmd.Flags().Changed("title") {
					fields.Title = title
				}
				if cmd.Flags().Changed("caption") {
					fields.Caption = caption
				}
				if cmd.Flags().Changed("start") {
					if fields.StartTime, err = parseTimeFlag("start", start); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("end") {
					if fields.EndTime, err = parseTimeFlag("end", end); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("status") {
					if fields.Status, err = parseSegmentStatus(status); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("url") {
					fields.URL = url
				}
				if err := agg.UpdateSegment(args[1], position, fields); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated segment %s\n", args[2])
				return nil
			})
		},
	}

	segmentFlags(cmd, &title, &caption, &start, &end, &status, &url)
	return cmd
}

func newSegmentRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <video-id> <language-code> <segment>",
		Short: "Remove a segment; later segments shift down",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition("segment", args[2])
			if err != nil {
				return err
			}
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				if err := agg.RemoveSegment(args[1], position); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed segment %s\n", args[2])
				return nil
			})
		},
	}
	return cmd
}
