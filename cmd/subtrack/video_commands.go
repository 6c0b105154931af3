package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subtrack/internal/subtitle"
	"subtrack/internal/videostore"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	videoCmd := &cobra.Command{
		Use:   "video",
		Short: "Manage video documents",
	}

	videoCmd.AddCommand(newVideoListCommand(ctx))
	videoCmd.AddCommand(newVideoShowCommand(ctx))
	videoCmd.AddCommand(newVideoAddCommand(ctx))
	videoCmd.AddCommand(newVideoSetCommand(ctx))
	videoCmd.AddCommand(newVideoRemoveCommand(ctx))

	return videoCmd
}

func newVideoListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every video",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store videostore.Store) error {
				videos, err := store.ListVideos(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, videos)
				}
				printVideoList(cmd, videos)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printVideoList(cmd *cobra.Command, videos []*subtitle.Video) {
	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos")
		return
	}

	if !isTerminal(out) {
		for _, video := range videos {
			fmt.Fprintf(out, "%s\t%s\t%s\t%d\n", video.ID, video.Status, video.Title, video.SegmentCount())
		}
		return
	}

	rows := make([][]string, 0, len(videos))
	for _, video := range videos {
		rows = append(rows, []string{
			video.ID,
			string(video.Status),
			truncateText(video.Title, 40),
			strconv.Itoa(len(video.Languages)),
			strconv.Itoa(video.SegmentCount()),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Status", "Title", "Languages", "Segments"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
}

func newVideoShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <video-id>",
		Short: "Show one video with its languages and subtitle counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store videostore.Store) error {
				video, err := store.GetVideo(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, video)
				}
				printVideoDetail(cmd, video)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printVideoDetail(cmd *cobra.Command, video *subtitle.Video) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:       %s\n", video.ID)
	fmt.Fprintf(out, "Title:    %s\n", video.Title)
	fmt.Fprintf(out, "Link:     %s\n", video.Link)
	fmt.Fprintf(out, "Status:   %s\n", video.Status)
	fmt.Fprintf(out, "Original: %d subtitles\n", len(video.OriginalSubtitles))
	fmt.Fprintf(out, "New:      %d subtitles\n", len(video.NewSubtitles))

	if len(video.Languages) == 0 {
		fmt.Fprintln(out, "Languages: none")
		return
	}
	fmt.Fprintln(out, "Languages:")
	for _, pack := range video.Languages {
		fmt.Fprintf(out, "  %s (%d segments)\n", pack.Language, len(pack.Items))
		for _, seg := range pack.Items {
			fmt.Fprintf(out, "    %d. %s  %s  [%s] %d subtitles\n",
				seg.Index+1, timeRange(seg.StartTime, seg.EndTime),
				truncateText(seg.Title, 32), seg.Status, len(seg.Subtitles))
		}
	}

	if len(video.PlatformsUploaded) > 0 {
		fmt.Fprintln(out, "Uploads:")
		for _, upload := range video.PlatformsUploaded {
			fmt.Fprintf(out, "  %s %s views=%d likes=%d\n",
				upload.Platform, upload.UploadDate.Format("2006-01-02"),
				upload.Metrics.Views, upload.Metrics.Likes)
		}
	}
}

func newVideoAddCommand(ctx *commandContext) *cobra.Command {
	var title, link, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a video document",
		RunE: func(cmd *cobra.Command, args []string) error {
			videoStatus, err := parseVideoStatus(status)
			if err != nil {
				return err
			}
			return ctx.withStore(cmd.Context(), func(store videostore.Store) error {
				video, err := store.CreateVideo(cmd.Context(), videostore.VideoFields{
					Title:  strings.TrimSpace(title),
					Link:   strings.TrimSpace(link),
					Status: videoStatus,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created video %s\n", video.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title")
	cmd.Flags().StringVar(&link, "link", "", "Source link")
	cmd.Flags().StringVar(&status, "status", string(subtitle.VideoPending), "Initial status")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newVideoSetCommand(ctx *commandContext) *cobra.Command {
	var title, link, status string

	cmd := &cobra.Command{
		Use:   "set <video-id>",
		Short: "Update a video's title, link, or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store videostore.Store) error {
				video, err := store.GetVideo(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fields := videostore.VideoFields{
					Title:             video.Title,
					Link:              video.Link,
					Status:            video.Status,
					PlatformsUploaded: video.PlatformsUploaded,
				}
				if cmd.Flags().Changed("title") {
					fields.Title = strings.TrimSpace(title)
				}
				if cmd.Flags().Changed("link") {
					fields.Link = strings.TrimSpace(link)
				}
				if cmd.Flags().Changed("status") {
					fields.Status, err = parseVideoStatus(status)
					if err != nil {
						return err
					}
				}
				if _, err := store.UpdateVideo(cmd.Context(), video.ID, fields); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated video %s\n", video.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title")
	cmd.Flags().StringVar(&link, "link", "", "Source link")
	cmd.Flags().StringVar(&status, "status", "", "Video status")
	return cmd
}

func newVideoRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <video-id>",
		Short: "Delete a video document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store videostore.Store) error {
				if err := store.DeleteVideo(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed video %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}
