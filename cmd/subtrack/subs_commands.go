package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subtrack/internal/aggregate"
	"subtrack/internal/subimport"
	"subtrack/internal/subtitle"
)

// subsTarget selects where a subtitle command operates: one of the two
// video-scoped arrays, or one segment inside a language pack.
type subsTarget struct {
	kind    string
	lang    string
	segment string
}

func (t *subsTarget) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.kind, "kind", "", "Video-scoped track: original or new")
	cmd.Flags().StringVar(&t.lang, "lang", "", "Language code of the owning pack")
	cmd.Flags().StringVar(&t.segment, "segment", "", "Segment position within the pack")
}

func (t *subsTarget) validate() error {
	hasKind := t.kind != ""
	hasSegment := t.lang != "" || t.segment != ""
	switch {
	case hasKind && hasSegment:
		return fmt.Errorf("--kind and --lang/--segment are mutually exclusive")
	case !hasKind && !hasSegment:
		return fmt.Errorf("a target is required: --kind original|new, or --lang with --segment")
	case hasSegment && (t.lang == "" || t.segment == ""):
		return fmt.Errorf("segment targets need both --lang and --segment")
	}
	return nil
}

func (t *subsTarget) resolve() (subtitle.Kind, string, int, error) {
	if t.kind != "" {
		kind, err := subtitle.ParseKind(t.kind)
		return kind, "", 0, err
	}
	position, err := parsePosition("segment", t.segment)
	return "", t.lang, position, err
}

func newSubsCommand(ctx *commandContext) *cobra.Command {
	subsCmd := &cobra.Command{
		Use:   "subs",
		Short: "Manage subtitle tracks",
	}

	subsCmd.AddCommand(newSubsListCommand(ctx))
	subsCmd.AddCommand(newSubsImportCommand(ctx))
	subsCmd.AddCommand(newSubsAddCommand(ctx))
	subsCmd.AddCommand(newSubsRemoveCommand(ctx))

	return subsCmd
}

func newSubsListCommand(ctx *commandContext) *cobra.Command {
	var target subsTarget
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list <video-id>",
		Short: "List the subtitles of one track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.validate(); err != nil {
				return err
			}
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				kind, lang, position, err := target.resolve()
				if err != nil {
					return err
				}
				var subs []subtitle.Subtitle
				if kind != "" {
					subs = agg.VideoSubtitles(kind)
				} else {
					seg, err := agg.SegmentAt(lang, position)
					if err != nil {
						return err
					}
					subs = seg.Subtitles
				}
				if jsonOutput {
					return writeJSON(cmd, subs)
				}
				printSubtitles(cmd, subs)
				return nil
			})
		},
	}

	target.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printSubtitles(cmd *cobra.Command, subs []subtitle.Subtitle) {
	out := cmd.OutOrStdout()
	if len(subs) == 0 {
		fmt.Fprintln(out, "No subtitles")
		return
	}
	for i, sub := range subs {
		fmt.Fprintf(out, "%4d  %s  %s\n", i+1, timeRange(sub.StartTime, sub.EndTime), truncateText(sub.Text, 72))
	}
}

func newSubsImportCommand(ctx *commandContext) *cobra.Command {
	var target subsTarget
	var appendLines bool

	cmd := &cobra.Command{
		Use:   "import <video-id> <file>",
		Short: "Import a JSON or SRT subtitle file, replacing the target track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.validate(); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			info, err := os.Stat(args[1])
			if err != nil {
				return fmt.Errorf("inspect subtitle file: %w", err)
			}
			if cfg.Import.MaxFileBytes > 0 && info.Size() > cfg.Import.MaxFileBytes {
				return fmt.Errorf("subtitle file %s exceeds the %d byte limit", args[1], cfg.Import.MaxFileBytes)
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read subtitle file: %w", err)
			}

			subs, err := subimport.ImportFile(args[1], string(content))
			if err != nil {
				return err
			}
			for i := range subs {
				if subs[i].Language == "" {
					subs[i].Language = cfg.Import.DefaultLanguage
				}
			}

			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				kind, lang, position, err := target.resolve()
				if err != nil {
					return err
				}
				if kind != "" {
					if appendLines {
						for _, sub := range subs {
							agg.AddVideoSubtitle(kind, sub)
						}
					} else {
						agg.ReplaceVideoSubtitles(kind, subs)
					}
				} else {
					if appendLines {
						for _, sub := range subs {
							if err := agg.AddSubtitleToSegment(lang, position, sub); err != nil {
								return err
							}
						}
					} else if err := agg.ReplaceSegmentSubtitles(lang, position, subs); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d subtitles\n", len(subs))
				return nil
			})
		},
	}

	target.register(cmd)
	cmd.Flags().BoolVar(&appendLines, "append", false, "Append to the track instead of replacing it")
	return cmd
}

func newSubsAddCommand(ctx *commandContext) *cobra.Command {
	var target subsTarget
	var start, end, text, language string

	cmd := &cobra.Command{
		Use:   "add <video-id>",
		Short: "Add one subtitle line to a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.validate(); err != nil {
				return err
			}
			sub := subtitle.Subtitle{Text: text, Language: language}
			var err error
			if sub.StartTime, err = parseTimeFlag("start", start); err != nil {
				return err
			}
			if sub.EndTime, err = parseTimeFlag("end", end); err != nil {
				return err
			}
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				kind, lang, position, err := target.resolve()
				if err != nil {
					return err
				}
				if kind != "" {
					agg.AddVideoSubtitle(kind, sub)
				} else if err := agg.AddSubtitleToSegment(lang, position, sub); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Added subtitle")
				return nil
			})
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "Start time")
	cmd.Flags().StringVar(&end, "end", "", "End time")
	cmd.Flags().StringVar(&text, "text", "", "Subtitle text")
	cmd.Flags().StringVar(&language, "language", "", "Subtitle language code")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newSubsRemoveCommand(ctx *commandContext) *cobra.Command {
	var target subsTarget

	cmd := &cobra.Command{
		Use:   "remove <video-id> <subtitle>",
		Short: "Remove one subtitle line from a track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.validate(); err != nil {
				return err
			}
			subPosition, err := parsePosition("subtitle", args[1])
			if err != nil {
				return err
			}
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				kind, lang, position, err := target.resolve()
				if err != nil {
					return err
				}
				if kind != "" {
					if err := agg.RemoveVideoSubtitle(kind, subPosition); err != nil {
						return err
					}
				} else if err := agg.RemoveSubtitleFromSegment(lang, position, subPosition); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed subtitle %s\n", args[1])
				return nil
			})
		},
	}

	target.register(cmd)
	return cmd
}
