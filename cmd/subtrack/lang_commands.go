package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrack/internal/aggregate"
	"subtrack/internal/langcode"
)

func newLangCommand(ctx *commandContext) *cobra.Command {
	langCmd := &cobra.Command{
		Use:   "lang",
		Short: "Manage a video's language packs",
	}

	langCmd.AddCommand(newLangAddCommand(ctx))
	langCmd.AddCommand(newLangRemoveCommand(ctx))
	langCmd.AddCommand(newLangListCommand(ctx))

	return langCmd
}

func newLangAddCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <video-id> <language-code>",
		Short: "Add an empty language pack to a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				if err := agg.AddLanguage(args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added language %s\n", args[1])
				return nil
			})
		},
	}
	return cmd
}

func newLangRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <video-id> <language-code>",
		Short: "Remove a language pack and every segment in it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				if err := agg.RemoveLanguage(args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed language %s\n", args[1])
				return nil
			})
		},
	}
	return cmd
}

func newLangListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list <video-id>",
		Short: "List a video's language packs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAggregate(cmd.Context(), args[0], func(agg *aggregate.Aggregate) error {
				packs := agg.Languages()
				if jsonOutput {
					return writeJSON(cmd, packs)
				}
				out := cmd.OutOrStdout()
				if len(packs) == 0 {
					fmt.Fprintln(out, "No languages")
					return nil
				}
				for _, pack := range packs {
					name := langcode.Name(pack.Language)
					fmt.Fprintf(out, "%s\t%s\t%d segments\n", pack.Language, name, len(pack.Items))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
