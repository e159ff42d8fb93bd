package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicholasgasior/xlfpack"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var originalFormat string

	cmd := &cobra.Command{
		Use:   "build <kit-folder>",
		Short: "Build the envelope XLIFF for an extraction kit folder",
		Long: "Build reads <kit-folder>/manifest.rkm, the document under <kit-folder>/original and the\n" +
			"extracted XLIFF under <kit-folder>/work, and writes <document>.xlf next to the kit folder.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup(cmd)
			if err != nil {
				return err
			}

			hint := originalFormat
			if hint == "" {
				hint = cfg.Build.OriginalFormat
			}
			var format xlfpack.Format
			if hint != "" {
				format, err = xlfpack.ParseFormat(hint)
				if err != nil {
					return fmt.Errorf("original format: %w", err)
				}
			}

			pack, err := xlfpack.LoadPack(args[0])
			if err != nil {
				return err
			}

			builder := xlfpack.New(
				xlfpack.WithLogger(logger),
				xlfpack.WithMaxFileSize(cfg.Limits.MaxFileSize),
			)
			result, err := builder.Build(pack, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&originalFormat, "original-format", "f", "", "Format of the document before conversion (e.g. doc)")
	return cmd
}
