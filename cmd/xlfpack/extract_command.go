package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nicholasgasior/xlfpack"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <envelope.xlf> <dest-dir>",
		Short: "Write the original document and manifest embedded in an envelope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := ctx.setup(cmd)
			if err != nil {
				return err
			}

			env, err := xlfpack.Unpack(args[0], args[1])
			if err != nil {
				return err
			}
			for _, att := range []*xlfpack.Attachment{env.Original, env.Manifest} {
				target := filepath.Join(args[1], filepath.Base(att.Filename))
				logger.Debug("attachment written", "path", target, "datatype", att.Datatype)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", target, humanize.Bytes(uint64(len(att.Data))))
			}
			return nil
		},
	}
}
