package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nicholasgasior/xlfpack"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file.xlf>",
		Short: "List the file elements of an XLIFF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := ctx.setup(cmd); err != nil {
				return err
			}
			env, err := xlfpack.ReadEnvelope(args[0])
			if err != nil {
				return err
			}
			renderEntries(cmd.OutOrStdout(), env.Entries)
			return nil
		},
	}
}

func renderEntries(w io.Writer, entries []xlfpack.Entry) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Original", "Datatype", "Source", "Target", "Embedded"})
	for i, e := range entries {
		embedded := "-"
		if e.ToolID == xlfpack.ToolID && e.AttachmentSize > 0 {
			embedded = humanize.Bytes(uint64(e.AttachmentSize))
		}
		tw.AppendRow(table.Row{i, e.Original, e.Datatype, e.SourceLanguage, e.TargetLanguage, embedded})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tw.Render()
}
