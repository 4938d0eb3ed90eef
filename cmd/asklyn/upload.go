package main

import (
	"fmt"

	"github.com/deepgram/asklyn/pkg/widget"
	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	var flags widgetFlags

	cmd := &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Upload text files to an AskLyn knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]widget.File, 0, len(args))
			for _, p := range args {
				files = append(files, widget.LocalFile(p))
			}

			t := newTerminal(flags.config(), cmd.OutOrStdout())
			err := t.widget.Dispatch(cmd.Context(), &widget.Event{
				Type:   widget.EventChange,
				Target: widget.TargetFileInput,
				Files:  files,
			})
			if err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
