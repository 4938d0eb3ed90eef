package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error(logger.APP, "%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "asklyn",
		Short:         "AskLyn chat server and terminal widget",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newChatCmd(), newUploadCmd())
	return root
}
