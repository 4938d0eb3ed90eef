package main

import (
	"errors"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/deepgram/asklyn/pkg/widget"
	"github.com/ergochat/readline"
	"github.com/spf13/cobra"
)

type widgetFlags struct {
	url              string
	responseDelay    time.Duration
	statusClearDelay time.Duration
}

func (f *widgetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "url", "http://127.0.0.1:5000", "AskLyn server address")
	cmd.Flags().DurationVar(&f.responseDelay, "response-delay", widget.DefaultResponseDelay, "minimum time the typing indicator is shown")
	cmd.Flags().DurationVar(&f.statusClearDelay, "status-clear-delay", widget.DefaultStatusClearDelay, "how long a completed upload status stays visible")
}

func (f *widgetFlags) config() widget.Config {
	cfg := widget.DefaultConfig(f.url)
	cfg.ResponseDelay = f.responseDelay
	cfg.StatusClearDelay = f.statusClearDelay
	return cfg
}

func newChatCmd() *cobra.Command {
	var flags widgetFlags
	var markdown bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with an AskLyn server from the terminal",
		Long:  "Chat with an AskLyn server from the terminal. Type /upload <files...> to add text files to its knowledge base and /quit to leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.New("> ")
			if err != nil {
				return err
			}
			defer rl.Close()

			t := newTerminal(flags.config(), rl)
			if markdown {
				renderer, err := glamour.NewTermRenderer(
					glamour.WithAutoStyle(),
					glamour.WithWordWrap(100),
				)
				if err != nil {
					return err
				}
				t.markdown = renderer.Render
			}

			err = t.run(cmd.Context(), rl)
			if errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&markdown, "markdown", true, "render bot replies as markdown")
	return cmd
}
