package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"opinion-chat/internal/app"
	"opinion-chat/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:     "ochat",
		Short:   "Opinion Chat - terminal client",
		Long:    "Opinion Chat is a terminal client for the Opinion chat service.\n\nIt covers login and registration, chat rooms with realtime messages, file attachments, polls, and chat log export.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(app.DefaultConfigPath())
			if err != nil {
				return err
			}
			if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
				cfg.APIBaseURL = apiURL
			}
			if socketURL, _ := cmd.Flags().GetString("socket-url"); socketURL != "" {
				cfg.SocketURL = socketURL
			}
			if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
				cfg.Language = lang
			}

			application, err := app.NewApplication(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				cancel()
			}()

			p := tea.NewProgram(tui.NewRootModel(application), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return err
			}
			_ = application.Realtime.Close()
			return nil
		},
	}

	root.Flags().String("api-url", "", "REST API base URL (overrides config)")
	root.Flags().String("socket-url", "", "realtime socket URL (overrides config)")
	root.Flags().String("lang", "", "UI language: no|en (overrides config)")

	root.AddCommand(&cobra.Command{
		Use:   "config-path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(app.DefaultConfigPath())
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
