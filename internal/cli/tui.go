package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gitlink/internal/tui"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Pick a file and line interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.load()
			if err != nil {
				return err
			}
			// the interactive view renders results itself
			svc, err := a.service(cfg, log, nil)
			if err != nil {
				return err
			}
			ec, err := a.editorContext(args, cfg)
			if err != nil {
				return err
			}

			m := tui.New(svc, a.openURL, svc.Clipboard != nil, ec)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
