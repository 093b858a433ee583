package commands

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"asempv/internal/domain"
	"asempv/internal/ui/browse"
)

func browseCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Scroll the inverter list in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wire.Auth.IsLoggedIn() {
				return errors.New("not logged in, run `asempv login` first")
			}

			l := wire.Inverters.NewInverterLoader(domain.InverterFilters{Search: search, Partner: settings.Partner})
			defer l.Close()

			g, ctx := errgroup.WithContext(cmd.Context())
			model := browse.New[domain.Inverter](ctx, l, "Inverters", func(inv domain.Inverter) string {
				return fmt.Sprintf("%-6d %-28s %s", inv.ID, inv.Title, inv.City.Title)
			})
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

			done := make(chan struct{})
			g.Go(func() error {
				defer close(done)
				_, err := p.Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				return err
			})
			g.Go(func() error {
				select {
				case <-ctx.Done():
					p.Quit()
				case <-done:
				}
				return nil
			})
			err := g.Wait()
			l.Close()
			l.Wait()
			return err
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search title, address and owner")
	return cmd
}
