package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/marketconnect/riskmap-agent/app/internal/tui"
	"github.com/marketconnect/riskmap-agent/app/internal/zones"
)

func newZonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "Print the risk zone catalog and severity legend",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			header := lipgloss.NewStyle().Bold(true)
			coords := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

			r := zones.InitialRegion
			fmt.Fprintln(w, header.Render("Risk zones"))
			fmt.Fprintln(w, coords.Render(fmt.Sprintf("centered on (%.4f, %.4f), span %.2f x %.2f",
				r.Latitude, r.Longitude, r.LatitudeDelta, r.LongitudeDelta)))
			fmt.Fprintln(w)

			for _, z := range zones.All() {
				fmt.Fprintf(w, "%s %d  %-12s %s  %s\n", tui.LevelDot(z.Level), z.ID, z.Title,
					coords.Render(fmt.Sprintf("(%.4f, %.4f) r=%dm", z.Latitude, z.Longitude, z.Radius)),
					tui.LevelLabel(z.Level))
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, header.Render("Legend"))
			for _, lvl := range zones.Levels() {
				fmt.Fprintf(w, "%s %d %s\n", tui.LevelDot(lvl.Level), lvl.Level, lvl.Label)
			}
		},
	}
}
