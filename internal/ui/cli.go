package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/esmalte/internal/catalog"
	"github.com/javiermolinar/esmalte/internal/config"
	"github.com/javiermolinar/esmalte/internal/schedule"
	"github.com/javiermolinar/esmalte/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	engine  *schedule.Engine
	catalog *catalog.Catalog
	config  *config.Config
	root    *cobra.Command
	admin   bool // Start the TUI in admin mode
	noColor bool
}

// NewApp creates a new CLI application with the given engine, catalog, and config.
func NewApp(engine *schedule.Engine, cat *catalog.Catalog, cfg *config.Config) *App {
	a := &App{engine: engine, catalog: cat, config: cfg}

	a.root = &cobra.Command{
		Use:   "esmalte",
		Short: "A terminal reservation system for a nail salon",
		Long: `Esmalte is a terminal reservation system for a nail salon.

Customers pick a staff member, a service, and an open time slot;
administrators manage the schedule grid, bookings, staff, services,
and customer time requests.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(a.engine, a.catalog, a.config, a.admin)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.admin, "admin", false, "Start in admin mode")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.staffCmd())
	a.root.AddCommand(a.menuCmd())
	a.root.AddCommand(a.slotsCmd())
	a.root.AddCommand(a.bookCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.toggleCmd())
	a.root.AddCommand(a.regenerateCmd())
	a.root.AddCommand(a.resetCmd())
	a.root.AddCommand(a.reservationsCmd())
	a.root.AddCommand(a.completeCmd())
	a.root.AddCommand(a.requestCmd())
	a.root.AddCommand(a.requestsCmd())
	a.root.AddCommand(a.suggestCmd())
	a.root.AddCommand(a.statsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("esmalte %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
