package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/tilegen"
	"github.com/gogpu/tilegen/internal/config"
	"github.com/gogpu/tilegen/internal/simulate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Scroll through a synthetic page and paint its tiles",
	Long: `Simulate scrolls a viewport over a synthetic page. Each step schedules
the visible band of tiles and invalidates the previous band again, so
pending requests coalesce. With --reload-every the page is replaced
periodically and its outstanding work cancelled.

The final page is composited and written as a PNG.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.Int("cols", 0, "page width in tiles")
	f.Int("rows", 0, "page height in tiles")
	f.Int("tile-size", 0, "tile edge length in pixels")
	f.Int("workers", 0, "goroutines painting the tiles of one set")
	f.Bool("labels", false, "draw col,row labels on painted tiles")
	f.Int("viewport-rows", 0, "visible tile rows")
	f.Int("steps", 0, "scroll steps to simulate")
	f.Int("reload-every", 0, "replace the page every N steps (0 = never)")
	f.StringP("output", "o", "", "PNG file for the final page (empty = none)")

	bind := map[string]string{
		"page.cols":              "cols",
		"page.rows":              "rows",
		"page.tile_size":         "tile-size",
		"generator.workers":      "workers",
		"generator.labels":       "labels",
		"simulate.viewport_rows": "viewport-rows",
		"simulate.steps":         "steps",
		"simulate.reload_every":  "reload-every",
		"simulate.output":        "output",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))
	tilegen.SetLogger(logger)
	defer tilegen.SetLogger(nil)

	res, err := simulate.Run(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if out := cfg.Simulate.Output; out != "" {
		if err := simulate.WritePNG(out, res.Image); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		logger.Info("wrote page", "path", out, "bounds", res.Image.Bounds().String())
	}

	st := res.Stats
	logger.Info("simulation finished",
		"steps", res.Steps,
		"pages", res.Pages,
		"scheduled", st.Scheduled,
		"coalesced", st.Coalesced,
		"painted", st.Painted,
		"tiles_painted", st.TilesPainted,
		"removed", st.Removed,
		"waits", st.Waits)

	fmt.Fprintf(cmd.OutOrStdout(), "scheduled %d sets: %d painted, %d coalesced, %d removed\n",
		st.Scheduled, st.Painted, st.Coalesced, st.Removed)
	return nil
}
