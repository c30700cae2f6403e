package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crowdmap/crowd-heatmap/internal/config"
	"github.com/crowdmap/crowd-heatmap/internal/osm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "crowdmap",
	Short: "Crowd intensity heatmap API",
	Long:  "Estimates crowd intensity around a point from nearby OpenStreetMap POIs and collects business owner profiles.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func newOverpassClient(c *config.Config) *osm.OverpassClient {
	return osm.NewOverpassClient(c.Overpass.URL,
		osm.WithTimeout(time.Duration(c.Overpass.TimeoutSecs)*time.Second),
		osm.WithRateLimit(c.Overpass.RatePerSec),
	)
}

func newNominatimClient(c *config.Config) *osm.NominatimClient {
	return osm.NewNominatimClient(c.Nominatim.URL,
		osm.WithTimeout(time.Duration(c.Nominatim.TimeoutSecs)*time.Second),
		osm.WithRateLimit(c.Nominatim.RatePerSec),
		osm.WithUserAgent(c.Nominatim.UserAgent),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
