package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/crowdmap/crowd-heatmap/internal/service"
	"github.com/crowdmap/crowd-heatmap/internal/spatial"
)

var (
	estimateLat    float64
	estimateLon    float64
	estimateRadius float64
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate crowd intensity around a point and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.IntensityOptions()
		if estimateRadius > 0 {
			opts.RadiusMeters = estimateRadius
		}

		svc := service.NewIntensityService(newOverpassClient(cfg), opts)
		result, err := svc.Analyze(cmd.Context(), spatial.Point{Lat: estimateLat, Lon: estimateLon})
		if err != nil {
			return eris.Wrap(err, "estimate")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	estimateCmd.Flags().Float64Var(&estimateLat, "lat", 0, "center latitude")
	estimateCmd.Flags().Float64Var(&estimateLon, "lon", 0, "center longitude")
	estimateCmd.Flags().Float64Var(&estimateRadius, "radius", 0, "radius in meters (default from config)")
	_ = estimateCmd.MarkFlagRequired("lat")
	_ = estimateCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(estimateCmd)
}
