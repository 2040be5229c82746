package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/holeplan/internal/config"
	"github.com/chazu/holeplan/pkg/kernel"
	"github.com/chazu/holeplan/pkg/kernel/sdfx"
	"github.com/chazu/holeplan/pkg/model"
	"github.com/chazu/holeplan/pkg/obstacle"
	"github.com/chazu/holeplan/pkg/placement"
)

// placeDocument is the output of the place command.
type placeDocument struct {
	Scene     string              `json:"scene" yaml:"scene"`
	Clearance float64             `json:"clearance" yaml:"clearance"`
	Openings  []model.OpeningSpec `json:"openings" yaml:"openings"`
	Summary   placeSummary        `json:"summary" yaml:"summary"`
}

type placeSummary struct {
	Conduits int `json:"conduits" yaml:"conduits"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Openings int `json:"openings" yaml:"openings"`
}

func (a *app) newPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <scene>",
		Short: "Compute the openings for every conduit crossing a wall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := loadScene(ctx, args[0])
			if err != nil {
				return err
			}

			k := sdfx.New(a.cfg.KernelOptions()...)
			specs, rep, err := runPlacement(ctx, k, s, a.cfg)
			if err != nil {
				return err
			}

			return a.writeResult(placeDocument{
				Scene:     args[0],
				Clearance: a.cfg.Clearance,
				Openings:  specs,
				Summary: placeSummary{
					Conduits: rep.Conduits,
					Skipped:  rep.Skipped,
					Openings: rep.Crossings,
				},
			})
		},
	}
}

// runPlacement builds the wall obstacles of s and places every conduit.
// The returned slice is never nil.
func runPlacement(ctx context.Context, k kernel.Kernel, s *model.Scene, cfg config.Config) ([]model.OpeningSpec, placement.Report, error) {
	logger := loggerFromContext(ctx)

	start := time.Now()
	walls, err := obstacle.Build(k, s)
	if err != nil {
		return nil, placement.Report{}, err
	}
	logger.Debug("walls built", "walls", walls.Len(), "elapsed", time.Since(start).Round(time.Millisecond))

	d := placement.New(k, placement.Options{
		Clearance: cfg.Clearance,
		Workers:   cfg.Workers,
		Logger:    logger,
	})
	specs, rep, err := d.RunReport(ctx, s.Conduits, walls)
	if err != nil {
		return nil, rep, err
	}
	if specs == nil {
		specs = []model.OpeningSpec{}
	}
	return specs, rep, nil
}
