package main

import (
	"fmt"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finwell/finhealth/internal/store"
)

var (
	rescoreTracker     string
	rescoreLimit       int
	rescoreConcurrency int
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Re-score stored submissions against the current configuration",
	Long:  "Recomputes results for stored submissions after a catalog, tracker, or weight change, and persists the updated results.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		subs, err := env.Store.ListSubmissions(ctx, store.SubmissionFilter{
			TrackerKey: rescoreTracker,
			Limit:      rescoreLimit,
		})
		if err != nil {
			return eris.Wrap(err, "rescore: list submissions")
		}
		if len(subs) == 0 {
			zap.L().Info("no submissions to rescore")
			return nil
		}

		zap.L().Info("rescoring submissions",
			zap.Int("submissions", len(subs)),
			zap.Int("concurrency", rescoreConcurrency),
		)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(rescoreConcurrency)

		var succeeded, failed atomic.Int64

		for _, sub := range subs {
			sub := sub
			g.Go(func() error {
				log := zap.L().With(zap.String("submission", sub.ID))

				result, err := env.Service.Rescore(gctx, sub.ID)
				if err != nil {
					failed.Add(1)
					log.Error("rescore failed", zap.Error(err))
					return nil // don't abort the batch on individual failure
				}

				succeeded.Add(1)
				log.Debug("rescored",
					zap.Float64("overall", result.OverallScore),
					zap.String("label", string(result.HealthLabel)),
				)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "rescore")
		}

		zap.L().Info("rescore complete",
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("failed", failed.Load()),
		)
		fmt.Printf("rescored %d submissions (%d failed)\n", succeeded.Load(), failed.Load())
		return nil
	},
}

func init() {
	rescoreCmd.Flags().StringVar(&rescoreTracker, "tracker", "", "only rescore submissions for this tracker key")
	rescoreCmd.Flags().IntVar(&rescoreLimit, "limit", 0, "max submissions to rescore (0 = all)")
	rescoreCmd.Flags().IntVar(&rescoreConcurrency, "concurrency", 4, "concurrent rescoring workers")
	rootCmd.AddCommand(rescoreCmd)
}
