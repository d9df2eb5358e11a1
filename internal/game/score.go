package game

import (
	"math"
	"slices"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// guessPoints computes the award for a correct guess: the flat base plus a
// time bonus linear in the remaining fraction of the drawing countdown,
// rounded up.
func guessPoints(cfg internal.Config, remainingSeconds int) int {
	bonus := math.Ceil(float64(remainingSeconds) / float64(cfg.DrawSeconds) * float64(cfg.BonusPoints))
	return cfg.BasePoints + int(bonus)
}

// buildPodium ranks players by descending score, ties broken by join order,
// and returns the top n.
func buildPodium(players []*internal.Player, n int) []internal.PlayerSnapshot {
	ranked := make([]internal.PlayerSnapshot, 0, len(players))
	for _, p := range players {
		ranked = append(ranked, p.Snapshot())
	}
	slices.SortStableFunc(ranked, func(a, b internal.PlayerSnapshot) int {
		return b.Score - a.Score
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
