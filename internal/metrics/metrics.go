package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_started_total",
		Help: "Number of games created, by game type.",
	}, []string{"type"})

	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_finished_total",
		Help: "Number of games finished, by winner mark or tie.",
	}, []string{"winner"})

	TurnsPlayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tictactoe_turns_played_total",
		Help: "Number of accepted turns across all games.",
	})

	BotMoves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tictactoe_bot_moves_total",
		Help: "Number of moves selected by the negamax bot.",
	})
)
