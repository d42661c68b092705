package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/signal"
	"github.com/spf13/cobra"
)

type unit interface {
	Walk()
	gameEvents() signal.Connector[domain.GameEvent]
	pointEvents() signal.Connector[int]
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "example [human|zombie|all]",
		Short: "Walk units until their game is over, printing every event",
		Long: `Walk a unit until its game is over while slots print every event it fires.

Units:
  human   signals reached through connect methods
  zombie  signals exposed as public fields
  all     both, one after the other (default)`,
		ValidArgs: []string{"human", "zombie", "all"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "all"
			if len(args) > 0 {
				which = args[0]
			}

			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "example",
				Level:  hclog.LevelFromString(logLevel),
				Output: cmd.ErrOrStderr(),
			})

			out := cmd.OutOrStdout()
			if which == "human" || which == "all" {
				fmt.Fprintln(out, "\nExample connect methods: Human")
				play(out, NewHuman(logger))
			}
			if which == "zombie" || which == "all" {
				fmt.Fprintln(out, "\nExample public signals: Zombie")
				play(out, NewZombie(logger))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level [trace, debug, info, warn, error]")

	return cmd
}

// play walks u until its game is over
func play(out io.Writer, u unit) {
	gameOver := false

	var conns signal.ScopedConnectionGroup
	defer conns.Close()

	conns.Add(
		u.gameEvents().Connect(func(e domain.GameEvent) {
			switch e {
			case domain.GameOver:
				gameOver = true
				fmt.Fprintln(out, "Game Over")
			case domain.Walk:
				fmt.Fprintln(out, "Walking")
			}
		}),
		u.pointEvents().Connect(func(points int) {
			fmt.Fprintf(out, "Points updated: %d\n", points)
		}),
	)

	for !gameOver {
		u.Walk()
	}
}
