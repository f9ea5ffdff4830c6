package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/robalobadob/guessnumber/internal/config"
	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/random"
	"github.com/robalobadob/guessnumber/internal/sound"
	"github.com/robalobadob/guessnumber/internal/store"
	"github.com/robalobadob/guessnumber/internal/ui"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "guessnumber",
		Short: "Guess the hidden number",
		Long: "guessnumber picks a random number from a range and tells you whether each guess\n" +
			"is too low or too high. Every win is saved with your name and attempt count.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.AddCommand(newResultsCmd(), newClearCmd())
	return root
}

func newResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Print saved results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, done, err := setup(false)
			if err != nil {
				return err
			}
			defer done()
			return ui.PrintResults(cmd.Context(), st, cmd.OutOrStdout())
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !ui.Confirm(bufio.NewScanner(cmd.InOrStdin()), out, "Clear all saved results? This cannot be undone.") {
				fmt.Fprintln(out, "Nothing cleared.")
				return nil
			}
			st, done, err := setup(false)
			if err != nil {
				return err
			}
			defer done()
			if err := st.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, "All results cleared.")
			return nil
		},
	}
}

// runPlay starts a game: full-screen when attached to a terminal, line
// mode otherwise.
func runPlay(ctx context.Context, in io.Reader, out io.Writer) error {
	interactive := isTerminal(in) && isTerminal(out)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logs, err := config.SetupLogging(cfg, interactive)
	if err != nil {
		return err
	}
	defer logs.Close()

	st, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("open results database")
		return err
	}
	sess, err := game.NewSession(random.Crypto{}, cfg.RangeMin, cfg.RangeMax)
	if err != nil {
		_ = st.Close()
		return err
	}
	ctrl := ui.NewController(sess, st, sound.New(sound.Options{Mute: cfg.Mute, File: cfg.SoundFile}))
	defer func() {
		if err := ctrl.Close(); err != nil {
			log.Warn().Err(err).Msg("close")
		}
	}()

	log.Info().Bool("tui", interactive).Int("min", cfg.RangeMin).Int("max", cfg.RangeMax).Msg("game started")
	if interactive {
		return ui.RunTUI(ctx, ctrl)
	}
	p := ui.NewPlain(ctrl, in, out)
	p.MaxNamePrompts = cfg.NamePrompts
	return p.Run(ctx)
}

// setup loads config, logging and the store for the one-shot subcommands.
// done closes everything setup opened.
func setup(interactive bool) (store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logs, err := config.SetupLogging(cfg, interactive)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		_ = logs.Close()
		return nil, nil, err
	}
	return st, func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("close results database")
		}
		_ = logs.Close()
	}, nil
}

// openStore opens the SQLite file, or an in-memory store when no path is set.
func openStore(cfg config.Config) (store.Store, error) {
	if cfg.DBPath == "" {
		log.Warn().Msg("GUESS_DB_PATH is empty, results will not be kept")
		return store.NewMemoryStore(), nil
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
