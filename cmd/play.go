// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/s0up4200/subplay/internal/mirror"
	"github.com/s0up4200/subplay/internal/player"
	"github.com/s0up4200/subplay/internal/session"
	"github.com/s0up4200/subplay/internal/settings"
	"github.com/s0up4200/subplay/internal/subtitle"
	"github.com/s0up4200/subplay/internal/timecode"
)

var (
	playFrom     string
	playCue      int
	playRestart  bool
	playFind     string
	showTimecode bool
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a subtitle file in real time",
	Long: `Play shows each cue of a subtitle file when its start time is reached.
Playback resumes at the cue shown last time unless --restart, --from, --cue
or --find is given. Press Ctrl-C to stop; the position is remembered.

Example:
  subplay play movie.srt
  subplay play movie.sub --from 00:12:30.000
  subplay play movie.srt --find "good morning"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadSettings()
		if err != nil {
			return err
		}

		s, err := openSession(args[0], store)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := s.Player()
		rows := mirror.Sync(s.List(), func(c subtitle.Cue) string {
			return cueRow(c, showTimecode || cfg.ShowTimestamps)
		})

		unsubscribe := p.Subscribe(func(c player.Change) {
			switch c.Property {
			case player.CueActive:
				if c.State.IsCueActive && c.State.CurrentIndex >= 0 && c.State.CurrentIndex < rows.Len() {
					fmt.Fprintln(cmd.OutOrStdout(), rows.At(c.State.CurrentIndex))
				}
			case player.CurrentIndex:
				log.Debug().Int("from", c.PrevIndex).Int("to", c.State.CurrentIndex).Msg("current cue changed")
			}
		})
		defer unsubscribe()

		if err := startPlayback(ctx, s); err != nil {
			return err
		}

		select {
		case <-p.Done():
		case <-ctx.Done():
			log.Info().Msg("stopping playback")
		}
		p.Wait()

		s.Close()
		if err := store.Save(); err != nil {
			return err
		}
		return nil
	},
}

func startPlayback(ctx context.Context, s *session.Session) error {
	p := s.Player()
	switch {
	case playFind != "":
		p.Home()
		if i := s.FindNext(playFind); i < 0 {
			return fmt.Errorf("no cue matches %q", playFind)
		}
		p.Resume(ctx)
	case playCue > 0:
		if playCue > len(p.Cues()) {
			return fmt.Errorf("cue %d out of range (1-%d)", playCue, len(p.Cues()))
		}
		p.Seek(playCue - 1)
		p.Resume(ctx)
	case playFrom != "":
		p.Play(ctx, timecode.ParseDisplay(playFrom))
	case playRestart:
		p.PlayFromStart(ctx)
	default:
		if st := p.State(); st.CurrentIndex != player.NoCue {
			log.Info().Int("cue", st.CurrentIndex+1).Msg("resuming playback")
		}
		p.Resume(ctx)
	}
	return nil
}

// openSession opens path with the configured fallback, tick and --encoding.
func openSession(path string, store settings.Store) (*session.Session, error) {
	opts := []session.Option{
		session.WithLogger(log.Logger),
		session.WithTick(cfg.Tick.Duration),
		session.WithFallback(cfg.FallbackEncoding),
		session.WithNotice(func(label string) {
			log.Warn().Str("encoding", label).Msgf("%s is not unicode text; showing it as %s. Use --encoding to pick another.", path, label)
		}),
	}
	if encoding != "" {
		opts = append(opts, session.WithEncoding(encoding))
	}

	s, err := session.Open(path, store, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("file", s.Path()).
		Str("format", string(s.Format())).
		Int("cues", len(s.Cues())).
		Msg("opened subtitle file")
	return s, nil
}

func cueRow(c subtitle.Cue, timestamps bool) string {
	text := strings.ReplaceAll(c.Text, "\n", " / ")
	if !timestamps {
		return text
	}
	return fmt.Sprintf("[%s] %s", timecode.FormatDisplay(c.Start), text)
}

func init() {
	playCmd.Flags().StringVarP(&playFrom, "from", "f", "", "start time (hh:mm:ss.mmm)")
	playCmd.Flags().IntVar(&playCue, "cue", 0, "start at this cue number (1-based)")
	playCmd.Flags().BoolVar(&playRestart, "restart", false, "ignore the remembered position and start from the beginning")
	playCmd.Flags().StringVar(&playFind, "find", "", "start at the first cue matching this text")
	playCmd.Flags().BoolVarP(&showTimecode, "timestamps", "t", false, "show start times next to cue text")

	rootCmd.AddCommand(playCmd)
}
