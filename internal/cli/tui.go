package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
)

const (
	defaultRefresh = time.Minute
	minRefresh     = 5 * time.Second
	maxRefresh     = time.Hour
)

// sender receives UI messages; *tea.Program satisfies it.
type sender interface {
	Send(msg tea.Msg)
}

func newTUICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive almanac",
		Long: `Launch the terminal UI: upcoming events, a sky view of the Sun, Moon and
planets, and a log of events as they pass. The almanac is recomputed every
--refresh interval.

When standard output is not a terminal the almanac is computed once and
printed in the selected --format instead.`,
		Args: cobra.NoArgs,
		RunE: a.runTUI,
	}
	cmd.Flags().Duration("refresh", defaultRefresh, "recompute interval (e.g. 30s, 5m)")
	cmd.Flags().Duration("horizon", state.DefaultHorizon, "how far ahead to list events")
	return cmd
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	refresh, _ := cmd.Flags().GetDuration("refresh")
	horizon, _ := cmd.Flags().GetDuration("horizon")
	refresh = min(max(refresh, minRefresh), maxRefresh)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = refresh
	stateMgr := state.NewManager(stateCfg)

	builder := state.NewBuilder(
		a.finder("almanac"),
		a.cfg.ObserverSite(),
		state.WithHorizon(horizon),
		state.WithRefraction(a.cfg.RefractionMode()),
	)

	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(out.Fd())) {
		return a.printAlmanac(ctx, cmd, builder)
	}

	// The TUI owns the terminal; keep log lines out of it.
	a.log.SetOutput(io.Discard)

	p := tea.NewProgram(ui.New(stateMgr), tea.WithAltScreen(), tea.WithContext(ctx))
	go a.runBuildLoop(ctx, builder, stateMgr, p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// printAlmanac computes one almanac at the start time and writes its
// first --count events.
func (a *app) printAlmanac(ctx context.Context, cmd *cobra.Command, builder *state.Builder) error {
	return a.execute(cmd, query{
		family:   "almanac",
		title:    "Almanac",
		observer: true,
		run: func(*events.Finder) ([]report.Record, error) {
			result := builder.Build(ctx, a.start.Go())
			if result.Error != nil {
				return nil, result.Error
			}
			recs := result.Data.Upcoming
			return recs[:min(len(recs), a.cfg.Output.Count)], nil
		},
	})
}

func (a *app) runBuildLoop(ctx context.Context, builder *state.Builder, stateMgr *state.Manager, p sender) {
	a.build(ctx, builder, stateMgr, p, a.now())

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Debug("build loop shutting down")
			return
		case t := <-ticker.C:
			a.build(ctx, builder, stateMgr, p, t)
		}
	}
}

// build recomputes the almanac for at and notifies p.
func (a *app) build(ctx context.Context, builder *state.Builder, stateMgr *state.Manager, p sender, at time.Time) {
	a.log.Debug("computing almanac for %v", at.UTC())

	result := builder.Build(ctx, at)
	found := 0
	if result.Data != nil {
		found = len(result.Data.Upcoming)
	}
	a.metrics.ObserveSearch("almanac", result.Duration, found, result.Error)

	if result.Error != nil {
		a.log.Error("almanac failed: %v", result.Error)
		stateMgr.Update(nil, result.Duration, result.Error)
		p.Send(ui.ErrorMsg{Error: result.Error})
		return
	}

	a.log.Debug("almanac complete: %d events, %d sky objects in %v",
		len(result.Data.Upcoming), len(result.Data.Sky), result.Duration)

	stateMgr.Update(result.Data, result.Duration, nil)
	p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}

