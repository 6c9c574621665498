package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/swerve/config"
	"go.viam.com/swerve/drive"
	"go.viam.com/swerve/input"
	"go.viam.com/swerve/logging"
	"go.viam.com/swerve/render"
	"go.viam.com/swerve/swerve"
	"go.viam.com/swerve/utils"
)

// setup loads the configuration named by the global flags and builds a fleet from it. With no
// config flag the default four wheel base is used.
func setup(c *cli.Context) (*config.Config, *swerve.Fleet, logging.Logger, error) {
	logger := logging.NewLogger("swerve")

	var cfg *config.Config
	if path := c.Path(flagConfig); path != "" {
		var err error
		cfg, err = config.Read(path, logger)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		cfg = config.Default()
	}

	if err := logging.UpdateLoggerLevels(cfg.Log, logger); err != nil {
		warningf(c.App.ErrWriter, "failed to apply log config: %s", err)
	}
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	return cfg, swerve.NewFleetFromConfig(cfg.Wheels, logger), logger, nil
}

// printStates writes one row per wheel.
func printStates(w io.Writer, states []swerve.WheelState) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "X", "Y", "Angle", "Bearing", "Speed"})
	for _, s := range states {
		t.AppendRow(table.Row{
			s.Index,
			fmt.Sprintf("%.2f", s.X),
			fmt.Sprintf("%.2f", s.Y),
			fmt.Sprintf("%.1f°", utils.RadToDeg(s.Theta)),
			fmt.Sprintf("%.1f°", utils.ModAngDeg(utils.RadToDeg(-s.Theta))),
			speedString(s.Speed),
		})
	}
	t.Render()
}

// DirectionAction steers every wheel for a translation and rotation command and prints the result.
func DirectionAction(c *cli.Context) error {
	_, fleet, _, err := setup(c)
	if err != nil {
		return err
	}
	repeat := c.Int(flagRepeat)
	if repeat < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", flagRepeat, repeat)
	}
	x, y, rotation := c.Float64(flagX), c.Float64(flagY), c.Float64(flagRotation)
	for i := 0; i < repeat; i++ {
		fleet.SetDirection(x, y, rotation)
	}
	printStates(c.App.Writer, fleet.States())
	return nil
}

// PivotAction turns the base about a pivot point while translating along a heading.
func PivotAction(c *cli.Context) error {
	_, fleet, _, err := setup(c)
	if err != nil {
		return err
	}
	fleet.SetTranslation(utils.DegToRad(c.Float64(flagHeading)))
	fleet.SetTurn(c.Float64(flagCX), c.Float64(flagCY))
	printStates(c.App.Writer, fleet.States())
	return nil
}

// RenderAction draws the wheel states for a command into a PNG file.
func RenderAction(c *cli.Context) error {
	_, fleet, _, err := setup(c)
	if err != nil {
		return err
	}
	fleet.SetDirection(c.Float64(flagX), c.Float64(flagY), c.Float64(flagRotation))
	out := c.Path(flagOut)
	if err := render.SavePNG(out, fleet, c.Int(flagWidth), c.Int(flagHeight), render.DefaultOptions()); err != nil {
		return err
	}
	infof(c.App.Writer, "wrote %s", out)
	return nil
}

// syncedMixer guards a mixer shared between the event feed and a running drive loop.
type syncedMixer struct {
	mu    sync.Mutex
	mixer *input.Mixer
}

// handleEvents applies events together so the loop never sees half of a stick move.
func (s *syncedMixer) handleEvents(events []input.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed bool
	for _, event := range events {
		if s.mixer.HandleEvent(event) {
			changed = true
		}
	}
	return changed
}

func (s *syncedMixer) Poll(ctx context.Context) (input.Command, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Poll(ctx)
}

// sweepEvents returns the stick events for step i of an n step sweep around the unit circle.
func sweepEvents(i, n int) []input.Event {
	a := 2 * math.Pi * float64(i) / float64(n)
	return []input.Event{
		input.NewPositionEvent(input.AbsoluteX, math.Cos(a)),
		input.NewPositionEvent(input.AbsoluteY, math.Sin(a)),
	}
}

// SimulateAction feeds a joystick sweeping a full circle through the drive loop and prints the
// wheel states published for every position.
func SimulateAction(c *cli.Context) error {
	cfg, fleet, logger, err := setup(c)
	if err != nil {
		return err
	}
	ticks := c.Int(flagTicks)
	if ticks < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", flagTicks, ticks)
	}

	mixer := &syncedMixer{mixer: input.NewMixer(cfg.Input)}
	published := make(chan []swerve.WheelState, 1)
	sink := drive.StateSinkFunc(func(ctx context.Context, states []swerve.WheelState) error {
		select {
		case published <- states:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
	loop, err := drive.NewLoop(cfg.Loop, fleet, mixer, sink, logger.Sublogger("drive"))
	if err != nil {
		return err
	}

	ctx := c.Context
	// The first tick always publishes; take the centered stick's states before sweeping.
	if err := loop.Step(ctx); err != nil {
		return err
	}
	<-published

	realtime := c.Bool(flagRealtime)
	if realtime {
		if err := loop.Start(); err != nil {
			return err
		}
		defer loop.Stop()
	}

	for i := 0; i < ticks; i++ {
		if !mixer.handleEvents(sweepEvents(i, ticks)) {
			continue
		}
		if !realtime {
			if err := loop.Step(ctx); err != nil {
				return err
			}
		}
		var states []swerve.WheelState
		select {
		case states = <-published:
		case <-ctx.Done():
			return ctx.Err()
		}
		printf(c.App.Writer, "step %d of %d", i+1, ticks)
		printStates(c.App.Writer, states)
	}
	infof(c.App.Writer, "published %d wheel state updates", loop.Published())
	return nil
}
