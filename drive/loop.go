// Package drive runs swerve kinematics at a fixed rate: every tick it polls a command source,
// steers the fleet and publishes the resulting wheel states.
package drive

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.viam.com/utils"

	"go.viam.com/swerve/input"
	"go.viam.com/swerve/logging"
	"go.viam.com/swerve/swerve"
)

// A CommandSource supplies the latest command. The returned version must change whenever the
// command may have changed; the loop skips ticks where it does not.
type CommandSource interface {
	Poll(ctx context.Context) (input.Command, uint64, error)
}

// A StateSink receives the wheel states computed on a tick, e.g. to drive motors or render.
type StateSink interface {
	PublishStates(ctx context.Context, states []swerve.WheelState) error
}

// StateSinkFunc adapts a function into a StateSink.
type StateSinkFunc func(ctx context.Context, states []swerve.WheelState) error

// PublishStates calls f.
func (f StateSinkFunc) PublishStates(ctx context.Context, states []swerve.WheelState) error {
	return f(ctx, states)
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the clock used for ticking. Tests use clock.NewMock.
func WithClock(clk clock.Clock) Option {
	return func(l *Loop) {
		l.clock = clk
	}
}

// Loop holds the loop config and owns the fleet while running.
type Loop struct {
	cfg    LoopConfig
	logger logging.Logger
	clock  clock.Clock
	dt     time.Duration

	source CommandSource
	sink   StateSink

	mu          sync.Mutex
	fleet       *swerve.Fleet
	polled      bool
	lastVersion uint64
	published   uint64

	activeBackgroundWorkers sync.WaitGroup
	cancelCtx               context.Context
	cancel                  context.CancelFunc
	ticker                  *clock.Ticker
	running                 atomic.Bool
}

// NewLoop constructs a new drive loop for fleet.
func NewLoop(
	cfg LoopConfig,
	fleet *swerve.Fleet,
	source CommandSource,
	sink StateSink,
	logger logging.Logger,
	opts ...Option,
) (*Loop, error) {
	if err := cfg.Validate("loop"); err != nil {
		return nil, err
	}
	if fleet == nil {
		return nil, errors.New("drive loop needs a fleet")
	}
	if source == nil {
		return nil, errors.New("drive loop needs a command source")
	}
	l := &Loop{
		cfg:    cfg,
		logger: logger,
		clock:  clock.New(),
		dt:     cfg.Period(),
		source: source,
		sink:   sink,
		fleet:  fleet,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Frequency returns the loop's frequency.
func (l *Loop) Frequency() float64 {
	return l.cfg.Frequency
}

// Step runs a single tick. It does nothing if the command source has not changed since the last
// tick that ran. Sink errors are logged and do not stop the loop.
func (l *Loop) Step(ctx context.Context) error {
	cmd, version, err := l.source.Poll(ctx)
	if err != nil {
		return errors.Wrap(err, "error polling command source")
	}

	l.mu.Lock()
	if l.polled && version == l.lastVersion {
		l.mu.Unlock()
		return nil
	}
	l.polled = true
	l.lastVersion = version
	l.fleet.SetDirection(cmd.X, cmd.Y, cmd.Rotation)
	states := l.fleet.States()
	l.published++
	l.mu.Unlock()

	l.logger.Debugw("applied command", "x", cmd.X, "y", cmd.Y, "rotation", cmd.Rotation, "version", version)
	if l.sink == nil {
		return nil
	}
	if err := l.sink.PublishStates(ctx, states); err != nil {
		l.logger.Errorw("error publishing wheel states", "error", err)
	}
	return nil
}

// States returns a snapshot of the fleet. It is safe to call while the loop is running.
func (l *Loop) States() []swerve.WheelState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fleet.States()
}

// Published returns how many ticks have applied a new command.
func (l *Loop) Published() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.published
}

// Start starts ticking in the background.
func (l *Loop) Start() error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("drive loop is already running")
	}
	l.logger.Infof("running loop at %1.4f Hz (%v)", l.cfg.Frequency, l.dt)
	l.cancelCtx, l.cancel = context.WithCancel(context.Background())
	l.ticker = l.clock.Ticker(l.dt)

	waitCh := make(chan struct{})
	l.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(func() {
		ctx := l.cancelCtx
		ticker := l.ticker
		close(waitCh)
		for {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ticker.C:
				if err := l.Step(ctx); err != nil && ctx.Err() == nil {
					l.logger.Warnw("drive loop tick failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}, l.activeBackgroundWorkers.Done)
	<-waitCh
	return nil
}

// Stop stops the loop and waits for the background worker to exit.
func (l *Loop) Stop() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}
	l.logger.Debug("closing loop")
	l.ticker.Stop()
	l.cancel()
	l.activeBackgroundWorkers.Wait()
}
