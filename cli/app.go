// Package cli contains the swerve command line application: solving commands for a configured
// base, printing the wheel states, rendering them and simulating a drive loop.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// Flags.
const (
	flagConfig   = "config"
	flagDebug    = "debug"
	flagX        = "x"
	flagY        = "y"
	flagRotation = "rotation"
	flagRepeat   = "repeat"
	flagHeading  = "heading"
	flagCX       = "cx"
	flagCY       = "cy"
	flagOut      = "out"
	flagWidth    = "width"
	flagHeight   = "height"
	flagTicks    = "ticks"
	flagRealtime = "realtime"
)

var commandFlags = []cli.Flag{
	&cli.Float64Flag{
		Name:  flagX,
		Usage: "command x component, in axle angle space (x=1 steers every axle to 0°)",
	},
	&cli.Float64Flag{
		Name:  flagY,
		Usage: "command y component, in axle angle space (y=1 steers every axle to 90°)",
	},
	&cli.Float64Flag{
		Name:  flagRotation,
		Usage: "rotation rate added along each wheel's offset from the center",
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "swerve",
		Usage:           "solve swerve drive inverse kinematics",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load base configuration from JSON5 `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "direction",
				Usage:     "steer every wheel for a translation and rotation command",
				UsageText: "swerve direction --x <x> --y <y> [--rotation <rate>] [--repeat <n>]",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  flagRepeat,
						Value: 1,
						Usage: "apply the command this many times",
					},
				}, commandFlags...),
				Action: DirectionAction,
			},
			{
				Name:      "pivot",
				Usage:     "rotate the base about a pivot point and normalize wheel speeds",
				UsageText: "swerve pivot --heading <degrees> --cx <x> --cy <y>",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  flagHeading,
						Usage: "axle angle in degrees for the translation part of the turn",
					},
					&cli.Float64Flag{
						Name:  flagCX,
						Usage: "pivot x relative to the center of the base",
					},
					&cli.Float64Flag{
						Name:  flagCY,
						Usage: "pivot y relative to the center of the base",
					},
				},
				Action: PivotAction,
			},
			{
				Name:      "render",
				Usage:     "render the wheel states for a command to a PNG file",
				UsageText: "swerve render --out <file.png> [--x <x> --y <y> --rotation <rate>]",
				Flags: append([]cli.Flag{
					&cli.PathFlag{
						Name:     flagOut,
						Required: true,
						Usage:    "output PNG `FILE`",
					},
					&cli.IntFlag{
						Name:  flagWidth,
						Value: 400,
						Usage: "image width in pixels",
					},
					&cli.IntFlag{
						Name:  flagHeight,
						Value: 600,
						Usage: "image height in pixels",
					},
				}, commandFlags...),
				Action: RenderAction,
			},
			{
				Name:      "simulate",
				Usage:     "run the drive loop against a joystick sweeping a full circle",
				UsageText: "swerve simulate [--ticks <n>] [--realtime]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagTicks,
						Value: 8,
						Usage: "number of joystick positions in the sweep",
					},
					&cli.BoolFlag{
						Name:  flagRealtime,
						Usage: "tick at the configured loop frequency instead of as fast as possible",
					},
				},
				Action: SimulateAction,
			},
			{
				Name:   "version",
				Usage:  "print version info for this program",
				Action: VersionAction,
			},
		},
	}
}

// NewApp returns a new app with the CLI function, flags and commands.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
