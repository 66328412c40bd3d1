package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/spatialkit/rotation/logging"
)

const (
	// Global flags.
	flagLogLevel  = "log-level"
	flagUnit      = "unit"
	flagSequence  = "sequence"
	flagFormat    = "format"
	flagPrecision = "precision"

	// Command flags.
	flagFrom       = "from"
	flagTo         = "to"
	flagRatio      = "ratio"
	flagQuaternion = "quaternion"
	flagDecode     = "decode"

	envLogLevel = "ROTCONV_LOG_LEVEL"
	envUnit     = "ROTCONV_UNIT"
	envSequence = "ROTCONV_SEQUENCE"
)

var representationUsage = "one of " + quaternionRepresentation + ", " + vectorRepresentation + ", " +
	matrixRepresentation + " or " + eulerRepresentation

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut. Logs are written to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return newApp(out, errOut, nil)
}

// newApp builds the app around logger, or around a logger writing to errOut when logger is nil.
func newApp(out, errOut io.Writer, logger logging.Logger) *cli.App {
	return &cli.App{
		Name:            "rotconv",
		Usage:           "convert and combine 3D rotations",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Before: func(c *cli.Context) error {
			return setup(c, logger)
		},
		// errors are reported by the caller of Run
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "log level: debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{envLogLevel},
			},
			&cli.StringFlag{
				Name:    flagUnit,
				Usage:   "angle unit used to read and print angles (rad, deg, amin, asec, rev)",
				Value:   "deg",
				EnvVars: []string{envUnit},
			},
			&cli.StringFlag{
				Name:    flagSequence,
				Usage:   "axis sequence used to print euler angles (XYZ, ZXY, ZYX)",
				Value:   "ZYX",
				EnvVars: []string{envSequence},
			},
			&cli.StringFlag{
				Name:  flagFormat,
				Usage: "quaternion component order: xyzs or sxyz",
				Value: "xyzs",
			},
			&cli.IntFlag{
				Name:  flagPrecision,
				Usage: "number of decimals to print, negative for the shortest exact form",
				Value: -1,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "convert a rotation from one representation to another",
				ArgsUsage: "<rotation>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagFrom,
						Required: true,
						Usage:    "representation of the input, " + representationUsage,
					},
					&cli.StringFlag{
						Name:     flagTo,
						Required: true,
						Usage:    "representation of the output, " + representationUsage,
					},
				},
				Action: ConvertAction,
			},
			{
				Name:      "compose",
				Usage:     "compose two quaternions, the second one applied first",
				ArgsUsage: "<quaternion> <quaternion>",
				Action:    ComposeAction,
			},
			{
				Name:      "slerp",
				Usage:     "spherically interpolate between two quaternions",
				ArgsUsage: "<quaternion> <quaternion>",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:     flagRatio,
						Required: true,
						Usage:    "interpolation ratio in [0, 1]",
					},
				},
				Action: SlerpAction,
			},
			{
				Name:      "rotate",
				Usage:     "rotate a vector",
				ArgsUsage: "<vector>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagQuaternion,
						Required: true,
						Usage:    "unit quaternion to rotate with",
					},
				},
				Action: RotateAction,
			},
			{
				Name:      "describe",
				Usage:     "print a rotation in every representation",
				ArgsUsage: "<rotation>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagFrom,
						Value: quaternionRepresentation,
						Usage: "representation of the input, " + representationUsage,
					},
				},
				Action: DescribeAction,
			},
			{
				Name:      "json",
				Usage:     "encode a rotation as a JSON orientation, or decode one",
				ArgsUsage: "<rotation or json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagFrom,
						Value: quaternionRepresentation,
						Usage: "representation of the input when encoding, " + representationUsage,
					},
					&cli.StringFlag{
						Name:  flagTo,
						Value: quaternionRepresentation,
						Usage: "representation to encode, or to print when decoding, " + representationUsage,
					},
					&cli.BoolFlag{
						Name:  flagDecode,
						Usage: "read a JSON orientation instead of writing one",
					},
				},
				Action: JSONAction,
			},
		},
	}
}
