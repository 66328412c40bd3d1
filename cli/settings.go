package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/spatialkit/rotation/logging"
	"github.com/spatialkit/rotation/spatialmath"
)

const settingsKey = "settings"

// settings holds the global flags, parsed once before any command runs.
type settings struct {
	logger    logging.Logger
	errWriter io.Writer
	unit      spatialmath.AngleUnit
	sequence  spatialmath.AxisSequence
	format    spatialmath.QuaternionFormat
	precision int
}

func setup(c *cli.Context, logger logging.Logger) error {
	level, err := logging.LevelFromString(c.String(flagLogLevel))
	if err != nil {
		return err
	}
	if logger == nil {
		logger = logging.NewLogger("rotconv", level, logging.NewWriterAppender(c.App.ErrWriter))
	} else {
		logger.SetLevel(level)
	}

	s := &settings{logger: logger, errWriter: c.App.ErrWriter, precision: c.Int(flagPrecision)}
	if s.unit, err = spatialmath.ParseAngleUnit(c.String(flagUnit)); err != nil {
		return errors.Wrapf(err, "invalid --%s", flagUnit)
	}
	if s.sequence, err = spatialmath.ParseAxisSequence(c.String(flagSequence)); err != nil {
		return errors.Wrapf(err, "invalid --%s", flagSequence)
	}
	if s.format, err = spatialmath.ParseQuaternionFormat(c.String(flagFormat)); err != nil {
		return errors.Wrapf(err, "invalid --%s", flagFormat)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[settingsKey] = s
	logger.Debugw("settings", "level", level, "unit", s.unit, "sequence", s.sequence, "format", s.format, "precision", s.precision)
	return nil
}

func getSettings(c *cli.Context) (*settings, error) {
	s, ok := c.App.Metadata[settingsKey].(*settings)
	if !ok {
		return nil, errors.New("settings were not initialized")
	}
	return s, nil
}
