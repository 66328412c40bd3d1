package cli

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/spatialkit/rotation/spatialmath"
)

var allRepresentations = []string{
	quaternionRepresentation,
	vectorRepresentation,
	matrixRepresentation,
	eulerRepresentation,
}

func checkArgs(c *cli.Context, count int) error {
	if c.NArg() != count {
		return errors.Errorf("%s expects %d argument(s) %s, got %d", c.Command.Name, count, c.Command.ArgsUsage, c.NArg())
	}
	return nil
}

// ConvertAction prints the rotation given in the --from representation in the --to representation.
func ConvertAction(c *cli.Context) error {
	s, err := getSettings(c)
	if err != nil {
		return err
	}
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	from, to := c.String(flagFrom), c.String(flagTo)
	s.logger.Debugw("converting", "from", from, "to", to, "input", c.Args().First())

	o, err := parseOrientation(s, from, c.Args().First())
	if err != nil {
		return err
	}
	out, err := formatOrientation(s, o, to)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

// ComposeAction prints the product of two quaternions. The rotation on the right is applied first.
func ComposeAction(c *cli.Context) error {
	s, err := getSettings(c)
	if err != nil {
		return err
	}
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	q1, err := parseQuaternion(s, c.Args().Get(0))
	if err != nil {
		return err
	}
	q2, err := parseQuaternion(s, c.Args().Get(1))
	if err != nil {
		return err
	}
	s.logger.Debugw("composing", "left", q1, "right", q2)

	product, err := q1.CrossMultiply(q2)
	if err != nil {
		return err
	}
	out, err := formatOrientation(s, product, quaternionRepresentation)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

// SlerpAction prints the spherical interpolation between two quaternions at --ratio.
func SlerpAction(c *cli.Context) error {
	s, err := getSettings(c)
	if err != nil {
		return err
	}
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	q1, err := parseQuaternion(s, c.Args().Get(0))
	if err != nil {
		return err
	}
	q2, err := parseQuaternion(s, c.Args().Get(1))
	if err != nil {
		return err
	}
	ratio := c.Float64(flagRatio)
	s.logger.Debugw("interpolating", "from", q1, "to", q2, "ratio", ratio)

	q, err := spatialmath.Slerp(q1, q2, ratio)
	if err != nil {
		return err
	}
	out, err := formatOrientation(s, q, quaternionRepresentation)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

// RotateAction prints a vector rotated by --quaternion.
func RotateAction(c *cli.Context) error {
	s, err := getSettings(c)
	if err != nil {
		return err
	}
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	q, err := parseQuaternion(s, c.String(flagQuaternion))
	if err != nil {
		return err
	}
	v, err := spatialmath.ParseVector(c.Args().First())
	if err != nil {
		return err
	}
	s.logger.Debugw("rotating", "quaternion", q, "vector", v)

	rotated, err := q.RotateVector(v)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", spatialmath.FormatVector(rotated, s.precision))
	return nil
}

// DescribeAction prints a table holding the rotation in every representation along with its angle.
func DescribeAction(c *cli.Context) error {
	s, err := getSettings(c)
	if err != nil {
		return err
	}
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	from := c.String(flagFrom)
	s.logger.Debugw("describing", "from", from, "input", c.Args().First())

	o, err := parseOrientation(s, from, c.Args().First())
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Representation", "Value"})
	for _, representation := range allRepresentations {
		out, err := formatOrientation(s, o, representation)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{representation, out})
	}

	q, err := o.Quaternion()
	if err != nil {
		return err
	}
	angle, err := q.AngularDifferenceWith(spatialmath.UnitQuaternion())
	if err != nil {
		return err
	}
	value, err := angle.In(s.unit)
	if err != nil {
		return err
	}
	t.AppendRow(table.Row{"angle", spatialmath.NewAngle(value, s.unit).String()})

	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// JSONAction encodes a rotation as a JSON orientation in the --to representation or, with --decode,
// prints a JSON orientation in the --to representation.
func JSONAction(c *cli.Context) error {
	s, err := getSettings(c)
	if err != nil {
		return err
	}
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	to := c.String(flagTo)
	if c.Bool(flagDecode) {
		s.logger.Debugw("decoding json orientation", "to", to)
		var raw spatialmath.RawOrientation
		if err := json.Unmarshal([]byte(c.Args().First()), &raw); err != nil {
			return errors.Wrap(err, "invalid json orientation")
		}
		o, err := spatialmath.ParseOrientation(raw)
		if err != nil {
			return err
		}
		out, err := formatOrientation(s, o, to)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "%s", out)
		return nil
	}

	from := c.String(flagFrom)
	s.logger.Debugw("encoding json orientation", "from", from, "to", to)
	o, err := parseOrientation(s, from, c.Args().First())
	if err != nil {
		return err
	}
	o, err = convertOrientation(s, o, to)
	if err != nil {
		return err
	}
	raw, err := spatialmath.NewRawOrientation(o)
	if err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", bytes)
	return nil
}

// convertOrientation changes the concrete representation of o.
func convertOrientation(s *settings, o spatialmath.Orientation, representation string) (spatialmath.Orientation, error) {
	var (
		converted spatialmath.Orientation
		err       error
	)
	switch representation {
	case quaternionRepresentation:
		converted, err = o.Quaternion()
	case vectorRepresentation:
		converted, err = o.RotationVector()
	case matrixRepresentation:
		converted, err = o.RotationMatrix()
	case eulerRepresentation:
		converted, err = o.EulerAngle(s.sequence)
	default:
		return nil, errors.Errorf("unknown representation %q, expected %s", representation, representationUsage)
	}
	if err != nil {
		return nil, err
	}
	return converted, nil
}
