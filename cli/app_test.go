package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"swerve"}, args...))
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base.json5")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestDirectionAction(t *testing.T) {
	t.Run("straight ahead", func(t *testing.T) {
		out, _, err := runApp(t, "direction", "--x", "1", "--y", "0")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "SPEED")
		test.That(t, strings.Count(out, "1.000"), test.ShouldEqual, 4)
		test.That(t, out, test.ShouldNotContainSubstring, "-1.000")
		// bearings are shown in [0, 360)
		test.That(t, out, test.ShouldNotContainSubstring, "-0.0°")
	})

	t.Run("reversing keeps wheels in place", func(t *testing.T) {
		out, _, err := runApp(t, "--debug", "direction", "--x", "-1", "--y", "0")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, strings.Count(out, "-1.000"), test.ShouldEqual, 4)
		test.That(t, out, test.ShouldNotContainSubstring, "180.0°")
	})

	t.Run("bad repeat", func(t *testing.T) {
		_, _, err := runApp(t, "direction", "--x", "1", "--repeat", "0")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "--repeat must be at least 1")
	})

	t.Run("config file", func(t *testing.T) {
		path := writeConfig(t, `{
			wheels: [
				{x: 0, y: 10, diameter: 4, width: 1},
				{x: 0, y: -10, diameter: 4, width: 1},
			],
		}`)
		out, _, err := runApp(t, "--config", path, "direction", "--x", "1")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, strings.Count(out, "1.000"), test.ShouldEqual, 2)
	})

	t.Run("invalid config file", func(t *testing.T) {
		path := writeConfig(t, `{wheels: [{x: 0, y: 10, diameter: -4, width: 1}]}`)
		_, _, err := runApp(t, "-c", path, "direction", "--x", "1")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "invalid config")
	})
}

func TestPivotAction(t *testing.T) {
	out, _, err := runApp(t, "pivot", "--heading", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Count(out, "1.000"), test.ShouldEqual, 4)

	// Pivoting about the front right wheel stops it while the others turn around it.
	out, _, err = runApp(t, "pivot", "--cx", "10", "--cy", "15")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "0.000")
	test.That(t, strings.Count(out, "1.000"), test.ShouldEqual, 1)
}

func TestRenderAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.png")
	out, _, err := runApp(t, "render", "--out", path, "--x", "1", "--y", "1", "--width", "200", "--height", "300")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "wrote "+path)

	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	img, err := png.Decode(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 200)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, 300)

	_, _, err = runApp(t, "render")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out")
}

func TestSimulateAction(t *testing.T) {
	t.Run("stepped", func(t *testing.T) {
		out, _, err := runApp(t, "simulate", "--ticks", "4")
		test.That(t, err, test.ShouldBeNil)
		for _, step := range []string{"step 1 of 4", "step 2 of 4", "step 3 of 4", "step 4 of 4"} {
			test.That(t, out, test.ShouldContainSubstring, step)
		}
		test.That(t, out, test.ShouldContainSubstring, "published 5 wheel state updates")
	})

	t.Run("realtime", func(t *testing.T) {
		out, _, err := runApp(t, "simulate", "--ticks", "2", "--realtime")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "step 2 of 2")
		test.That(t, out, test.ShouldContainSubstring, "published 3 wheel state updates")
	})

	t.Run("bad ticks", func(t *testing.T) {
		_, _, err := runApp(t, "simulate", "--ticks", "0")
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestAppCommands(t *testing.T) {
	var names []string
	for _, cmd := range NewApp(&bytes.Buffer{}, &bytes.Buffer{}).Commands {
		names = append(names, cmd.Name)
	}
	test.That(t, names, test.ShouldResemble, []string{"direction", "pivot", "render", "simulate", "version"})
}

func TestSpeedString(t *testing.T) {
	test.That(t, speedString(0.5), test.ShouldEqual, "0.500")
	test.That(t, speedString(-1e-5), test.ShouldEqual, "0.000")
	test.That(t, speedString(-0.5), test.ShouldContainSubstring, "-0.500")
}

func TestVersionAction(t *testing.T) {
	out, _, err := runApp(t, "version")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "version (dev)")
}
