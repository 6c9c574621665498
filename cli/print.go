package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"go.viam.com/swerve/utils"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	if _, err := color.New(color.Bold, color.FgCyan).Fprint(w, "Info: "); err != nil {
		return
	}
	printf(w, format, a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	if _, err := color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: "); err != nil {
		return
	}
	printf(w, format, a...)
}

var reverseSpeed = color.New(color.FgRed)

// speedString renders a wheel speed, highlighting wheels running backwards. Speeds that round to
// zero print as 0.000 rather than -0.000.
func speedString(speed float64) string {
	if utils.Float64AlmostEqual(speed, 0, 5e-4) {
		speed = 0
	}
	s := fmt.Sprintf("%.3f", speed)
	if strings.HasPrefix(s, "-") {
		return reverseSpeed.Sprint(s)
	}
	return s
}
