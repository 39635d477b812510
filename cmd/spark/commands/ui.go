package commands

import (
	"os"

	"github.com/fatih/color"
)

var (
	okText    = color.New(color.FgGreen)
	errText   = color.New(color.FgRed, color.Bold)
	labelText = color.New(color.FgCyan)
	warnText  = color.New(color.FgYellow)
)

func init() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}
}
