package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"feedbackbot/internal/survey"
)

// colorEnabled reports whether w is a terminal that should get colour.
// Setting NO_COLOR disables colour everywhere.
var colorEnabled = func(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// botPrinter prints "Bot:" lines, with a coloured label when enabled.
func botPrinter(colored bool) survey.Printer {
	label := color.New(color.FgCyan, color.Bold)
	if colored {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	return func(out io.Writer, message string) {
		fmt.Fprintf(out, "%s %s\n", label.Sprint("Bot:"), message)
	}
}

// errorLabel formats an error prefix, coloured when enabled.
func errorLabel(text string, colored bool) string {
	label := color.New(color.FgRed)
	if colored {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	return label.Sprint(text)
}
