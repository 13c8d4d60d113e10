package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"feedbackbot/internal/prompt"
	"feedbackbot/internal/question"
)

// runQuestions builds the handler for the questions command.
func runQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .feedbackbot/config.yml)")
		showPrompt := flags.Bool("prompt", false, "Print the generated system prompt instead of the list")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		catalog, err := loaded.Catalog()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load questions:\n%v\n", err)
			return ExitError
		}

		if *showPrompt {
			text, err := prompt.RenderSystemPrompt(context.Background(), catalog)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to render system prompt: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, text)
			return ExitOK
		}

		for _, q := range catalog.Questions() {
			text := strings.Join(strings.Fields(q.Text), " ")
			fmt.Fprintf(stdout, "%2d. [%s] %s\n", q.ID, q.Kind(), text)
			fmt.Fprintf(stdout, "    accepts: %s\n", question.Hint(q))
		}
		return ExitOK
	}
}
