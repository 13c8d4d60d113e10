package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"feedbackbot/internal/agent"
	"feedbackbot/internal/config"
	"feedbackbot/internal/logging"
	"feedbackbot/internal/prompt"
	"feedbackbot/internal/store"
	"feedbackbot/internal/survey"
	"feedbackbot/internal/ui/live"
)

// runInput allows tests to override stdin for survey answers.
var runInput io.Reader = os.Stdin

// liveRun runs the terminal UI; tests replace it.
var liveRun = live.Run

// httpClient sends chat-completions requests.
var httpClient agent.HTTPDoer = &http.Client{}

// runOptions holds parsed run flags.
type runOptions struct {
	configPath string
	uiMode     string
	respondent string
	output     string
	format     string
	noColor    bool
}

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		var opts runOptions
		flags.StringVar(&opts.configPath, "config", "", "Path to config file (default: search for .feedbackbot/config.yml)")
		flags.StringVar(&opts.uiMode, "ui", "auto", "UI mode: auto|live|plain")
		flags.StringVar(&opts.respondent, "respondent", "", "Respondent name stored with the answers")
		flags.StringVar(&opts.output, "output", "", "Override the output path")
		flags.StringVar(&opts.format, "format", "", "Override the output format: csv|duckdb|sqlite")
		flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runSurvey(ctx, opts, runInput, stdout, stderr)
	}
}

// runSurvey wires config, clarifier, log and sink, then runs one session.
func runSurvey(ctx context.Context, opts runOptions, stdin io.Reader, stdout, stderr io.Writer) int {
	decision, err := resolveUIMode(opts.uiMode, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid arguments: %v\n", err)
		return ExitUsage
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}
	colored := !opts.noColor && colorEnabled(stdout)
	errColored := !opts.noColor && colorEnabled(stderr)

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(stderr, "%s %v\n", errorLabel("Error:", errColored), err)
		return ExitError
	}
	loaded, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
		return ExitError
	}
	catalog, err := loaded.Catalog()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load questions:\n%v\n", err)
		return ExitError
	}
	output, err := outputConfig(loaded, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid arguments: %v\n", err)
		return ExitUsage
	}

	client, err := agent.ClientFromEnv(loaded.Config.AgentSettings(), httpClient)
	if err != nil {
		var missing *agent.MissingEnvError
		if errors.As(err, &missing) {
			fmt.Fprintf(stderr, "%s %v\n", errorLabel("Error:", errColored), err)
			fmt.Fprintf(stderr, "Set %s in the environment or a .env file.\n", strings.Join(missing.Names, " and "))
			return ExitError
		}
		fmt.Fprintf(stderr, "%s %v\n", errorLabel("Error:", errColored), err)
		return ExitError
	}

	logger, err := logging.New(loaded.LogOptions())
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open log: %v\n", err)
		return ExitError
	}
	defer logger.Close()

	sink, err := store.Open(ctx, output)
	if err != nil {
		logger.Errorf("Error opening output: %v", err)
		fmt.Fprintf(stderr, "Failed to open output: %v\n", err)
		return ExitError
	}
	defer sink.Close()

	systemPrompt, err := prompt.RenderSystemPrompt(ctx, catalog)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to render system prompt: %v\n", err)
		return ExitError
	}
	driver := survey.NewDriver(catalog, client,
		survey.WithMaxRetries(loaded.Config.Survey.MaxRetries),
		survey.WithLogger(logger),
		survey.WithSystemPrompt(systemPrompt),
		survey.WithClarifyTimeout(loaded.Config.ClarifyTimeout()),
	)

	var result survey.Result
	if decision.useLive {
		result, err = liveRun(ctx, driver, []tea.ProgramOption{tea.WithInput(stdin), tea.WithOutput(stdout)}, live.Options{
			Saver:      sink,
			Logger:     logger,
			Respondent: opts.respondent,
			ExitWord:   loaded.Config.Survey.ExitWord,
			NoColor:    !colored,
			Now:        time.Now,
		})
	} else {
		result, err = survey.Console{
			In:         stdin,
			Out:        stdout,
			Saver:      sink,
			Logger:     logger,
			Printer:    botPrinter(colored),
			Respondent: opts.respondent,
			ExitWord:   loaded.Config.Survey.ExitWord,
			Now:        time.Now,
		}.Run(ctx, driver)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled) {
			logger.Infof("Survey terminated by user.")
			fmt.Fprintln(stdout)
			return ExitOK
		}
		logger.Errorf("Survey failed: %v", err)
		fmt.Fprintf(stderr, "Survey failed: %v\n", err)
		return ExitError
	}
	if decision.useLive && result.SaveErr != nil {
		fmt.Fprintf(stderr, "Error saving responses: %v\n", result.SaveErr)
	}
	return ExitOK
}

// outputConfig applies --output and --format over the configured output.
func outputConfig(loaded config.Loaded, opts runOptions) (config.OutputConfig, error) {
	output := loaded.OutputConfig()
	if format := strings.ToLower(strings.TrimSpace(opts.format)); format != "" {
		switch format {
		case config.FormatCSV, config.FormatDuckDB, config.FormatSQLite:
		default:
			return config.OutputConfig{}, fmt.Errorf("unsupported format %q (expected csv|duckdb|sqlite)", opts.format)
		}
		if format != output.Format && strings.TrimSpace(opts.output) == "" {
			output.Path = config.ResolvePath(loaded.Root, config.DefaultOutputPath(format))
		}
		output.Format = format
	}
	if path := strings.TrimSpace(opts.output); path != "" {
		output.Path = path
	}
	return output, nil
}
