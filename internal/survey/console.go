package survey

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Printer writes a bot message to the console.
type Printer func(out io.Writer, message string)

// PlainPrinter writes "Bot: message" lines.
func PlainPrinter(out io.Writer, message string) {
	fmt.Fprintf(out, "Bot: %s\n", message)
}

// Console runs a survey over line-oriented text input.
type Console struct {
	In         io.Reader
	Out        io.Writer
	Saver      Saver
	Logger     Logger
	Printer    Printer
	Respondent string
	ExitWord   string
	Now        func() time.Time
}

// Result summarizes a finished console session.
type Result struct {
	// Exited is true when the respondent left before the end; nothing is persisted then.
	Exited bool
	// Saved is true when the response was handed to the saver without error.
	Saved bool
	// SaveErr holds the persistence failure, which never fails the session.
	SaveErr  error
	Response Response
}

// IsExitCommand reports whether input is the exit sentinel.
func IsExitCommand(input, exitWord string) bool {
	if strings.TrimSpace(exitWord) == "" {
		exitWord = DefaultExitWord
	}
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(exitWord))
}

// Run drives the survey until the catalog is exhausted or the respondent exits.
func (c Console) Run(ctx context.Context, driver *Driver) (Result, error) {
	out := c.Out
	if out == nil {
		out = io.Discard
	}
	printer := c.Printer
	if printer == nil {
		printer = PlainPrinter
	}
	logger := c.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}
	lines, stop := readLines(c.In)
	defer stop()

	fmt.Fprintf(out, "%s\n\n", WelcomeMessage)
	logger.Infof("Survey started.")

	for driver.State() != Done {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		prompt, err := driver.Present()
		if err != nil {
			return Result{}, err
		}
		printer(out, prompt.Text)

		for {
			fmt.Fprint(out, "You: ")
			var next lineResult
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case next = <-lines:
			}
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			line, readErr := next.line, next.err
			if readErr != nil && readErr != io.EOF {
				return Result{}, fmt.Errorf("read answer: %w", readErr)
			}
			if IsExitCommand(line, c.ExitWord) || (readErr == io.EOF && strings.TrimSpace(line) == "") {
				fmt.Fprintln(out)
				printer(out, GoodbyeMessage)
				logger.Infof("Survey terminated by user.")
				return Result{Exited: true}, nil
			}
			outcome, err := driver.Submit(ctx, line)
			if err != nil {
				return Result{}, err
			}
			printer(out, outcome.Message)
			if outcome.Kind != Clarify {
				fmt.Fprintln(out)
				break
			}
		}
	}

	fmt.Fprintln(out)
	printer(out, ClosingMessage)
	logger.Infof("Survey completed successfully.")

	result := Result{Response: driver.Response(c.Respondent, now())}
	if c.Saver == nil {
		return result, nil
	}
	if err := c.Saver.Save(ctx, result.Response); err != nil {
		result.SaveErr = err
		logger.Errorf("Error saving responses: %v", err)
		fmt.Fprintf(out, "Error saving responses: %v\n", err)
		return result, nil
	}
	result.Saved = true
	logger.Infof("Saved response %s.", result.Response.ID)
	if located, ok := c.Saver.(interface{ Location() string }); ok {
		fmt.Fprintf(out, "Responses saved to %s.\n", located.Location())
	} else {
		fmt.Fprintln(out, "Responses saved.")
	}
	return result, nil
}

type lineResult struct {
	line string
	err  error
}

// readLines reads lines from in on a goroutine so a blocked read cannot hold
// up cancellation. After the first read error every further receive repeats
// that error with an empty line. Call stop to release the goroutine.
func readLines(in io.Reader) (<-chan lineResult, func()) {
	if in == nil {
		in = strings.NewReader("")
	}
	lines := make(chan lineResult)
	done := make(chan struct{})
	go func() {
		reader := bufio.NewReader(in)
		var err error
		for {
			next := lineResult{err: err}
			if err == nil {
				next.line, next.err = readLine(reader)
				err = next.err
			}
			select {
			case lines <- next:
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return lines, func() { once.Do(func() { close(done) }) }
}

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
