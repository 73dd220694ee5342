package main

import (
	"fmt"
	"io"
	"os"

	"github.com/burntcarrot/editseq/commons"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logFile, debugLogFile, err := openLogFiles()
	if err != nil {
		color.Red("Logger error, exiting: %s", err)
		os.Exit(1)
	}
	defer closeLogFiles(logFile, debugLogFile)

	setupLogger(logger, logFile, debugLogFile, flags.Debug)

	var in io.Reader = os.Stdin
	if flags.File != "" {
		f, err := os.Open(flags.File)
		if err != nil {
			logger.Errorf("failed to open %s: %v", flags.File, err)
			color.Red("Failed to open %s: %s", flags.File, err)
			closeLogFiles(logFile, debugLogFile)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := run(flags, in, os.Stdout); err != nil {
		logger.Errorf("replay failed: %v", err)
		color.Red("Error: %s", err)
		closeLogFiles(logFile, debugLogFile)
		os.Exit(1)
	}
}

// run replays the edit log read from in and writes the resulting text to out.
func run(flags Flags, in io.Reader, out io.Writer) error {
	msgs, err := commons.ReadMessages(in)
	if err != nil {
		return err
	}
	logger.Infof("read %d messages", len(msgs))

	text, op, err := commons.Replay(msgs, logger)
	if err != nil {
		return err
	}

	if flags.TextSet {
		text = flags.Text
	}

	if flags.PrintSteps {
		for i, step := range op.Steps() {
			fmt.Fprintf(out, "%s %v\n", color.CyanString("%3d", i), step)
		}
	}

	result := op.Apply(text)
	logger.WithField("steps", op.Len()).Infof("applied combined operation")

	fmt.Fprintln(out, color.GreenString("%s", result))
	return nil
}
