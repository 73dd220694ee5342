package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Flags represents the command-line flags that are passed to editseq.
type Flags struct {
	File       string
	Text       string
	Debug      bool
	PrintSteps bool

	// TextSet reports whether -text was given, even if empty.
	TextSet bool
}

// parseFlags parses command-line flags from args.
func parseFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("editseq", flag.ContinueOnError)

	file := fs.String("file", "", "The JSON-lines edit log to replay (defaults to stdin)")
	text := fs.String("text", "", "The base text, overriding any text message in the log")
	enableDebug := fs.Bool("debug", false, "Enable debugging mode to show more verbose logs")
	printSteps := fs.Bool("print-steps", false, "Print the combined steps before the result")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	flags := Flags{
		File:       *file,
		Debug:      *enableDebug,
		PrintSteps: *printSteps,
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "text" {
			flags.Text = *text
			flags.TextSet = true
		}
	})

	return flags, nil
}

// ensureLogDir creates the editseq log directory when it is missing.
// It fails if path exists but is not a directory.
func ensureLogDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", path)
		}
		return nil
	}

	return os.MkdirAll(path, 0700)
}

// logPaths returns the log file paths, placed under ~/.editseq when it is usable.
func logPaths() (string, string, error) {
	logPath := "editseq.log"
	debugLogPath := "editseq-debug.log"

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return logPath, debugLogPath, nil
	}

	editseqDir := filepath.Join(homeDir, ".editseq")

	if err := ensureLogDir(editseqDir); err != nil {
		return "", "", err
	}

	return filepath.Join(editseqDir, "editseq.log"), filepath.Join(editseqDir, "editseq-debug.log"), nil
}

// setupLogger initializes the logger, routing warnings and errors to logFile
// and verbose logs to debugLogFile.
func setupLogger(logger *logrus.Logger, logFile, debugLogFile io.Writer, debug bool) {
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.AddHook(&writer.Hook{
		Writer: logFile,
		LogLevels: []logrus.Level{
			logrus.WarnLevel,
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		},
	})
	logger.AddHook(&writer.Hook{
		Writer: debugLogFile,
		LogLevels: []logrus.Level{
			logrus.TraceLevel,
			logrus.DebugLevel,
			logrus.InfoLevel,
		},
	})
}

// openLogFiles opens the log files and creates them if they do not exist.
func openLogFiles() (*os.File, *os.File, error) {
	logPath, debugLogPath, err := logPaths()
	if err != nil {
		return nil, nil, err
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		return nil, nil, err
	}

	debugLogFile, err := os.OpenFile(debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		logFile.Close()
		return nil, nil, err
	}

	return logFile, debugLogFile, nil
}

// closeLogFiles closes both editseq log files, reporting any failure on stderr.
func closeLogFiles(logFile, debugLogFile *os.File) {
	for _, f := range []*os.File{logFile, debugLogFile} {
		if err := f.Close(); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("editseq: failed to close %s: %s", f.Name(), err))
		}
	}
}
