package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFileName string
	// LogToStderr mirrors file logs to stderr. Stdout is left to command output.
	LogToStderr bool
	LogLevel    string
}

// Setup configures the global logrus logger. Without a file name logs go to
// stderr so they never interleave with command output on stdout.
func Setup(params SetupParams) {
	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(Output(params, os.Stderr))
}

// Output picks the log destination: stderr alone, a rotating file, or both.
func Output(params SetupParams, stderr io.Writer) io.Writer {
	if params.LogFileName == "" {
		return stderr
	}
	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	_ = os.MkdirAll(filepath.Dir(params.LogFileName), 0o755)

	fileLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	if params.LogToStderr {
		return io.MultiWriter(stderr, fileLogger)
	}
	return fileLogger
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
