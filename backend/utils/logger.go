package utils

import (
	"log"
	"os"
)

// LoggerConfig defines configuration for the application logger
type LoggerConfig struct {
	// Output stream (os.Stdout, a file, etc.)
	Output *os.File
}

// Logger is the shared application logger. InitLogger replaces it; until
// then it writes to stdout with the default prefix.
var Logger = log.New(os.Stdout, "[QAQF Platform] ", log.LstdFlags|log.LUTC)

// InitLogger initializes the application logger and installs it as the
// shared Logger.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	Logger = log.New(cfg.Output, "[QAQF Platform] ", log.LstdFlags|log.LUTC)
	return Logger
}
