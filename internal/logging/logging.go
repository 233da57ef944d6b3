package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	cli "gopkg.in/urfave/cli.v1"
)

// New
// Builds the logger shared by the commands. Logs go to stderr so that
// stdout only carries results: JSON at warn level normally, the console
// encoder at debug level when verbose.
func New(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level.SetLevel(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level.SetLevel(zapcore.WarnLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// VerboseFlag is the common `--verbose` switch.
var VerboseFlag = cli.BoolFlag{
	Name:  "verbose",
	Usage: "log debug output to stderr",
}

// Fail logs err and returns the exit error that ends a cli action with
// status 1.
func Fail(logger *zap.Logger, msg string, err error) error {
	logger.Error(msg, zap.Error(err))
	return cli.NewExitError("", 1)
}
