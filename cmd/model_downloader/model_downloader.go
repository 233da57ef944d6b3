package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/wbrown/readable_hash/internal/logging"
	"github.com/wbrown/readable_hash/resources"
	"go.uber.org/zap"
	cli "gopkg.in/urfave/cli.v1"
)

// download resolves the model files at modelId into destPath and checks
// that they decode into a valid model.
func download(modelId string, destPath string, logger *zap.Logger) error {
	if err := os.MkdirAll(destPath, 0755); err != nil {
		return err
	}
	rsrcs, err := resources.ResolveResources(modelId, &destPath, logger)
	if err != nil {
		return errors.Wrap(err, "error downloading model resources")
	}
	defer rsrcs.Cleanup()
	data, err := resources.DecodeModel(*rsrcs)
	if err != nil {
		return err
	}
	logger.Info("model ready",
		zap.String("model", data.Name),
		zap.String("dest", destPath),
		zap.Int("tokens", len(data.Tokens)))
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "model_downloader"
	app.Usage = "fetch a word model into a directory"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "model",
			Usage: "model URL to fetch",
		},
		cli.StringFlag{
			Name:  "dest",
			Usage: "where to download the model to",
			Value: "./",
		},
		logging.VerboseFlag,
	}
	app.Action = func(ctx *cli.Context) error {
		logger, err := logging.New(ctx.Bool("verbose"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer logger.Sync()
		if ctx.String("model") == "" {
			cli.ShowAppHelp(ctx)
			return logging.Fail(logger, "missing flag",
				errors.New("must provide --model"))
		}
		if err := download(ctx.String("model"), ctx.String("dest"),
			logger); err != nil {
			return logging.Fail(logger, "download failed", err)
		}
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
