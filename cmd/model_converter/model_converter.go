package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/wbrown/readable_hash/internal/logging"
	"github.com/wbrown/readable_hash/resources"
	"github.com/wbrown/readable_hash/types"
	"go.uber.org/zap"
	cli "gopkg.in/urfave/cli.v1"
)

// Loads a model from any source, validates it and writes it out as JSON or
// in the binary encoding.

const (
	formatJSON   = "json"
	formatBinary = "bin"
)

// outputFormat picks the format from the flag, or from the output file
// extension when the flag is empty.
func outputFormat(format string, outputPath string) (string, error) {
	if format == "" {
		if strings.HasSuffix(outputPath, ".bin") {
			return formatBinary, nil
		}
		return formatJSON, nil
	}
	switch format {
	case formatJSON, formatBinary:
		return format, nil
	}
	return "", errors.Errorf("unknown format `%s`", format)
}

func encodeModel(data *types.ModelData, format string) ([]byte, error) {
	if format == formatBinary {
		return resources.EncodeModelBinary(data), nil
	}
	return json.Marshal(data)
}

func main() {
	app := cli.NewApp()
	app.Name = "model_converter"
	app.Usage = "validate a word model and convert between encodings"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "model",
			Usage: "model id, directory, file or URL to read",
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "file to write the converted model to",
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "output encoding [json, bin]; default from --output",
		},
		cli.StringFlag{
			Name:  "name",
			Usage: "rename the model",
		},
		logging.VerboseFlag,
	}
	app.Action = func(ctx *cli.Context) error {
		logger, err := logging.New(ctx.Bool("verbose"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer logger.Sync()
		modelId, outputPath := ctx.String("model"), ctx.String("output")
		if modelId == "" || outputPath == "" {
			cli.ShowAppHelp(ctx)
			return logging.Fail(logger, "missing flag",
				errors.New("must provide --model and --output"))
		}
		format, err := outputFormat(ctx.String("format"), outputPath)
		if err != nil {
			return logging.Fail(logger, "invalid format", err)
		}
		data, err := resources.ResolveModelId(modelId, logger)
		if err != nil {
			return logging.Fail(logger, "cannot load model", err)
		}
		if name := ctx.String("name"); name != "" {
			data.Name = name
		}
		encoded, err := encodeModel(data, format)
		if err != nil {
			return logging.Fail(logger, "cannot encode model", err)
		}
		if err := os.WriteFile(outputPath, encoded, 0644); err != nil {
			return logging.Fail(logger, "cannot write model", err)
		}
		logger.Info("converted",
			zap.String("model", data.Name),
			zap.String("output", outputPath),
			zap.String("format", format),
			zap.String("size", humanize.Bytes(uint64(len(encoded)))))
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
