package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/wbrown/readable_hash"
	"github.com/wbrown/readable_hash/internal/logging"
	"go.uber.org/zap"
	cli "gopkg.in/urfave/cli.v1"
)

// decodeStats summarizes one decoding run.
type decodeStats struct {
	Bytes int
	Words int
	Empty int
}

// decodeChunks reads input in chunkSize pieces and writes one word per
// piece. A trailing short piece is decoded as well.
func decodeChunks(model *readable_hash.WordModel, input io.Reader,
	output io.Writer, chunkSize int, targetLen int) (decodeStats, error) {
	var stats decodeStats
	if chunkSize < 1 {
		return stats, errors.Errorf("chunk size must be positive, got %d",
			chunkSize)
	}
	writer := bufio.NewWriter(output)
	chunk := make([]byte, chunkSize)
	for {
		n, err := io.ReadFull(input, chunk)
		if n > 0 {
			stats.Bytes += n
			source := readable_hash.NewSliceReader(chunk[:n])
			var word string
			if targetLen > 0 {
				word = model.GenerateWordWithTargetLen(source, targetLen)
			} else {
				word = model.GenerateWord(source)
			}
			if word == "" {
				stats.Empty++
			}
			stats.Words++
			if _, writeErr := writer.WriteString(word + "\n"); writeErr != nil {
				return stats, writeErr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		} else if err != nil {
			return stats, err
		}
	}
	return stats, writer.Flush()
}

func main() {
	app := cli.NewApp()
	app.Name = "entropy_decoder"
	app.Usage = "decode a binary entropy file into one word per chunk"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "model",
			Usage: "model id [english, english-v1, path, URL]",
			Value: readable_hash.DEFAULT_MODEL,
		},
		cli.StringFlag{
			Name:  "input",
			Usage: "input file of raw entropy",
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "output file to write words to",
			Value: "words.txt",
		},
		cli.IntFlag{
			Name:  "chunk",
			Usage: "entropy bytes per word",
			Value: 6,
		},
		cli.IntFlag{
			Name:  "target-len",
			Usage: "minimum word length; 0 uses up each chunk",
		},
		logging.VerboseFlag,
	}
	app.Action = func(ctx *cli.Context) error {
		logger, err := logging.New(ctx.Bool("verbose"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer logger.Sync()
		if ctx.String("input") == "" {
			cli.ShowAppHelp(ctx)
			return logging.Fail(logger, "missing flag",
				errors.New("must provide --input"))
		}
		model, err := readable_hash.NewModelWithLogger(ctx.String("model"),
			logger)
		if err != nil {
			return logging.Fail(logger, "cannot load model", err)
		}
		inputHandle, err := os.Open(ctx.String("input"))
		if err != nil {
			return logging.Fail(logger, "cannot open input", err)
		}
		defer inputHandle.Close()
		outputHandle, err := os.Create(ctx.String("output"))
		if err != nil {
			return logging.Fail(logger, "cannot create output", err)
		}
		defer outputHandle.Close()

		start := time.Now()
		stats, err := decodeChunks(model, inputHandle, outputHandle,
			ctx.Int("chunk"), ctx.Int("target-len"))
		if err != nil {
			return logging.Fail(logger, "decoding failed", err)
		}
		logger.Info("decoded",
			zap.String("input", ctx.String("input")),
			zap.String("read", humanize.Bytes(uint64(stats.Bytes))),
			zap.String("words", humanize.Comma(int64(stats.Words))),
			zap.Int("empty", stats.Empty),
			zap.Duration("elapsed", time.Since(start)))
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
