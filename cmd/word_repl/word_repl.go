package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wbrown/readable_hash"
	"github.com/wbrown/readable_hash/internal/logging"
	"go.uber.org/zap"
	cli "gopkg.in/urfave/cli.v1"
)

// A REPL that decodes hex entropy into words with a `readable_hash` model.

// parseEntropy accepts hex with optional `0x` prefix and embedded spaces.
func parseEntropy(line string) ([]byte, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
	line = strings.Join(strings.Fields(line), "")
	return hex.DecodeString(line)
}

func repl(model *readable_hash.WordModel, targetLen int, in io.Reader,
	out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, ">>> ")
		input, err := reader.ReadString('\n')
		if err == io.EOF && input == "" {
			fmt.Fprintln(out)
			return nil
		} else if err != nil && err != io.EOF {
			return err
		}
		entropy, parseErr := parseEntropy(input)
		if parseErr != nil {
			fmt.Fprintf(out, "error: %v\n", parseErr)
			continue
		}
		var tokens readable_hash.Tokens
		if targetLen > 0 {
			tokens = model.GenerateTokensWithTargetLen(
				readable_hash.NewSliceReader(entropy), targetLen)
		} else {
			tokens = model.GenerateTokens(
				readable_hash.NewSliceReader(entropy))
		}
		fmt.Fprintf(out, "%v\n", tokens)
		for _, token := range tokens {
			fmt.Fprintf(out, "|%s", model.Tokens[token])
		}
		fmt.Fprintf(out, "\n%s (%d bytes, %d bits)\n", model.Decode(tokens),
			len(entropy), len(entropy)*8)
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "word_repl"
	app.Usage = "decode hex entropy into words interactively"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "model",
			Usage: "the word model to use",
			Value: readable_hash.DEFAULT_MODEL,
		},
		cli.IntFlag{
			Name:  "target-len",
			Usage: "minimum word length; 0 uses up all entropy",
		},
		logging.VerboseFlag,
	}
	app.Action = func(ctx *cli.Context) error {
		logger, err := logging.New(ctx.Bool("verbose"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer logger.Sync()
		model, err := readable_hash.NewModelWithLogger(ctx.String("model"),
			logger)
		if err != nil {
			return logging.Fail(logger, "cannot load model", err)
		}
		logger.Debug("model loaded", zap.String("model", model.Name),
			zap.Int("probability_bits", model.ProbabilityBits))
		if err := repl(model, ctx.Int("target-len"), os.Stdin,
			os.Stdout); err != nil {
			return logging.Fail(logger, "reading input", err)
		}
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
