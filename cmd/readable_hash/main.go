package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wbrown/readable_hash"
	"github.com/wbrown/readable_hash/internal/logging"
	"go.uber.org/zap"
	cli "gopkg.in/urfave/cli.v1"
)

// Hashes each argument, or each line of stdin when there are none, into
// pronounceable words.

func hashFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML file with default settings",
		},
		cli.StringFlag{
			Name:  "model",
			Usage: "model id: embedded name, directory, file or URL",
			Value: readable_hash.DEFAULT_MODEL,
		},
		cli.StringFlag{
			Name:  "hasher",
			Usage: "entropy source [sha256, shake256, xxhash]",
			Value: "shake256",
		},
		cli.IntFlag{
			Name:  "words",
			Usage: "words per hash",
			Value: 6,
		},
		cli.IntFlag{
			Name:  "bytes-per-word",
			Usage: "entropy bytes consumed by each word",
			Value: 6,
		},
		cli.IntFlag{
			Name:  "target-len",
			Usage: "minimum word length; 0 uses up each word's entropy",
		},
		cli.StringFlag{
			Name:  "separator",
			Usage: "text between words",
			Value: " ",
		},
		cli.BoolFlag{
			Name:  "naive",
			Usage: "use the syllable hash instead of the word model",
		},
		cli.BoolFlag{
			Name:  "sentences",
			Usage: "split each input into sentences and hash each one",
		},
		logging.VerboseFlag,
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "readable_hash"
	app.Usage = "turn inputs into pronounceable hashes"
	app.ArgsUsage = "[input...]"
	app.Flags = hashFlags()
	app.Action = run
	app.Writer = os.Stdout
	return app
}

// hashFunc hashes one input into output lines.
type hashFunc func(input string) ([]string, error)

func newHashFunc(cfg Config, logger *zap.Logger) (hashFunc, error) {
	hasher, err := readable_hash.HasherByName(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	if cfg.Naive {
		return func(input string) ([]string, error) {
			return []string{readable_hash.NaiveReadableHash(input, hasher)}, nil
		}, nil
	}
	model, err := readable_hash.NewModelWithLogger(cfg.Model, logger)
	if err != nil {
		return nil, err
	}
	opts := cfg.hashOptions()
	if cfg.Sentences {
		return func(input string) ([]string, error) {
			return model.HashSentences(input, hasher, opts)
		}, nil
	}
	return func(input string) ([]string, error) {
		return []string{model.WordHash([]byte(input), hasher, opts)}, nil
	}, nil
}

func hashAll(inputs []string, hash hashFunc, out io.Writer) error {
	for _, input := range inputs {
		lines, err := hash(input)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func hashLines(in io.Reader, hash hashFunc, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if err := hashAll([]string{line}, hash, out); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func run(ctx *cli.Context) error {
	cfg := defaultConfig()
	if file := ctx.String("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}
	applyCLIOverrides(ctx, &cfg)

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer logger.Sync()
	if err := cfg.validate(); err != nil {
		return logging.Fail(logger, "invalid configuration", err)
	}
	logger.Debug("configuration", zap.Any("config", cfg))

	hash, err := newHashFunc(cfg, logger)
	if err != nil {
		return logging.Fail(logger, "cannot set up hashing", err)
	}
	if ctx.NArg() > 0 {
		err = hashAll(ctx.Args(), hash, ctx.App.Writer)
	} else {
		err = hashLines(os.Stdin, hash, ctx.App.Writer)
	}
	if err != nil {
		return logging.Fail(logger, "hashing failed", err)
	}
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
