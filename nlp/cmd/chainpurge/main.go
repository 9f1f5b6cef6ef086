// Command chainpurge removes one message from a trained chain. The full
// text of the message is read from stdin until EOF.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oarkflow/chainpurge/nlp/config"
	"github.com/oarkflow/chainpurge/nlp/ngram"
	"github.com/oarkflow/chainpurge/nlp/tokenizer"
	"github.com/oarkflow/chainpurge/store"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		slog.Error("purge failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger, closer, err := setupLogging(cfg.Log, os.Stderr)
	if err != nil {
		slog.Error("purge failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(logger)

	err = run(cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("purge failed", slog.String("err", err.Error()))
	}
	closer.Close()
	if err != nil {
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("chainpurge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML config file (default "+config.DefaultPath+" if present)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return loadConfig(*cfgPath)
}

// run purges the message read from stdin and prints one line per edit to stdout.
func run(cfg *config.Config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	words, err := tokenizer.ReadWords(stdin)
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}

	chain := store.New(cfg.ChainFile)
	model, err := chain.Load()
	if err != nil {
		return err
	}
	logger.Debug("chain loaded",
		slog.String("file", chain.Path()),
		slog.String("codec", chain.Codec().Name()),
		slog.Int("keys", model.Len()))

	metrics := newRunMetrics()
	reporter := ngram.Reporters{
		ngram.PrintReporter(stdout),
		metrics,
		ngram.ReporterFunc(func(e ngram.Event) {
			logger.Debug("chain edited",
				slog.String("action", e.Action.String()),
				slog.String("key", e.Key),
				slog.String("word", e.Word),
				slog.Int("remaining", e.Remaining))
		}),
	}
	stats := ngram.NewPurger(cfg.PrefixLen, cfg.Folder(), reporter).Purge(model, words)

	if err := chain.Save(model); err != nil {
		return err
	}
	metrics.observe(stats, model.Len())
	if cfg.MetricsFile != "" {
		if err := metrics.writeTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("metrics not written", slog.String("file", cfg.MetricsFile), slog.String("err", err.Error()))
		}
	}

	logger.Info("purge complete",
		slog.String("file", chain.Path()),
		slog.Int("words", stats.Words),
		slog.Int("decremented", stats.Decremented),
		slog.Int("deleted_words", stats.DeletedWords),
		slog.Int("deleted_keys", stats.DeletedKeys))
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	required := path != ""
	if !required {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
