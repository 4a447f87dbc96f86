package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/joomin-choi/wordscramble/assets"
	"github.com/joomin-choi/wordscramble/internal/config"
	"github.com/joomin-choi/wordscramble/internal/console"
	"github.com/joomin-choi/wordscramble/internal/dictionary"
	"github.com/joomin-choi/wordscramble/internal/game"
	"github.com/joomin-choi/wordscramble/internal/httpserver"
	"github.com/joomin-choi/wordscramble/internal/store"
	"github.com/joomin-choi/wordscramble/internal/words"
)

func main() {
	playInTerminal := flag.Bool("console", false, "play in the terminal instead of serving HTTP")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.Logging)

	if err := words.Init(cfg.Game.StartFile); err != nil {
		if !errors.Is(err, words.ErrEmptyList) {
			log.Fatal().Err(err).Msg("failed to load root word list")
		}
		log.Warn().Str("fallback", game.DefaultRoot).Msg("root word list is empty")
	}

	dict, err := openDictionary(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Dictionary.Backend).Msg("failed to open dictionary")
	}
	defer dict.close()
	log.Info().
		Str("backend", cfg.Dictionary.Backend).
		Int("words", dict.size).
		Int("roots", words.Stats()).
		Msg("dictionary ready")

	if *playInTerminal {
		eng := game.New(dict.oracle, game.WithLanguage(cfg.Game.Language))
		if err := console.New(eng, words.List(), os.Stdin, os.Stdout).Run(); err != nil {
			log.Fatal().Err(err).Msg("console exited")
		}
		return
	}

	mem := store.NewMemoryStore()
	go sweepSessions(mem, cfg.Session.TTL)

	srv := httpserver.New(mem, httpserver.Options{
		Words:          words.List(),
		Oracle:         dict.oracle,
		Suggester:      dict.suggester,
		Language:       cfg.Game.Language,
		DictionarySize: dict.size,
		DailySalt:      cfg.Game.DailySalt,
		Secret:         cfg.Session.Secret,
		TokenTTL:       cfg.Session.TTL,
		CookieName:     cfg.Session.CookieName,
		ClientOrigin:   cfg.Server.ClientOrigin,
		Secure:         cfg.Server.Production,
	})
	log.Info().Str("port", cfg.Server.Port).Msg("starting wordscramble server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(c config.LoggingConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sweepSessions evicts idle sessions once a minute.
func sweepSessions(st store.Store, idle time.Duration) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for range t.C {
		if n := st.Sweep(context.Background(), idle); n > 0 {
			log.Info().Int("evicted", n).Int("live", st.Len()).Msg("idle sessions swept")
		}
	}
}

// dictionaryBackend is the oracle selected by configuration.
type dictionaryBackend struct {
	oracle    game.Oracle
	suggester httpserver.Suggester
	size      int
	close     func()
}

// openDictionary builds the spelling oracle for cfg.Dictionary.Backend.
func openDictionary(ctx context.Context, cfg *config.Config) (*dictionaryBackend, error) {
	lang := cfg.Game.Language

	switch cfg.Dictionary.Backend {
	case config.BackendEmbedded:
		set, err := loadSet(lang, cfg.Dictionary.File)
		if err != nil {
			return nil, err
		}
		return &dictionaryBackend{oracle: set, suggester: set, size: set.Len(lang), close: func() {}}, nil

	case config.BackendSQLite:
		db, err := openDB(cfg.Dictionary.DBPath)
		if err != nil {
			return nil, err
		}
		if err := migrate(db, assets.Migrations()); err != nil {
			db.Close()
			return nil, err
		}
		sq := dictionary.NewSQLite(db)
		n, err := sq.Count(ctx, lang)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("count dictionary: %w", err)
		}
		if n == 0 {
			seed, err := loadSet(lang, cfg.Dictionary.File)
			if err != nil {
				db.Close()
				return nil, err
			}
			if n, err = sq.Import(ctx, lang, seed.Words(lang)); err != nil {
				db.Close()
				return nil, err
			}
			log.Info().Int("words", n).Str("path", cfg.Dictionary.DBPath).Msg("dictionary seeded")
		}
		return &dictionaryBackend{oracle: sq, suggester: sq, size: n, close: func() { db.Close() }}, nil

	case config.BackendRemote:
		// Local words answer first; the remote service covers the rest.
		set, err := loadSet(lang, cfg.Dictionary.File)
		if err != nil {
			return nil, err
		}
		remote := dictionary.NewRemote(cfg.Dictionary.URL, cfg.Dictionary.Timeout)
		return &dictionaryBackend{
			oracle:    dictionary.Chain{set, remote},
			suggester: set,
			size:      set.Len(lang),
			close:     func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown dictionary backend %q", cfg.Dictionary.Backend)
}

// loadSet reads the dictionary file, or the embedded dictionary when path is empty.
func loadSet(lang, path string) (*dictionary.Set, error) {
	if path != "" {
		return dictionary.LoadSetFile(lang, path)
	}
	list, err := assets.DictionaryWords()
	if err != nil {
		return nil, fmt.Errorf("embedded dictionary: %w", err)
	}
	return dictionary.NewSet(lang, list), nil
}
