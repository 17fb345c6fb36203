package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/api"
	"github.com/rowolff/bb-character-sheet/internal/config"
	"github.com/rowolff/bb-character-sheet/internal/frontend/handlers"
	"github.com/rowolff/bb-character-sheet/internal/frontend/telnet"
	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
	"github.com/rowolff/bb-character-sheet/internal/game/loot"
	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
	"github.com/rowolff/bb-character-sheet/internal/observability"
)

// Content is the full rule content a process serves.
type Content struct {
	Gear  *gear.Tables
	Loot  *loot.Table
	Rules *ruleset.Registry
}

// LoadContent reads content from dir, or returns the embedded content
// when dir is empty.
//
// Postcondition: every field is non-nil when err is nil.
func LoadContent(dir string) (Content, error) {
	if dir == "" {
		return Content{Gear: gear.Default(), Loot: loot.Default(), Rules: ruleset.Default()}, nil
	}
	tables, err := gear.LoadTablesDir(dir)
	if err != nil {
		return Content{}, fmt.Errorf("loading gear tables from %s: %w", dir, err)
	}
	lootTable, err := loot.LoadTableDir(dir)
	if err != nil {
		return Content{}, fmt.Errorf("loading loot table from %s: %w", dir, err)
	}
	rules, err := ruleset.LoadDir(dir)
	if err != nil {
		return Content{}, fmt.Errorf("loading ruleset from %s: %w", dir, err)
	}
	return Content{Gear: tables, Loot: lootTable, Rules: rules}, nil
}

// Stack holds the generators and metrics shared by every frontend.
type Stack struct {
	Content  Content
	Source   dice.Source
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	Guns     *generator.Generator
	Loot     *loot.Generator

	logger *zap.Logger
}

// NewStack loads content and builds the generators for cfg.
//
// Precondition: logger is non-nil.
func NewStack(cfg config.GeneratorConfig, logger *zap.Logger) (*Stack, error) {
	content, err := LoadContent(cfg.ContentDir)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	src := dice.NewSource(cfg.Seed)
	s := &Stack{
		Content:  content,
		Source:   src,
		Registry: reg,
		Metrics:  metrics,
		Guns: generator.New(content.Gear, src, logger.Named("generator"),
			generator.WithObserver(metrics),
			generator.WithMaxElementalRerolls(cfg.MaxElementalRerolls),
		),
		Loot:   loot.NewGenerator(content.Loot, src, logger.Named("loot"), metrics),
		logger: logger,
	}

	logger.Info("content loaded",
		zap.String("content_dir", cfg.ContentDir),
		zap.Bool("seeded", cfg.Seed != 0),
		zap.Int("weapons", len(content.Gear.Weapons())),
		zap.Int("manufacturers", len(content.Gear.Manufacturers())),
		zap.Int("classes", len(content.Rules.Classes())),
		zap.Int("archetypes", len(content.Rules.Archetypes())),
	)
	return s, nil
}

// Terminal returns a loot terminal over the stack's generators.
func (s *Stack) Terminal() *handlers.LootTerminal {
	return handlers.NewLootTerminal(s.Guns, s.Loot, s.Content.Rules, s.Source, s.logger.Named("terminal"))
}

// Router returns the HTTP API handler, including /metrics.
func (s *Stack) Router() http.Handler {
	h := api.NewHandlers(s.Guns, s.Loot, s.Content.Rules, s.logger.Named("api"))
	return api.NewRouter(h, s.Metrics, s.Registry, s.logger)
}

// Lifecycle registers the Telnet terminal and the HTTP API.
func (s *Stack) Lifecycle(cfg config.Config) *Lifecycle {
	lc := NewLifecycle(s.logger)

	acceptor := telnet.NewAcceptor(cfg.Telnet, s.Terminal(), s.logger)
	lc.Add("telnet", &FuncService{StartFn: acceptor.ListenAndServe, StopFn: acceptor.Stop})
	lc.Add("http", api.NewServer(cfg.HTTP, s.Router(), s.logger))

	return lc
}
