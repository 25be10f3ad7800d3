package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/openroadai/canam-assist/api"
	gatewayx "github.com/openroadai/canam-assist/gateway"
	catalogx "github.com/openroadai/canam-assist/gateway/catalog"
	composerx "github.com/openroadai/canam-assist/gateway/compose"
	contractx "github.com/openroadai/canam-assist/gateway/contract"
	dealersx "github.com/openroadai/canam-assist/gateway/dealers"
	runx "github.com/openroadai/canam-assist/gateway/run"
	toolx "github.com/openroadai/canam-assist/gateway/tool"
	assistantx "github.com/openroadai/canam-assist/pkg/assistant"
	configx "github.com/openroadai/canam-assist/pkg/config"
	placesx "github.com/openroadai/canam-assist/pkg/googleplaces"
	logx "github.com/openroadai/canam-assist/pkg/logger"
)

type AppConfig struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" split_words:"true" default:":8080"`
	CatalogDSN string `envconfig:"CATALOG_DSN" split_words:"true"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("")

	catalog, closeCatalog := buildCatalog(appCfg.CatalogDSN)
	defer closeCatalog()

	placesCfg := configx.MustNew[placesx.Config]("GOOGLEMAPS")
	locator, err := placesx.NewLocator(*placesCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init places client")
	}
	if locator == nil {
		log.Warn().Msg("dealer search disabled: GOOGLEMAPS_API_KEY not set")
	}

	finder := dealersx.New(dealerLocator(locator))
	composer := composerx.New(catalog, finder)

	asker, err := buildAsker(finder)
	if err != nil {
		log.Fatal().Err(err).Msg("init assistant client")
	}

	gateway, err := gatewayx.New(composer, asker)
	if err != nil {
		log.Fatal().Err(err).Msg("init gateway")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api.NewHandler(gateway, catalog, finder).RegisterRoutes(e)

	go func() {
		log.Info().Str("addr", appCfg.ListenAddr).Msg("gateway listening")
		if err := e.Start(appCfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func buildCatalog(dsn string) (contractx.Catalog, func()) {
	if dsn != "" {
		pg, err := catalogx.NewPostgres(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("init postgres catalog")
		}
		log.Info().Msg("using postgres catalog")
		return pg, func() {
			if err := pg.Close(); err != nil {
				log.Error().Err(err).Msg("close catalog")
			}
		}
	}

	static, err := catalogx.NewStatic()
	if err != nil {
		log.Fatal().Err(err).Msg("init embedded catalog")
	}
	return static, func() {}
}

// buildAsker returns nil when no assistant is configured at all; the
// gateway then answers every question deterministically. A partially
// configured assistant is a hard startup error.
func buildAsker(finder *dealersx.Finder) (gatewayx.Asker, error) {
	cfg := configx.MustNew[assistantx.Config]("OPENAI")
	if !cfg.Configured() {
		log.Warn().Msg("assistant disabled: OPENAI_API_KEY / OPENAI_ASSISTANT_ID not set")
		return nil, nil
	}

	client, err := assistantx.NewClient(*cfg)
	if err != nil {
		return nil, err
	}

	orchestrator, err := runx.New(client, toolx.NewDispatcher(finder), runx.Config{
		AgentID:      cfg.AssistantID,
		Instructions: cfg.Instructions,
		PollInterval: cfg.PollInterval,
		Budget:       cfg.RunBudget,
	})
	if err != nil {
		return nil, err
	}
	return orchestrator, nil
}

// dealerLocator keeps a typed nil out of the interface value.
func dealerLocator(l *placesx.Locator) contractx.DealerLocator {
	if l == nil {
		return nil
	}
	return l
}
