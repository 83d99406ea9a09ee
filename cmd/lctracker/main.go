package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/lctracker/internal/api"
	"github.com/terraincognita07/lctracker/internal/cli"
	"github.com/terraincognita07/lctracker/internal/config"
	"github.com/terraincognita07/lctracker/internal/db"
	"github.com/terraincognita07/lctracker/internal/i18n"
	"github.com/terraincognita07/lctracker/internal/records"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	time.Local = cfg.Location
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	port, err := resolvePort(cfg.Port)
	if err != nil {
		log.Fatalf("invalid port: %v", err)
	}

	options := records.Options{BaseURL: cfg.BaseURL, Timeout: cfg.RequestTimeout}
	var database *gorm.DB
	if cfg.UsesStore() {
		database, err = db.OpenSQLite(cfg.StorePath)
		if err != nil {
			log.Fatalf("database init failed: %v", err)
		}
		options.Store = db.NewCollectionStore(database)
	}
	defer func() {
		if err := db.CloseSQLite(database); err != nil {
			log.Printf("store close failed: %v", err)
		}
	}()
	client := records.NewDataClient(options)

	if len(os.Args) > 1 && os.Args[1] == "recent" {
		if err := runRecentCommand(client, cfg, os.Args[2:]); err != nil {
			log.Fatalf("recent failed: %v", err)
		}
		return
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, cfg.LocalesDir)
	if err != nil {
		log.Fatalf("i18n init failed: %v", err)
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Client:       client,
		Store:        options.Store,
		Collection:   cfg.Collection,
		RecentLimit:  cfg.RecentLimit,
		TemplatesDir: cfg.TemplatesDir,
		I18n:         i18nManager,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := newApp(handler, cfg)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("LC Tracker listening on http://0.0.0.0:%s (collection: %s, records api: %t, tz: %s)",
		port, cfg.Collection, handler.ServesRecords(), cfg.Location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// newApp assembles the middleware stack and routes served in production.
func newApp(handler *api.Handler, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "LC Tracker",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	app.Static("/static", cfg.StaticDir)
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func runRecentCommand(client records.DataClient, cfg config.Config, args []string) error {
	limit, err := cli.ParseRecentLimit(args, cfg.RecentLimit)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return cli.RunRecentCommand(ctx, client, cfg.Collection, limit, os.Stdout)
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return config.DefaultPort, nil
	}
	value, err := strconv.Atoi(port)
	if err != nil {
		return "", fmt.Errorf("port %q is not a number", port)
	}
	if value < 1 || value > 65535 {
		return "", fmt.Errorf("port %d is out of range", value)
	}
	return port, nil
}

const (
	csrfFormField  = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
)

// csrfMiddlewareConfig guards the browser form and its htmx/JSON posts. The
// records API is called by other services without a session and is left out.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
		KeyLookup:      "form:" + csrfFormField,
		Extractor:      csrfTokenExtractor,
		CookieName:     "lctracker_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}

// csrfTokenExtractor reads the token from the request header first, then from
// the posted form.
func csrfTokenExtractor(c *fiber.Ctx) (string, error) {
	if token, err := csrf.CsrfFromHeader(csrfHeaderName)(c); err == nil {
		return token, nil
	}
	return csrf.CsrfFromForm(csrfFormField)(c)
}
