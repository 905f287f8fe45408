package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopadmin/internal/api"
	"shopadmin/internal/config"
	"shopadmin/internal/http/handlers"
	applog "shopadmin/internal/log"
	"shopadmin/internal/repos"
	"shopadmin/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Auth wiring: one backend client, per-session tokens sealed at rest
	sessions := repos.NewSessionRepo(db, repos.NewSealer(cfg.SessionSecret))
	client := api.New(cfg.APIURL, cfg.APITimeout)
	authSvc := services.NewAuthService(client, sessions)
	authSvc.OnEvent = handlers.LogStoreEvent
	go purgeSessions(ctx, authSvc)
	deps := handlers.NewDeps(authSvc, handlers.Limits{MaxFiles: cfg.UploadMax, MaxFileSize: cfg.UploadMaxSize})

	engine := handlers.NewEngine(cfg.Templates)
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Room for a full media selection plus the form fields
	app.Server().MaxRequestBodySize = cfg.UploadMax*int(cfg.UploadMaxSize) + 1<<20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(applog.Timing())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	app.Use(handlers.AttachAdmin(authSvc))

	// ---------- Static assets ----------
	static := filepath.Join(filepath.Dir(filepath.Clean(cfg.Templates)), "static")
	log.Printf("[static] /static -> %s", static)
	app.Static("/static", static)

	// ---------- Routes ----------
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/admin") })
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	admin := app.Group("/admin", handlers.RequireAuth(authSvc))
	deps.Mount(admin)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	go func() {
		<-ctx.Done()
		log.Printf("[shutdown] draining connections")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[shutdown] %v", err)
		}
	}()
	if err := app.Listen(cfg.Listen); err != nil {
		log.Fatal(err)
	}
}

// purgeSessions drops expired sessions at start and then hourly.
func purgeSessions(ctx context.Context, auth *services.AuthService) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		n, err := auth.PurgeExpired(time.Now())
		if err != nil {
			log.Printf("[sessions] purge failed: %v", err)
		} else if n > 0 {
			log.Printf("[sessions] purged %d expired", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
