// Command mockapi serves an in-memory shop backend for local dashboard work.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"shopadmin/internal/mockapi"
)

func main() {
	listen := pflag.String("listen", ":5000", "listen address")
	secret := pflag.String("secret", "dev-secret", "HS256 secret for issued tokens")
	email := pflag.String("admin-email", "admin@shop.test", "admin login")
	password := pflag.String("admin-password", "Passw0rd!", "admin password")
	ttl := pflag.Duration("token-ttl", 24*time.Hour, "token lifetime")
	seed := pflag.Bool("seed", true, "insert demo catalog, news and orders")
	pflag.Parse()

	b := mockapi.New(mockapi.Options{Secret: *secret, AdminEmail: *email, AdminPassword: *password, TokenTTL: *ttl})
	if *seed {
		b.Seed()
	}

	srv := &http.Server{Addr: *listen, Handler: b, ReadHeaderTimeout: 10 * time.Second}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Printf("[mockapi] listening on %s as %s", *listen, *email)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
