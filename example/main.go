// Command example serves a greeting endpoint whose handlers are built by a
// minioc container on every request.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/xraph/minioc"
	"go.uber.org/zap"
)

// Config holds the settings read from the environment.
type Config struct {
	Addr     string
	Greeting string
	Debug    bool
}

func loadConfig() (*Config, error) {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:     envOr("GREETER_ADDR", ":8080"),
		Greeting: envOr("GREETER_GREETING", "Hello"),
		Debug:    os.Getenv("GREETER_DEBUG") == "true",
	}
	if cfg.Greeting == "" {
		return nil, errors.New("GREETER_GREETING cannot be empty")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// NameRepository maps short handles to display names.
type NameRepository interface {
	DisplayName(handle string) (string, bool)
}

type staticNames struct {
	names map[string]string
}

func (s *staticNames) DisplayName(handle string) (string, bool) {
	name, ok := s.names[handle]
	return name, ok
}

// GreetHandler serves one request. A fresh handler is built per request.
type GreetHandler struct {
	cfg     *Config
	names   NameRepository
	created time.Time
}

func NewGreetHandler(cfg *Config, names NameRepository) *GreetHandler {
	return &GreetHandler{cfg: cfg, names: names, created: time.Now()}
}

func (h *GreetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	name, ok := h.names.DisplayName(handle)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown handle %q", handle), http.StatusNotFound)
		return
	}

	fmt.Fprintf(w, "%s, %s!\n", h.cfg.Greeting, name)
}

const staffKey = "staff"

func buildContainer(logger *zap.Logger) (*minioc.Container, error) {
	c := minioc.New(minioc.WithLogger(logger))

	if err := c.DeclareConstructor(NewGreetHandler); err != nil {
		return nil, err
	}

	err := minioc.RegisterAll(c,
		minioc.Factory(loadConfig),
		minioc.Factory(func() (NameRepository, error) {
			return &staticNames{names: map[string]string{"ada": "Ada Lovelace"}}, nil
		}),
		minioc.Factory(func() (NameRepository, error) {
			return &staticNames{names: map[string]string{"ops": "Operations Team"}}, nil
		}, minioc.WithKey(staffKey)),
		minioc.Scope[*GreetHandler](),
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func newRouter(c *minioc.Container, cfg *Config, logger *zap.Logger) chi.Router {
	staff := minioc.NewLazy[NameRepository](c, staffKey)

	r := chi.NewRouter()
	r.Get("/greet/{handle}", func(w http.ResponseWriter, req *http.Request) {
		handler, err := minioc.GetInstance[*GreetHandler](c)
		if err != nil {
			logger.Error("failed to resolve handler", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		handler.ServeHTTP(w, req)
	})
	r.Get("/staff/{handle}", func(w http.ResponseWriter, req *http.Request) {
		names, err := staff.Get()
		if err != nil {
			logger.Error("failed to resolve staff names", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		NewGreetHandler(cfg, names).ServeHTTP(w, req)
	})

	return r
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	c, err := buildContainer(logger)
	if err != nil {
		logger.Fatal("failed to build container", zap.Error(err))
	}

	cfg := minioc.MustGetInstance[*Config](c)
	if cfg.Debug {
		for _, svc := range minioc.Query(c, minioc.ServiceQuery{}) {
			logger.Info("service",
				zap.String("name", svc.Name),
				zap.String("lifetime", svc.Lifetime),
				zap.Strings("keys", svc.Keys),
			)
		}
	}

	r := newRouter(c, cfg, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
