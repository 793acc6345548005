// Package server exposes saved gradients over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexisbeaulieu97/gradix/internal/logger"
	"github.com/alexisbeaulieu97/gradix/internal/random"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	"github.com/alexisbeaulieu97/gradix/internal/store"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

const shutdownTimeout = 5 * time.Second

// Options configures the router.
type Options struct {
	// BasePath prefixes every route, e.g. "/api".
	BasePath string
	Logger   *logger.Logger
	Random   random.Options
	Render   render.Options
	// Studio options are appended after the synchronized store and log
	// notifier are set up.
	Studio []studio.Option
}

// API holds the handlers' dependencies.
type API struct {
	svc  *studio.Service
	log  *logger.Logger
	opts Options
}

// NewRouter builds the gin engine over st. Access to st is serialized, so
// st itself need not be safe for concurrent use.
func NewRouter(st store.Store, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(opts.Logger))

	studioOpts := append([]studio.Option{studio.WithNotifier(studio.LogNotifier{Log: opts.Logger})}, opts.Studio...)
	api := &API{
		svc:  studio.NewService(store.NewSynchronized(st), studioOpts...),
		log:  opts.Logger,
		opts: opts,
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group(normalizeBasePath(opts.BasePath))
	{
		g.GET("/gradients", api.listGradients)
		g.POST("/gradients", api.saveGradient)
		g.DELETE("/gradients", api.clearGradients)
		g.GET("/gradients/:id", api.getGradient)
		g.DELETE("/gradients/:id", api.deleteGradient)
		g.GET("/gradients/:id/code", api.gradientCode)
		g.GET("/random", api.randomGradient)
	}
	return r
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logger.Fields{"addr": addr}).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Request(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func normalizeBasePath(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return "/"
	}
	return "/" + base
}
