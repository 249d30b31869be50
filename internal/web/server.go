// Package web serves the schedule over a JSON HTTP API.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/runoshun/editflow/internal/app"
)

const mod = "api"

// shutdownTimeout bounds graceful shutdown once the serve context ends.
const shutdownTimeout = 5 * time.Second

// Server is the editflow HTTP API.
type Server struct {
	container *app.Container
	router    *gin.Engine
	log       zerolog.Logger
}

// NewServer creates a server whose handlers run the container's use cases.
func NewServer(c *app.Container, log zerolog.Logger) *Server {
	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())

	s := &Server{container: c, router: router, log: log}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tasks", s.listTasks)
		v1.POST("/tasks", s.createTask)
		v1.GET("/tasks/:id", s.getTask)
		v1.PUT("/tasks/:id", s.updateTask)
		v1.DELETE("/tasks/:id", s.deleteTask)
		v1.GET("/tasks/:id/status", s.getTaskStatus)

		v1.GET("/programs", s.listPrograms)
		v1.POST("/programs", s.createProgram)
		v1.GET("/programs/:id", s.getProgram)
		v1.PUT("/programs/:id", s.updateProgram)
		v1.DELETE("/programs/:id", s.deleteProgram)

		v1.GET("/editors", s.listEditors)
		v1.POST("/editors", s.createEditor)
		v1.GET("/editors/:id", s.getEditor)
		v1.PUT("/editors/:id", s.updateEditor)
		v1.DELETE("/editors/:id", s.deleteEditor)

		v1.GET("/layout", s.getLayout)
		v1.GET("/calendar", s.getCalendar)
		v1.GET("/stats", s.getStats)
		v1.GET("/board/stream", s.streamBoard)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("mod", mod).Str("addr", addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		s.log.Error().Str("mod", mod).Err(err).Send()
		return err
	}
	s.log.Info().Str("mod", mod).Msg("shutdown")
	return nil
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()
		ctx.Next()
		log.
			Info().
			Str("mod", mod).
			Int("code", ctx.Writer.Status()).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.RequestURI).
			TimeDiff("latency", time.Now(), startTime).
			Send()
	}
}
