// Package web serves the vitals form to browsers and a JSON API to scripts.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/healthy-heart/internal/certs"
	"github.com/Veraticus/healthy-heart/internal/config"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	historyLimit    = 20
	shutdownTimeout = 5 * time.Second
)

// Server is the browser form and JSON API.
type Server struct {
	engine *engine.Engine
	tokens *TokenService
	router *gin.Engine
	cfg    config.ServerConfig
}

// NewServer builds the router for eng.
func NewServer(eng *engine.Engine, cfg config.ServerConfig) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"riskClass": riskClass,
		"selected":  func(a, b string) bool { return a == b },
		"seq":       seq,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		engine: eng,
		tokens: NewTokenService(cfg.JWTSecret, cfg.SessionTTL),
		cfg:    cfg,
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery(), s.loadSession())
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		success(c, gin.H{"status": "ok"})
	})

	r.GET("/signin", s.showSignIn)
	r.POST("/signin", s.signIn)
	r.GET("/signup", s.showSignUp)
	r.POST("/signup", s.signUp)
	r.POST("/signout", s.signOut)

	pages := r.Group("/")
	pages.Use(requirePage())
	{
		pages.GET("/", s.showForm)
		pages.POST("/predict", s.predict)
		pages.GET("/history", s.showHistory)
		pages.POST("/feedback", s.feedback)
	}

	api := r.Group("/api/v1")
	{
		api.POST("/signup", s.apiSignUp)
		api.POST("/signin", s.apiSignIn)

		protected := api.Group("")
		protected.Use(requireAPI())
		{
			protected.POST("/predict", s.apiPredict)
			protected.GET("/history", s.apiHistory)
			protected.POST("/feedback", s.apiFeedback)
		}
	}

	s.router = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully. With TLS enabled
// the self-signed localhost certificate from cfg.CertDir is used.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.TLS {
		cert, err := certs.NewFileManager(s.cfg.CertDir).GetOrCreateCertificate()
		if err != nil {
			return fmt.Errorf("failed to get certificate: %w", err)
		}
		srv.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Web form listening", "address", s.cfg.Address, "tls", s.cfg.TLS)
		var err error
		if s.cfg.TLS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down web form")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func riskClass(label model.RiskLabel) string {
	if label == model.RiskHigh {
		return "high"
	}
	return "low"
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
