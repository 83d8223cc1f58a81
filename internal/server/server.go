package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"foodwaste/internal/store"
	"foodwaste/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template
	cookie    *securecookie.SecureCookie
	metrics   *httpMetrics
	registry  *prometheus.Registry

	dataRepo     *store.DataRepository
	providerRepo *store.ProviderRepository
	receiverRepo *store.ReceiverRepository
	listingRepo  *store.ListingRepository
	claimRepo    *store.ClaimRepository

	handler http.Handler
	server  *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	dataRepo *store.DataRepository,
	providerRepo *store.ProviderRepository,
	receiverRepo *store.ReceiverRepository,
	listingRepo *store.ListingRepository,
	claimRepo *store.ClaimRepository,
) (*Service, error) {
	mux := flow.New()

	cookie, err := newFlashCookie(config)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := newHTTPMetrics(registry)
	if err != nil {
		return nil, err
	}

	s := &Service{
		logger:   logger,
		config:   config,
		cookie:   cookie,
		metrics:  metrics,
		registry: registry,

		dataRepo:     dataRepo,
		providerRepo: providerRepo,
		receiverRepo: receiverRepo,
		listingRepo:  listingRepo,
		claimRepo:    claimRepo,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	if err := s.buildRouter(mux); err != nil {
		return nil, err
	}

	// unmatched paths never reach mux middleware, so slashes are stripped in front of it
	s.handler = s.StripTrailingSlash(mux)
	s.server.Handler = s.handler

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) error {
	r.Use(s.RequestIDMiddleware)
	r.Use(s.LoggingMiddleware)
	r.Use(s.MetricsMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/data", s.handleData, http.MethodGet)

	r.HandleFunc("/listings", s.handleListings, http.MethodGet)
	r.HandleFunc("/listings", s.handlePostListing, http.MethodPost)
	r.HandleFunc("/listings/new", s.handleGetNewListing, http.MethodGet)
	r.HandleFunc("/listings/:id|^[0-9]+$", s.handleListingDetail, http.MethodGet)

	r.HandleFunc("/query", s.handleGetQuery, http.MethodGet)
	r.HandleFunc("/query", s.handlePostQuery, http.MethodPost)

	r.HandleFunc("/chart", s.handleChart, http.MethodGet)
	r.HandleFunc("/chart.png", s.handleChartImage, http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}), http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		return fmt.Errorf("failed to mount static assets: %w", err)
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)

	return nil
}

func newFlashCookie(config *types.Config) (*securecookie.SecureCookie, error) {
	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode COOKIE_HASH_KEY: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode COOKIE_BLOCK_KEY: %w", err)
	}

	// flashes only live across one redirect, per-process keys are enough
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}

	return securecookie.New(hashKey, blockKey), nil
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"cell": store.FormatValue,
		"selected": func(current any, option string) bool {
			return fmt.Sprint(current) == option
		},
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
