// Package web hosts the public catalog site and the editor admin surface.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
	"github.com/linagora/Argus-du-Libre/internal/platform/branding"
	"github.com/linagora/Argus-du-Libre/internal/platform/timeouts"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
	"github.com/linagora/Argus-du-Libre/internal/services/web/static"
)

// Config defines the inputs for the catalog web server.
type Config struct {
	HTTPAddr string
	AppName  string
	// AdminEditorID and AdminSecret are the editor credentials for the
	// admin surface. The admin routes stay registered but reject sign-in
	// when either is empty.
	AdminEditorID string
	AdminSecret   string
	// SessionSecret signs editor session cookies.
	SessionSecret string
}

// Server hosts the catalog HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      interface{ Close() error }
}

type handler struct {
	config   Config
	appName  string
	service  *catalogService
	sessions *sessionManager
}

// NewHandler assembles the full route table over the supplied store.
//
// This is the test-oriented entrypoint; NewServer wraps it with the HTTP
// server lifecycle.
func NewHandler(config Config, store storage.Store) (http.Handler, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	appName := strings.TrimSpace(config.AppName)
	if appName == "" {
		appName = branding.AppName
	}
	h := &handler{
		config:   config,
		appName:  appName,
		service:  &catalogService{store: store},
		sessions: newSessionManager(config.SessionSecret, config.AdminEditorID, config.AdminSecret),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))
	mux.HandleFunc("GET "+routepath.Health, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/", h.handleNotFound)
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("GET "+routepath.About, h.handleAbout)
	mux.HandleFunc("GET "+routepath.Search, h.handleSearch)
	mux.HandleFunc("GET "+routepath.Compare, h.handleCompare)
	mux.HandleFunc("GET "+routepath.ProjectPattern, h.handleProject)
	mux.HandleFunc("GET "+routepath.ProjectFieldPattern, h.handleProjectField)
	mux.HandleFunc("GET "+routepath.TagPattern, h.handleTag)

	mux.HandleFunc("GET "+routepath.AdminLogin, h.handleAdminLoginForm)
	mux.HandleFunc("POST "+routepath.AdminLogin, h.handleAdminLogin)
	mux.HandleFunc("POST "+routepath.AdminLogout, h.requireEditor(h.handleAdminLogout))
	mux.HandleFunc("GET /admin/{$}", h.requireEditor(h.handleAdminRoot))
	mux.HandleFunc("GET "+routepath.AdminCategories, h.requireEditor(h.handleAdminCategories))
	mux.HandleFunc("POST "+routepath.AdminCategories, h.requireEditor(h.handleAdminCategoriesSubmit))
	mux.HandleFunc("POST "+routepath.AdminFields, h.requireEditor(h.handleAdminFieldsSubmit))
	mux.HandleFunc("GET "+routepath.AdminSoftware, h.requireEditor(h.handleAdminSoftware))
	mux.HandleFunc("POST "+routepath.AdminSoftware, h.requireEditor(h.handleAdminSoftwareCreate))
	mux.HandleFunc("GET "+routepath.AdminSoftwarePattern, h.requireEditor(h.handleAdminSoftwareDetail))
	mux.HandleFunc("POST "+routepath.AdminSoftwarePattern, h.requireEditor(h.handleAdminSoftwareUpdate))
	mux.HandleFunc("POST "+routepath.AdminSoftwareState, h.requireEditor(h.handleAdminSoftwareState))
	mux.HandleFunc("POST "+routepath.AdminSoftwareFeature, h.requireEditor(h.handleAdminSoftwareFeature))
	mux.HandleFunc("POST "+routepath.AdminSoftwareTags, h.requireEditor(h.handleAdminSoftwareTags))
	mux.HandleFunc("POST "+routepath.AdminSoftwareOverview, h.requireEditor(h.handleAdminSoftwareOverview))
	mux.HandleFunc("GET "+routepath.AdminResults, h.requireEditor(h.handleAdminResults))
	mux.HandleFunc("POST "+routepath.AdminResults, h.requireEditor(h.handleAdminResultsCreate))
	mux.HandleFunc("POST "+routepath.AdminResultsPublish, h.requireEditor(h.handleAdminResultPublish))
	mux.HandleFunc("GET "+routepath.AdminTags, h.requireEditor(h.handleAdminTags))
	mux.HandleFunc("POST "+routepath.AdminTags, h.requireEditor(h.handleAdminTagsCreate))

	return traceRequests(mux), nil
}

// NewServer builds a configured catalog web server over the supplied store.
func NewServer(config Config, store storage.Store) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config, store)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	server := &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		server.store = closer
	}
	return server, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("catalog web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the storage handle held by the server.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close catalog store: %v", err)
	}
}
