package authserver

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// templateSet renders the login form and the terminal error page. With a
// template directory configured, on-disk templates are used instead of the
// embedded ones and reloaded whenever they change.
type templateSet struct {
	mu      sync.RWMutex
	tmpl    *template.Template
	dir     string
	watcher *fsnotify.Watcher
}

func newTemplateSet(dir string) (*templateSet, error) {
	ts := &templateSet{dir: dir}
	if err := ts.load(); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := ts.watch(); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (ts *templateSet) load() error {
	var tmpl *template.Template
	var err error
	if ts.dir != "" {
		tmpl, err = template.ParseGlob(filepath.Join(ts.dir, "*.html"))
	} else {
		tmpl, err = template.ParseFS(embeddedTemplates, "templates/*.html")
	}
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tmpl = tmpl
	return nil
}

func (ts *templateSet) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating template watcher: %w", err)
	}
	if err := watcher.Add(ts.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching template dir: %w", err)
	}
	ts.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := ts.load(); err != nil {
					log.Warn().Err(err).Msg("failed to reload templates, keeping previous set")
					continue
				}
				log.Info().Str("file", event.Name).Msg("templates reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("template watcher error")
			}
		}
	}()

	return nil
}

func (ts *templateSet) Close() error {
	if ts.watcher != nil {
		return ts.watcher.Close()
	}
	return nil
}

type loginPageData struct {
	RequestID string
	CSRFToken string
	ClientID  string
	Scopes    []string
}

type errorPageData struct {
	Error       string
	Description string
}

func (ts *templateSet) render(w http.ResponseWriter, name string, status int, data any) {
	ts.mu.RLock()
	tmpl := ts.tmpl
	ts.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

func (ts *templateSet) renderLogin(w http.ResponseWriter, data loginPageData) {
	ts.render(w, "login.html", http.StatusOK, data)
}

func (ts *templateSet) renderError(w http.ResponseWriter, status int, data errorPageData) {
	ts.render(w, "error.html", status, data)
}
