// Package session drives the SDK lifecycle for one host application: it
// validates configuration, constructs the content client, resolves the
// design document (persisted cache first, live fetch second, built-in
// default last) and exposes the merged effective theme to consumers.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/quillfeed/quillfeed/client"
	"github.com/quillfeed/quillfeed/config"
	"github.com/quillfeed/quillfeed/design"
	"github.com/quillfeed/quillfeed/designcache"
	"github.com/quillfeed/quillfeed/metrics"
)

// State names a phase of the session lifecycle.
type State string

const (
	// StateUninitialized is the zero state before Init runs.
	StateUninitialized State = "uninitialized"
	// StateRejected means configuration validation failed. Terminal until a
	// new Init.
	StateRejected State = "rejected"
	// StateClientReady means the content client exists but no design has
	// been resolved yet.
	StateClientReady State = "clientReady"
	// StateDesignResolving means a design fetch is in flight.
	StateDesignResolving State = "designResolving"
	// StateReady means a design document (cached, fetched or default) is
	// exposed.
	StateReady State = "ready"
)

// Snapshot is the consumer-visible view of the session at one instant.
type Snapshot struct {
	State         State
	Ready         bool
	Effective     design.ThemeConfig
	Document      *design.Document
	DesignLoading bool
	// DesignError is the advisory message recorded when the live design
	// fetch failed and a fallback was substituted. Never fatal.
	DesignError string
	// ConfigError is set only in the rejected state.
	ConfigError error
}

// Options overrides the collaborators a Session builds for itself.
type Options struct {
	Client      client.Options
	DesignStore *designcache.Store
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	// WatchDesign enables the filesystem observer that picks up external
	// rewrites of the persisted design document.
	WatchDesign bool
}

// Session owns one client and its resolved design. All collaborators are
// injected or built during Init; there are no package-level singletons.
type Session struct {
	cfg    config.Config
	opts   Options
	logger *slog.Logger

	mu          sync.RWMutex
	state       State
	client      *client.Client
	store       *designcache.Store
	document    *design.Document
	effective   design.ThemeConfig
	loading     bool
	designError string
	configError error
	watcher     *designcache.Watcher
	// refreshCancel aborts the outstanding background refresh so a stale
	// response can never overwrite a newer resolution.
	refreshCancel context.CancelFunc
	refreshWG     sync.WaitGroup

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// New prepares a session. Nothing runs until Init.
func New(cfg config.Config, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cfg:         cfg,
		opts:        opts,
		logger:      logger.With(slog.String("component", "session")),
		state:       StateUninitialized,
		effective:   cfg.Theme,
		subscribers: map[int]func(Snapshot){},
	}
}

// Client returns the content client, or nil before a successful Init.
func (s *Session) Client() *client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Snapshot returns the current consumer-visible view.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:         s.state,
		Ready:         s.state == StateReady,
		Effective:     s.effective,
		Document:      s.document,
		DesignLoading: s.loading,
		DesignError:   s.designError,
		ConfigError:   s.configError,
	}
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// state change. The returned function unsubscribes.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Session) notify() {
	snapshot := s.Snapshot()
	s.subMu.Lock()
	callbacks := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()
	for _, fn := range callbacks {
		fn(snapshot)
	}
}

// Init validates configuration, builds the client and resolves the design.
// A validation failure leaves the session in the rejected state and is also
// returned; it is recorded, not thrown, so consumers can render it.
func (s *Session) Init(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		s.mu.Lock()
		s.state = StateRejected
		s.configError = err
		s.mu.Unlock()
		s.notify()
		return err
	}

	clientOpts := s.opts.Client
	if clientOpts.Logger == nil {
		clientOpts.Logger = s.logger
	}
	if clientOpts.Metrics == nil {
		clientOpts.Metrics = s.opts.Metrics
	}
	c, err := client.New(s.cfg, clientOpts)
	if err != nil {
		s.mu.Lock()
		s.state = StateRejected
		s.configError = err
		s.mu.Unlock()
		s.notify()
		return err
	}

	store := s.opts.DesignStore
	if store == nil {
		store = designcache.NewStore(s.cfg.DesignCache.Dir)
	}

	s.mu.Lock()
	s.client = c
	s.store = store
	s.state = StateClientReady
	s.configError = nil
	s.mu.Unlock()
	s.notify()

	s.resolveDesign(ctx)

	if s.opts.WatchDesign {
		s.startWatcher(ctx)
	}
	return nil
}

// resolveDesign implements the cache-first design path. A persisted document
// is exposed immediately and refreshed in the background; on a cold cache
// the live fetch blocks, and its failure substitutes the built-in default
// with an advisory error.
func (s *Session) resolveDesign(ctx context.Context) {
	s.mu.Lock()
	if s.refreshCancel != nil {
		s.refreshCancel()
		s.refreshCancel = nil
	}
	s.state = StateDesignResolving
	s.loading = true
	s.designError = ""
	c := s.client
	store := s.store
	projectID := c.ProjectID()
	s.mu.Unlock()
	s.notify()

	if cached, ok := store.Read(projectID); ok {
		s.adoptDocument(cached, "")
		refreshCtx, cancel := context.WithCancel(ctx)
		s.mu.Lock()
		s.refreshCancel = cancel
		s.mu.Unlock()
		s.refreshWG.Add(1)
		go func() {
			defer s.refreshWG.Done()
			defer cancel()
			s.refreshDesign(refreshCtx, projectID)
		}()
		return
	}

	doc, err := c.GetDesign(ctx)
	if err != nil {
		if client.IsCanceled(err) {
			return
		}
		s.logger.Warn("design fetch failed, using built-in default",
			slog.String("projectId", projectID), slog.Any("error", err))
		s.adoptDocument(design.DefaultDocument(), err.Error())
		return
	}
	if err := store.Write(projectID, &doc); err != nil {
		s.logger.Warn("design cache write failed", slog.Any("error", err))
	}
	s.adoptDocument(&doc, "")
}

// refreshDesign re-fetches the design after a cache hit. Success adopts and
// persists the fresh document and notifies subscribers once; failure is
// logged only, the cached document stays exposed.
func (s *Session) refreshDesign(ctx context.Context, projectID string) {
	s.mu.RLock()
	c := s.client
	store := s.store
	s.mu.RUnlock()

	doc, err := c.GetDesign(ctx, client.WithForceRefresh())
	if err != nil {
		if !client.IsCanceled(err) {
			s.logger.Warn("background design refresh failed",
				slog.String("projectId", projectID), slog.Any("error", err))
		}
		return
	}
	// The identity may have switched while the fetch was in flight. A late
	// response for the old project must neither replace the newer resolution
	// nor poison the old project's cache file.
	if c.ProjectID() != projectID {
		return
	}
	if err := store.Write(projectID, &doc); err != nil {
		s.logger.Warn("design cache write failed", slog.Any("error", err))
	}
	s.adoptDocument(&doc, "")
}

// adoptDocument installs a document, re-merges the effective theme and
// moves the session to ready.
func (s *Session) adoptDocument(doc *design.Document, advisory string) {
	s.mu.Lock()
	s.document = doc
	s.effective = design.Merge(s.cfg.Theme, doc)
	s.designError = advisory
	s.loading = false
	s.state = StateReady
	s.mu.Unlock()
	s.notify()
}

// startWatcher observes external rewrites of the persisted design document.
func (s *Session) startWatcher(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
	projectID := s.client.ProjectID()
	watcher, err := s.store.Watch(ctx, projectID, func(doc *design.Document) {
		s.adoptDocument(doc, "")
	}, func(err error) {
		s.logger.Warn("design watch error", slog.Any("error", err))
	})
	if err != nil {
		s.logger.Warn("design watch unavailable", slog.Any("error", err))
		return
	}
	s.watcher = watcher
}

// UpdateConfig patches the live client (which clears its cache in the same
// critical section) and re-enters the design resolution path.
func (s *Session) UpdateConfig(ctx context.Context, update client.ConfigUpdate) error {
	s.mu.RLock()
	c := s.client
	s.mu.RUnlock()
	if c == nil {
		return &client.Error{Message: "session not initialized"}
	}

	if err := c.Update(update); err != nil {
		return err
	}

	s.mu.Lock()
	if update.ProjectID != nil {
		s.cfg.Project.ID = *update.ProjectID
	}
	if update.SecretKey != nil {
		s.cfg.Project.SecretKey = *update.SecretKey
	}
	if update.APIKey != nil {
		s.cfg.Project.APIKey = *update.APIKey
	}
	if update.BaseURL != nil {
		s.cfg.API.BaseURL = *update.BaseURL
	}
	if update.Origin != nil {
		s.cfg.API.Origin = *update.Origin
	}
	s.mu.Unlock()

	s.resolveDesign(ctx)

	if s.opts.WatchDesign {
		s.startWatcher(ctx)
	}
	return nil
}

// Close stops the watcher, waits for background refreshes and releases the
// client.
func (s *Session) Close() error {
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	if s.refreshCancel != nil {
		s.refreshCancel()
		s.refreshCancel = nil
	}
	c := s.client
	s.mu.Unlock()

	if watcher != nil {
		watcher.Stop()
	}
	s.refreshWG.Wait()
	if c != nil {
		return c.Close()
	}
	return nil
}
