// Package daemon provides the long-running background projection service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"flowcast/internal/forecast"
	"flowcast/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	HorizonDays  int
	StaleAfter   time.Duration
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact projection state for status/event payloads.
type Snapshot struct {
	At                   time.Time `json:"at"`
	Revision             int64     `json:"revision"`
	HorizonDays          int       `json:"horizon_days"`
	HasReliableBase      bool      `json:"has_reliable_base"`
	StartingOptimistic   int64     `json:"starting_optimistic"`
	StartingPessimistic  int64     `json:"starting_pessimistic"`
	OptimisticEnd        int64     `json:"optimistic_end"`
	PessimisticEnd       int64     `json:"pessimistic_end"`
	DangerDays           int       `json:"danger_days"`
	EstimatedOptimistic  bool      `json:"estimated_optimistic"`
	EstimatedPessimistic bool      `json:"estimated_pessimistic"`
	StaleAccounts        int       `json:"stale_accounts"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Revision       int64 `json:"revision"`
	OptimisticEnd  int64 `json:"optimistic_end"`
	PessimisticEnd int64 `json:"pessimistic_end"`
	DangerDays     int   `json:"danger_days"`
}

func (d Delta) isZero() bool {
	return d.Revision == 0 &&
		d.OptimisticEnd == 0 &&
		d.PessimisticEnd == 0 &&
		d.DangerDays == 0
}

// Event is emitted whenever the projection changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	HorizonDays     int       `json:"horizon_days"`
	Revision        int64     `json:"revision"`
	Snapshot        Snapshot  `json:"snapshot"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	db  *store.Store

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	revision    int64
	hasSnapshot bool
	snapshot    Snapshot
	result      *forecast.Result
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 1*time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8929"
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 30
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		revision:  -1,
		subs:      make(map[int]chan Event),
	}
}

// Run opens the store and serves HTTP endpoints, polling the store's
// revision counter until ctx is canceled. A recompute only happens when a
// write bumped the revision, so idle polls are a single SELECT.
func (s *Service) Run(ctx context.Context) error {
	db, err := store.Open(s.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("daemon store: %w", err)
	}
	s.db = db
	defer func() { _ = db.Close() }()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/projection", s.handleProjection)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()

	rev, err := s.db.Revision()
	if err != nil {
		s.recordError(now, err)
		return
	}

	s.mu.RLock()
	unchanged := s.hasSnapshot && rev == s.revision && forecast.SameDay(s.snapshot.At, now)
	s.mu.RUnlock()
	if unchanged {
		s.mu.Lock()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		return
	}

	entities, err := s.db.LoadEntities()
	if err != nil {
		s.recordError(now, err)
		return
	}

	result, err := forecast.Run(entities, now, s.cfg.HorizonDays, forecast.Options{
		StaleAfter: s.cfg.StaleAfter,
	})
	if err != nil {
		s.recordError(now, err)
		return
	}

	snap := snapshotFromResult(result, rev, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.result = result
	s.revision = rev
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "projection_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) recordError(now time.Time, err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastPollAt = now
	s.pollCount++
	s.mu.Unlock()
	log.Printf("flowcast daemon poll error: %v", err)
}

func snapshotFromResult(r *forecast.Result, rev int64, at time.Time) Snapshot {
	snap := Snapshot{
		At:                   at,
		Revision:             rev,
		HorizonDays:          r.HorizonDays,
		HasReliableBase:      r.Starting.HasReliableBase,
		StartingOptimistic:   r.Starting.Optimistic,
		StartingPessimistic:  r.Starting.Pessimistic,
		EstimatedOptimistic:  r.Starting.EstimatedOptimistic,
		EstimatedPessimistic: r.Starting.EstimatedPessimistic,
		StaleAccounts:        len(r.Starting.StaleAccountIDs),
	}
	if len(r.Days) > 0 {
		last := r.Days[len(r.Days)-1]
		snap.OptimisticEnd = last.Optimistic
		snap.PessimisticEnd = last.Pessimistic
		snap.DangerDays = r.PessimisticSummary.DangerDays
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Revision:       curr.Revision - prev.Revision,
		OptimisticEnd:  curr.OptimisticEnd - prev.OptimisticEnd,
		PessimisticEnd: curr.PessimisticEnd - prev.PessimisticEnd,
		DangerDays:     curr.DangerDays - prev.DangerDays,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		HorizonDays:     s.cfg.HorizonDays,
		Revision:        s.revision,
		Snapshot:        s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleProjection(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()

	if result == nil {
		http.Error(w, "projection not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Snapshot,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
