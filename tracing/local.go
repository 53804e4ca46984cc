package tracing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalTracer writes buffered events as JSON session files
type LocalTracer struct {
	config      TracingConfig
	dir         string
	session     SessionInfo
	buffer      []Event
	bufferMutex sync.Mutex
	flushTicker *time.Ticker
	stopChan    chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// NewLocalTracer creates a new local file tracer with the given configuration
func NewLocalTracer(config TracingConfig, version string) (*LocalTracer, error) {
	dir, err := expandPath(config.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", config.LocalDir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create traces directory %s: %w", dir, err)
	}

	if config.MaxBufferSize <= 0 {
		config.MaxBufferSize = DefaultConfig().MaxBufferSize
	}

	tracer := &LocalTracer{
		config: config,
		dir:    dir,
		session: SessionInfo{
			ID:        uuid.New().String(),
			StartTime: time.Now(),
			UserAgent: fmt.Sprintf("binotify-cli/%s", version),
			Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			Version:   version,
		},
		buffer:   make([]Event, 0, config.MaxBufferSize),
		stopChan: make(chan struct{}),
	}

	if config.FlushInterval > 0 {
		tracer.startBackgroundFlushing()
	}

	return tracer, nil
}

// SessionID identifies the current trace session
func (l *LocalTracer) SessionID() string {
	return l.session.ID
}

// TrackLogin records the resolution of a login attempt
func (l *LocalTracer) TrackLogin(event LoginEvent) error {
	return l.track(&event)
}

// TrackNavigation records a route change
func (l *LocalTracer) TrackNavigation(nav NavigationEvent) error {
	return l.track(&nav)
}

// TrackError records errors and diagnostic information
func (l *LocalTracer) TrackError(err ErrorEvent) error {
	return l.track(&err)
}

func (l *LocalTracer) track(event Event) error {
	if !l.config.Enabled {
		return nil
	}

	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()

	l.buffer = append(l.buffer, event.Sanitize())

	if len(l.buffer) >= l.config.MaxBufferSize {
		return l.flushUnsafe()
	}
	return nil
}

// Flush ensures all pending events are persisted
func (l *LocalTracer) Flush() error {
	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()
	return l.flushUnsafe()
}

// Close stops background flushing, writes pending events and prunes old sessions
func (l *LocalTracer) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.flushTicker != nil {
			l.flushTicker.Stop()
			close(l.stopChan)
			l.wg.Wait()
		}

		l.session.EndTime = time.Now()
		if flushErr := l.Flush(); flushErr != nil {
			err = fmt.Errorf("failed to flush during close: %w", flushErr)
			return
		}

		err = l.cleanupOldSessions()
	})
	return err
}

func (l *LocalTracer) startBackgroundFlushing() {
	l.flushTicker = time.NewTicker(l.config.FlushInterval)
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-l.flushTicker.C:
				_ = l.Flush() // Ignore errors in background flush
			case <-l.stopChan:
				return
			}
		}
	}()
}

// flushUnsafe writes the buffer to disk; the caller must hold bufferMutex
func (l *LocalTracer) flushUnsafe() error {
	if len(l.buffer) == 0 {
		return nil
	}

	sessionCopy := l.session
	if sessionCopy.EndTime.IsZero() {
		sessionCopy.EndTime = time.Now()
	}

	batch := EventBatch{
		Session: sessionCopy,
		Events:  make([]Event, len(l.buffer)),
	}
	copy(batch.Events, l.buffer)

	filename := fmt.Sprintf("session_%s_%d.json", l.session.ID, time.Now().UnixNano())
	path := filepath.Join(l.dir, filename)

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write events to %s: %w", path, err)
	}

	l.buffer = l.buffer[:0]
	return nil
}

// cleanupOldSessions removes the oldest trace files beyond MaxSessions
func (l *LocalTracer) cleanupOldSessions() error {
	if l.config.MaxSessions <= 0 {
		return nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("failed to read traces directory: %w", err)
	}

	type traceFile struct {
		name    string
		modTime time.Time
	}
	var files []traceFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, traceFile{name: entry.Name(), modTime: info.ModTime()})
	}

	if len(files) <= l.config.MaxSessions {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	for _, f := range files[:len(files)-l.config.MaxSessions] {
		_ = os.Remove(filepath.Join(l.dir, f.name))
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
