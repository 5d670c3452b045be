package persist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/claude/fitjournal/internal/codec"
	"github.com/claude/fitjournal/internal/models"
)

// FilePersistor keeps one JSON document at a file path. The document is
// decoded once at construction and cached; every save replaces a field of
// the cache, re-encodes the whole document and rewrites the file
// atomically. All operations are serialized behind one mutex.
type FilePersistor struct {
	mu     sync.Mutex
	path   string
	io     FileIO
	pretty bool
	log    *slog.Logger

	// doc is nil until the initial load succeeds. Reads see empty
	// collections, saves log and no-op.
	doc *codec.Document

	ready chan struct{}
}

// NewFilePersistor starts loading the document at path in the background.
// A missing file initializes a fresh empty document stamped with the
// current schema version; a corrupt file leaves the cache absent.
func NewFilePersistor(path string, io FileIO, pretty bool, log *slog.Logger) *FilePersistor {
	p := &FilePersistor{
		path:   path,
		io:     io,
		pretty: pretty,
		log:    log,
		ready:  make(chan struct{}),
	}
	go func() {
		defer close(p.ready)
		p.mu.Lock()
		defer p.mu.Unlock()
		p.load()
	}()
	return p
}

// Ready is closed once the initial load attempt finishes, successfully or
// not.
func (p *FilePersistor) Ready() <-chan struct{} { return p.ready }

// load reads and decodes the document at the current path. Callers hold
// p.mu.
func (p *FilePersistor) load() {
	if !p.io.Exists(p.path) {
		doc := codec.NewDocument()
		p.doc = &doc
		p.log.Info("no data file, starting fresh", "path", p.path)
		return
	}

	data, err := p.io.Read(p.path)
	if err != nil {
		p.log.Error("failed to read data file", "path", p.path, "error", err)
		return
	}

	doc, err := codec.DecodeDocument(data, codec.LatestVersion)
	if err != nil {
		p.log.Error("failed to decode data file", "path", p.path, "error", err)
		return
	}
	p.doc = &doc
}

// save re-encodes the whole cached document and rewrites the file. Callers
// hold p.mu.
func (p *FilePersistor) save() error {
	data, err := codec.EncodeDocument(*p.doc, p.pretty)
	if err != nil {
		return err
	}
	return p.io.Write(data, p.path)
}

// LoadWorkouts returns the cached workouts, waiting for the initial load
// first. The list is empty while the cache is absent.
func (p *FilePersistor) LoadWorkouts(ctx context.Context) ([]models.Workout, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return []models.Workout{}, nil
	}
	return cloneWorkouts(p.doc.Workouts), nil
}

// LoadExercises returns the cached exercises, waiting for the initial load
// first.
func (p *FilePersistor) LoadExercises(ctx context.Context) ([]models.Exercise, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return []models.Exercise{}, nil
	}
	return cloneExercises(p.doc.Exercises), nil
}

// SaveWorkouts replaces the workouts in the cached document and rewrites
// the file. Saving before the initial load completes is a reachable misuse
// state: it is reported and dropped, never a crash.
func (p *FilePersistor) SaveWorkouts(ctx context.Context, workouts []models.Workout) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		p.log.Error("cannot save workouts, no data loaded", "path", p.path)
		return nil
	}
	p.doc.Workouts = cloneWorkouts(workouts)
	return p.save()
}

// SaveExercises replaces the exercises in the cached document and rewrites
// the file.
func (p *FilePersistor) SaveExercises(ctx context.Context, exercises []models.Exercise) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		p.log.Error("cannot save exercises, no data loaded", "path", p.path)
		return nil
	}
	p.doc.Exercises = cloneExercises(exercises)
	return p.save()
}

// SetFilePath redirects the persistor to a new location and reloads from
// it, replacing the cache with whatever the new file holds.
func (p *FilePersistor) SetFilePath(ctx context.Context, path string) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = path
	p.doc = nil
	p.log.Info("data file redirected", "path", path)
	p.load()
	return nil
}

// FilePath returns the current document location.
func (p *FilePersistor) FilePath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

func (p *FilePersistor) wait(ctx context.Context) error {
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cloneWorkouts(workouts []models.Workout) []models.Workout {
	out := make([]models.Workout, len(workouts))
	for i, w := range workouts {
		out[i] = w.Clone()
	}
	return out
}

func cloneExercises(exercises []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e.Clone()
	}
	return out
}
