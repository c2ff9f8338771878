// Package memory implements the application repository in process memory.
// Used by tests and single-node dev setups.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Zee-2005/safara-sub000/internal/store/core"
)

type Repository struct {
	mu   sync.RWMutex
	apps map[string]*core.Application
}

func New() *Repository {
	return &Repository{apps: make(map[string]*core.Application)}
}

func (r *Repository) Ping(context.Context) error { return nil }

func (r *Repository) Create(_ context.Context, app *core.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; ok {
		return core.ErrConflict
	}
	r.apps[app.ID] = app.Clone()
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (*core.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return app.Clone(), nil
}

func (r *Repository) FindActiveByContact(_ context.Context, mobile, email string) (*core.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var newest *core.Application
	var newestAt time.Time
	for _, app := range r.apps {
		if app.Mobile != mobile || app.Email != email || !app.Status.Active() {
			continue
		}
		if newest == nil || app.CreatedAt.After(newestAt) {
			newest = app
			newestAt = app.CreatedAt
		}
	}
	if newest == nil {
		return nil, core.ErrNotFound
	}
	return newest.Clone(), nil
}

func (r *Repository) Update(_ context.Context, app *core.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; !ok {
		return core.ErrNotFound
	}
	r.apps[app.ID] = app.Clone()
	return nil
}

func (r *Repository) Close(context.Context) error { return nil }
