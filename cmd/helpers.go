package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/daybrief/daybrief/internal/remote"
	"github.com/daybrief/daybrief/internal/todo"
	"github.com/daybrief/daybrief/models"
	"github.com/daybrief/daybrief/store"
)

// app bundles the wired task stack behind every command.
type app struct {
	cache  store.CacheStore
	client *remote.Client
	repo   *todo.Repository
}

// openApp builds the configured cache backend, the Supabase REST client,
// and the repository on top of both. Callers must close it.
func openApp() (*app, error) {
	cfg := GetConfig()

	var cache store.CacheStore
	var err error
	switch cfg.Data.Backend {
	case "sqlite":
		cache, err = store.NewSqliteCacheStore(filepath.Join(cfg.Data.Dir, "daybrief.db"))
	case "file":
		cache, err = store.NewFileCacheStore(afero.NewOsFs(), cfg.Data.Dir)
	default:
		return nil, fmt.Errorf("unknown data backend %q (want file or sqlite)", cfg.Data.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open cache store: %w", err)
	}

	if cfg.Supabase.URL == "" {
		_ = cache.Close()
		return nil, fmt.Errorf("supabase.url is not configured (set %s_SUPABASE_URL or the config file)", envPrefix)
	}
	client := remote.NewClient(remote.Config{
		URL:     cfg.Supabase.URL,
		AnonKey: cfg.Supabase.AnonKey,
	})

	return &app{
		cache:  cache,
		client: client,
		repo:   todo.NewRepository(cache, client),
	}, nil
}

func (a *app) close() { _ = a.cache.Close() }

// reconciler builds the queue reconciler sharing this app's cache store.
func (a *app) reconciler() *todo.Reconciler {
	interval := time.Duration(GetConfig().Sync.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = todo.DefaultSyncInterval
	}
	return todo.NewReconciler(a.cache, a.client, a.repo, interval)
}

// formatTodoLine renders one todo for terminal listings.
func formatTodoLine(t models.Todo) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s %s %s", mark, priorityBadge(t.Priority), models.LifeRoleEmoji(t.Category), t.Title)
	var extras []string
	if t.DueDate != "" {
		extras = append(extras, "due "+t.DueDate)
	}
	if strings.HasPrefix(t.ID, "temp_") {
		extras = append(extras, "unsynced")
	}
	if len(extras) > 0 {
		line += " (" + strings.Join(extras, ", ") + ")"
	}
	return line
}

func priorityBadge(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "!!!"
	case models.PriorityMedium:
		return " !!"
	default:
		return "  !"
	}
}
