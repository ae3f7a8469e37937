package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/online_bookstore/internal/db"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/notify"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
)

func newTestRepo(t *testing.T) (*repo.GormRepo, *gorm.DB) {
	t.Helper()

	gdb, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	return repo.New(gdb), gdb
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

type event struct {
	Topic, Key, Type string
	Payload          any
}

type fakeEvents struct {
	mu     sync.Mutex
	events []event
	err    error
}

func (f *fakeEvents) PublishEvent(_ context.Context, topic, key, eventType string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event{topic, key, eventType, payload})
	return nil
}

func (f *fakeEvents) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeNotifier struct {
	sent []notify.Notification
	err  error
}

func (f *fakeNotifier) NotifyOwner(_ context.Context, n notify.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

type fakeIndexer struct {
	indexed []uint
	deleted []uint
	err     error
}

func (f *fakeIndexer) IndexBook(_ context.Context, b *models.Book) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, b.ID)
	return nil
}

func (f *fakeIndexer) DeleteBook(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var errBoom = errors.New("boom")
