package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/disklink/disklink/internal/api"
	"github.com/disklink/disklink/internal/config"
	"github.com/disklink/disklink/internal/logging"
	"github.com/disklink/disklink/internal/transfer"
)

// fakeLifecycle emulates the metadata, create and delete endpoints with
// configurable delete-consistency lag.
type fakeLifecycle struct {
	mu sync.Mutex

	tree map[string]string // path -> metadata JSON

	// pollsBeforeGone makes a deleted path keep answering 200 for the
	// first n existence checks, emulating asynchronous deletion.
	pollsBeforeGone map[string]int

	deletes []string
	creates int
	failOn  string // delete of this path answers 409
}

func newFakeLifecycle() *fakeLifecycle {
	return &fakeLifecycle{
		tree: map[string]string{
			"/": `{"path":"disk:/","name":"disk","type":"dir","_embedded":{"items":[]}}`,
		},
		pollsBeforeGone: map[string]int{},
	}
}

func (f *fakeLifecycle) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		p := r.URL.Query().Get("path")

		switch r.Method {
		case http.MethodGet:
			if n := f.pollsBeforeGone[p]; n > 0 {
				f.pollsBeforeGone[p] = n - 1
				fmt.Fprintf(w, `{"path":"disk:%s","name":"x","type":"file","size":1}`, p)
				return
			}
			if body, ok := f.tree[p]; ok {
				fmt.Fprint(w, body)
				return
			}
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"DiskNotFoundError","message":"not found"}`)
		case http.MethodPut:
			f.creates++
			f.tree[p] = fmt.Sprintf(`{"path":"disk:%s","name":"x","type":"dir"}`, p)
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			f.deletes = append(f.deletes, p)
			if p == f.failOn {
				w.WriteHeader(http.StatusConflict)
				fmt.Fprint(w, `{"error":"DiskResourceLockedError","message":"resource locked"}`)
				return
			}
			delete(f.tree, p)
			w.WriteHeader(http.StatusNoContent)
		}
	})
}

func newTestSession(t *testing.T, f *fakeLifecycle) *Session {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(&config.Config{BaseURL: srv.URL}, "test-token")
	resolver := transfer.NewResolver(client, t.TempDir())
	return NewSession(client, resolver, "", logging.NewLogger(io.Discard))
}

func TestReload_SwapsSnapshot(t *testing.T) {
	f := newFakeLifecycle()
	f.tree["/"] = `{"path":"disk:/","name":"disk","type":"dir","_embedded":{"items":[
		{"path":"disk:/a.txt","name":"a.txt","type":"file","size":10}
	]}}`

	s := newTestSession(t, f)
	before := s.Snapshot()
	if len(before.Files) != 0 {
		t.Fatal("fresh session should start with an empty catalogue")
	}

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if len(s.Snapshot().Files) != 1 {
		t.Errorf("expected 1 file after reload, got %d", len(s.Snapshot().Files))
	}
	// The previous snapshot is untouched; reload swaps, never patches.
	if len(before.Files) != 0 {
		t.Error("old snapshot was mutated by reload")
	}
}

func TestDelete_PollsUntilGone(t *testing.T) {
	f := newFakeLifecycle()
	f.tree["/old.txt"] = `{"path":"disk:/old.txt","name":"old.txt","type":"file","size":1}`

	s := newTestSession(t, f)

	// The path answers two more existence checks before going away.
	f.mu.Lock()
	f.pollsBeforeGone["/old.txt"] = 2
	f.mu.Unlock()

	if err := s.Delete(context.Background(), []string{"/old.txt"}, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := s.Exists(context.Background(), "/old.txt")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("path still exists after Delete returned")
	}
}

func TestDelete_BatchAbortsOnFirstFailure(t *testing.T) {
	f := newFakeLifecycle()
	for _, p := range []string{"/a", "/b", "/c"} {
		f.tree[p] = fmt.Sprintf(`{"path":"disk:%s","name":"x","type":"file","size":1}`, p)
	}
	f.failOn = "/b"

	s := newTestSession(t, f)
	err := s.Delete(context.Background(), []string{"/a", "/b", "/c"}, true)
	if err == nil {
		t.Fatal("expected batch failure")
	}
	if !strings.Contains(err.Error(), "/b") {
		t.Errorf("error should name the failed path: %v", err)
	}

	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusConflict {
		t.Errorf("expected verbatim 409 status error, got %v", err)
	}

	// /a was deleted, /c was never attempted, nothing is rolled back.
	if got := fmt.Sprint(f.deletes); got != "[/a /b]" {
		t.Errorf("expected deletes [/a /b], got %s", got)
	}
	if _, ok := f.tree["/a"]; ok {
		t.Error("completed deletion of /a must not be rolled back")
	}
}

func TestDelete_PermanentFlag(t *testing.T) {
	f := newFakeLifecycle()
	f.tree["/x"] = `{"path":"disk:/x","name":"x","type":"file","size":1}`

	s := newTestSession(t, f)
	if err := s.Delete(context.Background(), []string{"/x"}, true); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(f.deletes) != 1 {
		t.Fatalf("expected one delete call, got %d", len(f.deletes))
	}
}

func TestCreateFolder_Idempotent(t *testing.T) {
	f := newFakeLifecycle()
	s := newTestSession(t, f)
	ctx := context.Background()

	if err := s.CreateFolder(ctx, "/fresh"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if err := s.CreateFolder(ctx, "/fresh"); err != nil {
		t.Fatalf("second CreateFolder failed: %v", err)
	}
	if f.creates != 1 {
		t.Errorf("expected exactly one create call, got %d", f.creates)
	}
}
