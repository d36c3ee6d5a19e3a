package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/disklink/disklink/internal/api"
	"github.com/disklink/disklink/internal/constants"
)

// Walker performs the full depth-first traversal of the remote tree.
type Walker struct {
	client *api.Client

	// Tick is called once per remote query, a visual heartbeat with no
	// semantic meaning. Defaults to printing a dot.
	Tick func()
}

// NewWalker creates a walker over the given API client.
func NewWalker(client *api.Client) *Walker {
	return &Walker{
		client: client,
		Tick: func() {
			fmt.Fprint(os.Stderr, ".")
		},
	}
}

// Walk traverses the remote tree rooted at root (the disk root when empty)
// and returns a fresh snapshot. Folder sizes are aggregated bottom-up: a
// Folder entry is only appended after its whole subtree has been summed,
// so an observable Folder always carries its final size.
//
// A non-success response at any node aborts the walk; transient failures
// are already retried by the client's transport.
func (w *Walker) Walk(ctx context.Context, root string) (*Snapshot, error) {
	if root == "" {
		root = constants.RootPath
	}

	snap := &Snapshot{Root: root}
	total, err := w.walk(ctx, root, snap)
	if err != nil {
		return nil, fmt.Errorf("catalogue walk failed at %s: %w", root, err)
	}
	snap.TotalSize = total

	return snap, nil
}

func (w *Walker) walk(ctx context.Context, path string, snap *Snapshot) (int64, error) {
	if w.Tick != nil {
		w.Tick()
	}

	res, err := w.client.Metadata(ctx, path)
	if err != nil {
		return 0, err
	}

	var total int64
	if res.Embedded == nil {
		return total, nil
	}

	for i := range res.Embedded.Items {
		item := &res.Embedded.Items[i]
		if item.IsDir() {
			subtree, err := w.walk(ctx, item.Path, snap)
			if err != nil {
				return 0, err
			}
			total += subtree
			snap.Folders = append(snap.Folders, newFolder(item, subtree))
		} else {
			total += item.Size
			snap.Files = append(snap.Files, newFile(item))
		}
	}

	return total, nil
}
