package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// TransferUI manages multiple concurrent file transfer progress bars.
// On a terminal each file gets its own mpb bar; otherwise it falls back
// to plain per-file text lines.
type TransferUI struct {
	progress   *mpb.Progress
	isTerminal bool
	totalFiles int
	completed  int32
}

// FileBar tracks one file's transfer within a TransferUI.
type FileBar struct {
	bar        *mpb.Bar
	ui         *TransferUI
	index      int
	remotePath string
	localPath  string
	size       int64
	startTime  time.Time
	lastUpdate time.Time
	lastBytes  int64
}

// NewTransferUI creates a transfer UI for the given number of files.
func NewTransferUI(totalFiles int) *TransferUI {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))

	var p *mpb.Progress
	if isTerminal {
		enableANSIOnWindows(os.Stderr)

		p = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(300*time.Millisecond),
			mpb.WithWidth(100),
		)
	} else {
		// Non-TTY: disable bars, text output only
		p = mpb.New(mpb.WithOutput(io.Discard))
	}

	return &TransferUI{
		progress:   p,
		isTerminal: isTerminal,
		totalFiles: totalFiles,
	}
}

// AddFileBar registers a new file transfer and returns its bar handle.
func (u *TransferUI) AddFileBar(index int, remotePath, localPath string, size int64) *FileBar {
	destPath := truncatePath(localPath, 2)

	fb := &FileBar{
		ui:         u,
		index:      index,
		remotePath: remotePath,
		localPath:  localPath,
		size:       size,
		startTime:  time.Now(),
		lastUpdate: time.Now(),
	}

	if u.isTerminal {
		fb.bar = u.progress.New(size,
			mpb.BarStyle().
				Lbound("[").
				Filler("█").
				Tip("█").
				Padding("░").
				Rbound("]"),
			mpb.PrependDecorators(
				decor.Name(fmt.Sprintf("[%d/%d] %s ← %s",
					index, u.totalFiles, destPath, remotePath), decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncSpace),
				decor.Name("  "),
				decor.Percentage(decor.WCSyncSpace),
				decor.Name("  "),
				decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 60, decor.WCSyncSpace),
			),
			mpb.BarRemoveOnComplete(),
		)
	} else {
		fmt.Printf("Downloading [%d/%d]: %s ← %s (%.1f MiB)\n",
			index, u.totalFiles, destPath, remotePath,
			float64(size)/(1024*1024))
	}

	return fb
}

// Advance reports newly transferred bytes for this file.
func (f *FileBar) Advance(n int64) {
	f.lastBytes += n
	if f.bar == nil {
		return
	}

	now := time.Now()
	elapsed := now.Sub(f.lastUpdate)
	// mpb needs the elapsed time even for small increments to keep the
	// EWMA speed estimate honest.
	f.bar.EwmaIncrBy(int(n), elapsed)
	f.lastUpdate = now
}

// Complete marks the transfer as finished and prints a one-line summary.
func (f *FileBar) Complete(err error) {
	elapsed := time.Since(f.startTime)

	var msg string
	if err == nil {
		if f.bar != nil {
			f.bar.SetCurrent(f.size)
			f.bar.SetTotal(f.size, true)
		}
		speed := float64(f.size) / elapsed.Seconds() / (1024 * 1024)
		msg = fmt.Sprintf("✓ %s ← %s (%.1f MiB, %s, %.1f MiB/s)\n",
			truncatePath(f.localPath, 2), f.remotePath,
			float64(f.size)/(1024*1024), elapsed.Round(time.Second), speed)
	} else {
		if f.bar != nil {
			f.bar.Abort(false)
		}
		msg = fmt.Sprintf("✗ %s ← %s: %v\n",
			truncatePath(f.localPath, 2), f.remotePath, err)
	}

	if f.ui.isTerminal && f.ui.progress != nil {
		f.ui.progress.Write([]byte(msg))
	} else {
		fmt.Print(msg)
	}

	atomic.AddInt32(&f.ui.completed, 1)
}

// Wait blocks until all bars have rendered their final state.
func (u *TransferUI) Wait() {
	if u.progress != nil {
		u.progress.Wait()
	}
}

// Completed returns the number of finished transfers.
func (u *TransferUI) Completed() int {
	return int(atomic.LoadInt32(&u.completed))
}

// Writer returns an io.Writer that safely prints above the bars.
func (u *TransferUI) Writer() io.Writer {
	if u.progress != nil && u.isTerminal {
		return u.progress
	}
	return os.Stderr
}

// truncatePath keeps the last n components of a slash or OS separated path.
func truncatePath(path string, n int) string {
	norm := strings.ReplaceAll(path, "\\", "/")
	parts := strings.Split(norm, "/")
	if len(parts) <= n {
		return path
	}
	return strings.Join(parts[len(parts)-n:], "/")
}
