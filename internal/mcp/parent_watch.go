package mcp

import (
	"context"
	"os"
	"time"

	"launchdash/internal/logging"
)

// ParentPollInterval is how often WatchParent checks the parent pid.
var ParentPollInterval = 2 * time.Second

// WatchParent cancels the server when the parent process goes away, so an
// editor that restarts its extension host does not leave orphaned servers
// behind.
//
// It must not read stdin: the stdio transport owns it, and stolen bytes
// corrupt the JSON-RPC stream.
//
// The goroutine exits when ctx is cancelled or the parent dies.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	log := logging.New("mcp")
	go func() {
		ticker := time.NewTicker(ParentPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if os.Getppid() != ppid {
					log.Warn("parent process exited, shutting down", "ppid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
