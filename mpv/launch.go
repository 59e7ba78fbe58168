package mpv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Player is a running mpv preview connected over IPC.
type Player struct {
	cmd    *exec.Cmd
	client *Client
}

// SocketPathFor returns a per-process IPC socket path in the temp dir.
func SocketPathFor(pid int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("clipper-mpv-%d.sock", pid))
}

// Launch starts mpv paused on videoPath with an IPC socket and waits until
// the socket accepts connections or ctx ends.
func Launch(ctx context.Context, binary, videoPath string) (*Player, error) {
	if binary == "" {
		binary = "mpv"
	}
	socketPath := SocketPathFor(os.Getpid())
	_ = os.Remove(socketPath)

	cmd := exec.Command(binary,
		"--input-ipc-server="+socketPath,
		"--pause",
		"--keep-open=yes",
		videoPath,
	)
	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to launch mpv: %w", err)
	}

	client := NewClient(socketPath)
	if err := client.WaitConnect(ctx, 100*time.Millisecond); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("failed to connect to mpv: %w", err)
	}
	return &Player{cmd: cmd, client: client}, nil
}

// Client returns the IPC client for the running player.
func (p *Player) Client() *Client {
	return p.client
}

// Close disconnects and stops the player.
func (p *Player) Close() error {
	_ = p.client.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	_ = p.cmd.Wait()
	_ = os.Remove(p.client.SocketPath())
	return nil
}
