package slideshow

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// BridgeHost drives the PowerPoint COM automation through a helper
// process speaking a JSON line protocol on stdin/stdout: one request
// line in, one response line out. The helper is what ties this program
// to a specific OS and presentation application; nothing above the Host
// interface knows about it.
type BridgeHost struct {
	log zerolog.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	started bool
}

type bridgeRequest struct {
	Op    string `json:"op"`
	Path  string `json:"path,omitempty"`
	Slide int    `json:"slide,omitempty"`
}

type bridgeResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Slides int    `json:"slides,omitempty"`
}

// NewBridgeHost creates a Host backed by the automation helper process.
func NewBridgeHost(log zerolog.Logger) *BridgeHost {
	return &BridgeHost{
		log: log.With().Str("component", "host-bridge").Logger(),
	}
}

// Start launches the helper process and creates the host application.
func (b *BridgeHost) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}

	scriptPath := findBridgeScript()
	if scriptPath == "" {
		return fmt.Errorf("powerpoint_bridge.py not found")
	}

	b.cmd = exec.Command("python3", scriptPath)

	stdin, err := b.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := b.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	b.cmd.Stderr = os.Stderr

	if err := b.cmd.Start(); err != nil {
		return fmt.Errorf("start automation helper: %w", err)
	}

	b.stdin = stdin
	b.stdout = bufio.NewReader(stdout)
	b.started = true

	// The helper creates the host application as its first act.
	if _, err := b.call(bridgeRequest{Op: "init"}); err != nil {
		b.teardown()
		return err
	}

	b.log.Info().Str("script", scriptPath).Msg("automation helper started")
	return nil
}

// Open opens the presentation and returns its slide count.
func (b *BridgeHost) Open(path string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	resp, err := b.call(bridgeRequest{Op: "open", Path: path})
	if err != nil {
		return 0, err
	}
	return resp.Slides, nil
}

// StartShow begins the slideshow view at the given slide.
func (b *BridgeHost) StartShow(from int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.call(bridgeRequest{Op: "start_show", Slide: from})
	return err
}

// Next advances one slide.
func (b *BridgeHost) Next() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.call(bridgeRequest{Op: "next"})
	return err
}

// Previous steps back one slide.
func (b *BridgeHost) Previous() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.call(bridgeRequest{Op: "previous"})
	return err
}

// Goto jumps to the given slide.
func (b *BridgeHost) Goto(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.call(bridgeRequest{Op: "goto", Slide: n})
	return err
}

// EndShow exits the slideshow view.
func (b *BridgeHost) EndShow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.call(bridgeRequest{Op: "end_show"})
	return err
}

// ClosePresentation closes the open presentation.
func (b *BridgeHost) ClosePresentation() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.call(bridgeRequest{Op: "close"})
	return err
}

// Quit shuts the host application and the helper process down.
func (b *BridgeHost) Quit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return nil
	}

	if _, err := b.call(bridgeRequest{Op: "quit"}); err != nil {
		b.log.Warn().Err(err).Msg("quit request failed")
	}

	return b.teardown()
}

// call sends one request line and reads one response line.
// Callers must hold b.mu.
func (b *BridgeHost) call(req bridgeRequest) (*bridgeResponse, error) {
	if !b.started {
		return nil, fmt.Errorf("automation helper not running")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	payload = append(payload, '\n')

	if _, err := b.stdin.Write(payload); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	line, err := b.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp bridgeResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("automation host: %s", resp.Error)
	}

	return &resp, nil
}

func (b *BridgeHost) teardown() error {
	if !b.started {
		return nil
	}

	if b.stdin != nil {
		b.stdin.Close()
	}

	err := b.cmd.Wait()
	b.started = false
	b.cmd = nil
	b.stdin = nil
	b.stdout = nil

	b.log.Info().Msg("automation helper stopped")
	return err
}

func findBridgeScript() string {
	var execDir string
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		filepath.Join("scripts", "powerpoint_bridge.py"),
		filepath.Join("..", "scripts", "powerpoint_bridge.py"),
		filepath.Join(execDir, "scripts", "powerpoint_bridge.py"),
		filepath.Join(os.Getenv("HOME"), ".mudra", "scripts", "powerpoint_bridge.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
