package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/oshokin/alarm-clock/internal/logger"
)

var (
	// ErrSoundNotFound is returned when the sound file does not exist.
	ErrSoundNotFound = errors.New("sound file not found")
	// ErrNoPlayer is returned when no usable player command is installed.
	ErrNoPlayer = errors.New("no sound player available")
)

// candidates are tried in order when no player command is configured.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = [][]string{
	{"mpv", "--no-video", "--really-quiet"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"paplay"},
	{"aplay", "-q"},
	{"afplay"},
}

// ExecPlayer plays a sound file in a loop using an external command.
type ExecPlayer struct {
	// command is the configured player argv; empty means auto-detect.
	command []string
	// lookPath resolves executables; replaced in tests.
	lookPath func(file string) (string, error)
	// cancel stops the current playback; nil when idle.
	cancel context.CancelFunc
	// done is closed when the playback goroutine exits.
	done chan struct{}
	// mu guards cancel and done.
	mu sync.Mutex
}

// NewExecPlayer creates a player. command is an optional player command
// line such as "mpv --volume=50"; the sound path is appended to it.
func NewExecPlayer(command string) *ExecPlayer {
	return &ExecPlayer{
		command:  strings.Fields(command),
		lookPath: exec.LookPath,
	}
}

// Play starts looping the sound at path. It returns once the first player
// process has started. Playback outlives ctx and ends on Stop.
// Calling Play while already playing does nothing.
func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSoundNotFound, path)
		}

		return fmt.Errorf("stat sound file: %w", err)
	}

	argv, err := p.resolve()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != nil {
		return nil
	}

	playCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	cmd := newCommand(playCtx, argv, path)
	if err = cmd.Start(); err != nil {
		cancel()

		return fmt.Errorf("start player %s: %w", argv[0], err)
	}

	done := make(chan struct{})
	p.cancel, p.done = cancel, done

	logger.DebugKV(ctx, "Sound playback started", "player", argv[0], "sound_file", path)

	go p.loop(playCtx, cmd, argv, path, done)

	return nil
}

// Stop ends playback and waits for the player process to exit.
func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if done == nil {
		return nil
	}

	cancel()
	<-done

	return nil
}

// Playing reports whether a playback loop is active.
func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.done != nil
}

// loop waits for each player run and starts the next one until canceled.
// A failing run ends the loop so a broken player is not respawned forever.
func (p *ExecPlayer) loop(ctx context.Context, cmd *exec.Cmd, argv []string, path string, done chan struct{}) {
	defer close(done)

	for {
		err := cmd.Wait()
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			logger.WarnKV(ctx, "Sound player exited with error", "player", argv[0], "error", err)
			p.finish(done)

			return
		}

		cmd = newCommand(ctx, argv, path)
		if err = cmd.Start(); err != nil {
			logger.WarnKV(ctx, "Sound player restart failed", "player", argv[0], "error", err)
			p.finish(done)

			return
		}
	}
}

// finish clears the playback state if it still belongs to done.
func (p *ExecPlayer) finish(done chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != done {
		return
	}

	p.cancel()
	p.cancel, p.done = nil, nil
}

// resolve returns the argv prefix of the player to use.
func (p *ExecPlayer) resolve() ([]string, error) {
	if len(p.command) > 0 {
		if _, err := p.lookPath(p.command[0]); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNoPlayer, p.command[0], err)
		}

		return p.command, nil
	}

	for _, candidate := range candidates {
		if _, err := p.lookPath(candidate[0]); err == nil {
			return candidate, nil
		}
	}

	return nil, ErrNoPlayer
}

// newCommand builds one player run for path.
func newCommand(ctx context.Context, argv []string, path string) *exec.Cmd {
	args := append(append(make([]string, 0, len(argv)), argv[1:]...), path)

	return exec.CommandContext(ctx, argv[0], args...) //nolint:gosec // Player command comes from local settings.
}

// NopPlayer tracks the playing flag without producing sound.
type NopPlayer struct {
	// playing reports whether Play was called after the last Stop.
	playing bool
	// mu guards the fields above.
	mu sync.Mutex
}

// Play marks the player as playing.
func (p *NopPlayer) Play(ctx context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger.DebugKV(ctx, "Sound muted", "sound_file", path)

	p.playing = true

	return nil
}

// Stop clears the playing flag.
func (p *NopPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = false

	return nil
}

// Playing reports the playing flag.
func (p *NopPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}
