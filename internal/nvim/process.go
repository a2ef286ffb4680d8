package nvim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// procState represents the state of the editor subprocess.
type procState int32

const (
	procRunning procState = iota
	procExited
	procKilled
)

// String returns a human-readable state name.
func (s procState) String() string {
	switch s {
	case procRunning:
		return "running"
	case procExited:
		return "exited"
	case procKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// process is the embedded editor subprocess. It owns the exec.Cmd, its
// stdio pipes, and exit tracking. Safe for concurrent use.
type process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error

	waitOnce sync.Once
}

// startProcess launches command with the embed flag prepended to args.
// Stdin and stdout carry the protocol; stderr is inherited so editor
// diagnostics stay visible.
func startProcess(ctx context.Context, command string, args, env []string) (*process, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrEditorNotFound, command, err)
	}

	cmd := exec.CommandContext(ctx, path, append([]string{"--embed"}, args...)...)
	cmd.Stderr = os.Stderr
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stdout: %w", err)
	}

	p := &process{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		done:   make(chan struct{}),
	}
	p.exitCode.Store(-1)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %q: %w", command, err)
	}
	p.state.Store(int32(procRunning))
	go p.waitLoop()
	return p, nil
}

// waitLoop reaps the subprocess and records how it went.
func (p *process) waitLoop() {
	p.waitOnce.Do(func() {
		err := p.cmd.Wait()

		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()

		code := 0
		state := procExited
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
				if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
					state = procKilled
				}
			} else {
				code = -1
			}
		}
		p.exitCode.Store(int32(code))
		p.state.Store(int32(state))
		close(p.done)
	})
}

// Done returns a channel closed when the subprocess exits.
func (p *process) Done() <-chan struct{} { return p.done }

// State returns the current subprocess state.
func (p *process) State() procState { return procState(p.state.Load()) }

// ExitCode returns the exit code, or -1 while the subprocess runs.
func (p *process) ExitCode() int { return int(p.exitCode.Load()) }

// ExitError returns the error cmd.Wait reported, if any.
func (p *process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// PID returns the subprocess id, or -1 before start.
func (p *process) PID() int {
	if p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// stop closes the protocol pipes, then escalates from SIGTERM to SIGKILL if
// the editor does not exit within grace. An editor that saw its stdin close
// normally exits on its own.
func (p *process) stop(grace time.Duration) {
	p.stdin.Close()
	select {
	case <-p.done:
		return
	case <-time.After(grace):
	}

	if p.cmd.Process != nil {
		p.cmd.Process.Signal(syscall.SIGTERM)
	}
	select {
	case <-p.done:
		return
	case <-time.After(grace):
	}

	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	<-p.done
}
