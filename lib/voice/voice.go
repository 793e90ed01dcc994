// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package voice provides dictation input via an external speech
// transcriber. Fixdesk does not process audio itself: it spawns a
// transcriber process (configured explicitly, or discovered on PATH)
// that listens to the microphone and emits one recognized phrase per
// stdout line. The UI appends those phrases to whichever text field
// holds dictation focus.
//
// Voice input is strictly optional. When no transcriber is available
// the rest of the application is unaffected; the UI simply does not
// offer the microphone toggle.
package voice

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// knownTranscribers are probed on PATH, in order, when no command is
// configured. Each is expected to honor a --language flag and print
// one recognized phrase per line on stdout.
var knownTranscribers = []string{
	"whisper-stream",
	"vosk-transcriber",
	"nerd-dictation",
}

// Capabilities describes whether speech transcription is available on
// this system and which command provides it.
type Capabilities struct {
	// Available is true if a transcriber command was found.
	Available bool

	// Command is the resolved transcriber path if available.
	Command string
}

// Detect resolves the transcriber command. A non-empty configured
// command is looked up directly; an empty one falls back to probing
// the known transcribers on PATH. Absence is not an error.
func Detect(configured string) Capabilities {
	if configured != "" {
		if path, err := exec.LookPath(configured); err == nil {
			return Capabilities{Available: true, Command: path}
		}
		return Capabilities{}
	}
	for _, name := range knownTranscribers {
		if path, err := exec.LookPath(name); err == nil {
			return Capabilities{Available: true, Command: path}
		}
	}
	return Capabilities{}
}

// Transcriber runs the external speech-to-text process and streams
// recognized phrases. A Transcriber is single-use: Start may be called
// once; create a new Transcriber for each dictation session.
type Transcriber struct {
	command  string
	language string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTranscriber returns a transcriber for the given resolved command
// and spoken-language hint (e.g. "ar-EG").
func NewTranscriber(command, language string) *Transcriber {
	return &Transcriber{command: command, language: language}
}

// Start spawns the transcriber process and returns a channel of
// recognized phrases. The channel is closed when the process exits,
// whether from Stop, context cancellation, or the process ending on
// its own. Blank lines are dropped.
func (t *Transcriber) Start(ctx context.Context) (<-chan string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		return nil, fmt.Errorf("transcriber already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	args := []string{}
	if t.language != "" {
		args = append(args, "--language", t.language)
	}
	command := exec.CommandContext(runCtx, t.command, args...)
	stdout, err := command.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("transcriber stdout pipe: %w", err)
	}
	if err := command.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("starting transcriber %s: %w", t.command, err)
	}

	phrases := make(chan string)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	// Killing the direct child is not enough to unblock the scanner: a
	// helper process the transcriber spawned can inherit the pipe's
	// write end and keep it open. Closing our read end on cancellation
	// forces Scan to return either way.
	go func() {
		<-runCtx.Done()
		stdout.Close()
	}()

	go func() {
		// Deferred in reverse: the phrase channel closes first, then
		// the process is reaped, then cancel releases the pipe watcher,
		// then done releases any Stop caller. Cancellation kills the
		// process, so Wait always returns. A voluntary exit
		// (transcriber crashed, microphone vanished) takes the same
		// path and simply ends the dictation session.
		defer close(done)
		defer cancel()
		defer command.Wait()
		defer close(phrases)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			phrase := strings.TrimSpace(scanner.Text())
			if phrase == "" {
				continue
			}
			select {
			case phrases <- phrase:
			case <-runCtx.Done():
				return
			}
		}
	}()

	return phrases, nil
}

// Stop terminates the transcriber process and waits for the phrase
// channel to close. Safe to call before Start or more than once.
func (t *Transcriber) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
