// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package voice

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeTranscriber writes an executable shell script that emits fixed
// phrases, standing in for a real speech-to-text process.
func fakeTranscriber(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-transcriber")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectConfiguredCommandMissing(t *testing.T) {
	caps := Detect("definitely-not-a-real-transcriber-command")
	if caps.Available {
		t.Error("missing configured command should not be available")
	}
}

func TestDetectConfiguredCommandPresent(t *testing.T) {
	// Any executable works for detection; the shell is always there.
	caps := Detect("sh")
	if !caps.Available {
		t.Fatal("sh should be detected")
	}
	if caps.Command == "" {
		t.Error("detected command path should be set")
	}
}

func TestTranscriberStreamsPhrases(t *testing.T) {
	command := fakeTranscriber(t, "echo 'screen is cracked'\necho ''\necho 'battery drains fast'\n")
	transcriber := NewTranscriber(command, "en-US")

	phrases, err := transcriber.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var got []string
	for phrase := range phrases {
		got = append(got, phrase)
	}
	if len(got) != 2 || got[0] != "screen is cracked" || got[1] != "battery drains fast" {
		t.Errorf("phrases = %q, want two non-blank phrases", got)
	}
}

func TestTranscriberStop(t *testing.T) {
	command := fakeTranscriber(t, "echo 'first phrase'\nsleep 60\n")
	transcriber := NewTranscriber(command, "")

	phrases, err := transcriber.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case phrase := <-phrases:
		if phrase != "first phrase" {
			t.Fatalf("phrase = %q", phrase)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first phrase")
	}

	finished := make(chan struct{})
	go func() {
		transcriber.Stop()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not terminate the transcriber")
	}
}

func TestTranscriberStartTwice(t *testing.T) {
	command := fakeTranscriber(t, "true\n")
	transcriber := NewTranscriber(command, "")
	if _, err := transcriber.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer transcriber.Stop()
	if _, err := transcriber.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}
}

func TestTranscriberMissingCommand(t *testing.T) {
	transcriber := NewTranscriber("/nonexistent/transcriber", "")
	if _, err := transcriber.Start(context.Background()); err == nil {
		t.Error("Start with missing command should fail")
	}
}
