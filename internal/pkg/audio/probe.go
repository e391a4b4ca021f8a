package audio

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ProbeDuration extracts the duration in seconds of an audio payload
// with ffprobe. The payload is spooled to a temp file because ffprobe
// needs a seekable input.
func ProbeDuration(ctx context.Context, audioData []byte, ext string) (int, error) {
	tempDir, err := os.MkdirTemp("", "audio-probe-")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inFile := filepath.Join(tempDir, "input"+ext)
	if err := os.WriteFile(inFile, audioData, 0644); err != nil {
		return 0, fmt.Errorf("failed to write input file: %w", err)
	}

	durationStr, err := runCommand(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inFile)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", durationStr, err)
	}

	return int(math.Round(durationFloat)), nil
}

// Available reports whether ffprobe is on PATH
func Available() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w (%s)", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
