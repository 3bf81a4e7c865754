package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transcoder derives MP3 renditions from staged WAV files via ffmpeg.
type Transcoder struct {
	binary  string
	tempDir string
}

// NewTranscoder creates a transcoder writing into tempDir
func NewTranscoder(binary, tempDir string) *Transcoder {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Transcoder{binary: binary, tempDir: tempDir}
}

// ToMP3 transcodes the WAV file into the temp dir and returns the MP3 path
func (t *Transcoder) ToMP3(ctx context.Context, wavPath string) (string, error) {
	if err := os.MkdirAll(t.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))
	mp3Path := filepath.Join(t.tempDir, base+".mp3")

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", wavPath,
		"-codec:a", "libmp3lame",
		"-b:a", "320k",
		mp3Path,
	}
	cmd := exec.CommandContext(ctx, t.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg transcode %s: %w: %s", wavPath, err, strings.TrimSpace(string(output)))
	}

	return mp3Path, nil
}
