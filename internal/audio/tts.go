package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	ttsRequestTimeout = 10 * time.Second

	// maxChunkLen is the longest text the translate endpoint accepts per request
	maxChunkLen = 200
)

// ErrDisabled is returned when speech generation is switched off
var ErrDisabled = errors.New("speech not supported")

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// TTSService renders lesson scripts to MP3 files using a Google Translate
// compatible text-to-speech endpoint.
type TTSService struct {
	audioDir string
	endpoint string
	client   *http.Client
	enabled  bool
}

// NewTTSService creates a TTS service writing into audioDir
func NewTTSService(audioDir, endpoint string, enabled bool) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		endpoint: endpoint,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		enabled:  enabled,
	}
}

func (s *TTSService) Enabled() bool {
	return s.enabled
}

// GenerateAudioFile converts text to speech and saves it under CacheName.
// An existing file is reused. Returns the filename, not the full path.
func (s *TTSService) GenerateAudioFile(ctx context.Context, text, prefix string) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}

	filename := CacheName(prefix, text)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	// A failed fetch must never leave a partial file under the cached name
	tmp, err := os.CreateTemp(s.audioDir, "tts-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, chunk := range SplitText(text, maxChunkLen) {
		if err := s.fetch(ctx, chunk, tmp); err != nil {
			tmp.Close()
			return "", fmt.Errorf("failed to generate audio: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to store audio file: %w", err)
	}

	return filename, nil
}

func (s *TTSService) fetch(ctx context.Context, text string, w io.Writer) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// CacheName is the mp3 filename for text spoken under prefix. Sanitizing is
// lossy, so a digest of the raw prefix and text keeps distinct inputs apart.
func CacheName(prefix, text string) string {
	sum := sha256.Sum256([]byte(prefix + "\x00" + text))
	return SanitizeFilename(prefix) + "_" + hex.EncodeToString(sum[:8]) + ".mp3"
}

// SanitizeFilename lowercases name and replaces anything outside [a-z0-9_-] with underscores
func SanitizeFilename(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = unsafeFilenameChars.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "audio"
	}
	return s
}

// SplitText breaks text into chunks of at most limit bytes, preferring
// sentence ends and then word boundaries.
func SplitText(text string, limit int) []string {
	text = strings.TrimSpace(text)
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], ". ")
		if cut > 0 {
			cut++
		} else if cut = strings.LastIndex(text[:limit], " "); cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
