package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ytapi "github.com/kkdai/youtube/v2"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TranscriptSource = (*Source)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	acceptLanguage = "en-US"
	maxBodyBytes   = 16 << 20
)

// Config holds configuration for the YouTube transcript source.
type Config struct {
	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// videoClient resolves a video and its caption tracks.
// *ytapi.Client satisfies it.
type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*ytapi.Video, error)
}

// Source fetches transcripts from YouTube.
type Source struct {
	videos videoClient
	client *http.Client
}

// New creates a YouTube transcript source.
func New(cfg Config) *Source {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := &http.Client{Timeout: cfg.Timeout}
	return &Source{
		videos: &ytapi.Client{HTTPClient: client},
		client: client,
	}
}

// Fetch returns the transcript of the first requested language that has a track.
// For each language a manually created track wins over an auto-generated one.
func (s *Source) Fetch(ctx context.Context, videoID domain.VideoID, languages []string) (*domain.Transcript, error) {
	video, err := s.videos.GetVideoContext(ctx, videoID.String())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("get video: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrVideoUnavailable, err)
	}

	tracks := toCaptionTracks(video.CaptionTracks)
	if len(tracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}

	track, ok := selectTrack(tracks, languages)
	if !ok {
		return nil, fmt.Errorf("%w: requested %v, available %v",
			domain.ErrNoTranscriptFound, languages, availableLanguages(tracks))
	}

	snippets, err := s.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	return &domain.Transcript{
		VideoID:      videoID,
		Language:     track.LanguageCode,
		LanguageName: track.Name,
		IsGenerated:  track.isGenerated(),
		Snippets:     snippets,
	}, nil
}

func (s *Source) fetchTimedText(ctx context.Context, trackURL string) ([]domain.Snippet, error) {
	trackURL = strings.Replace(trackURL, "&fmt=srv3", "", 1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timed text: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read timed text: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w (status %d)", ErrRequestBlocked, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("youtube error (status %d)", resp.StatusCode)
	}

	return parseTimedText(body)
}
