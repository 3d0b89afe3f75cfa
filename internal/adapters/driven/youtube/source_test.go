package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	ytapi "github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
)

const testVideoID = domain.VideoID("dQw4w9WgXcQ")

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.0" dur="1.5">Hey there</text>` +
	`<text start="1.5" dur="2.25">it&amp;#39;s &lt;font color=&quot;#fff&quot;&gt;me&lt;/font&gt;</text>` +
	`<text start="3.75" dur="1"></text>` +
	`<text start="4.75" dur="0.5">  </text>` +
	`<text start="5.25" dur="2">bye</text>` +
	`</transcript>`

// fakeVideos implements videoClient for testing.
type fakeVideos struct {
	tracks    []ytapi.CaptionTrack
	err       error
	requested string
}

func (f *fakeVideos) GetVideoContext(ctx context.Context, url string) (*ytapi.Video, error) {
	f.requested = url
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ytapi.Video{ID: url, CaptionTracks: f.tracks}, nil
}

// timedTextServer serves timedTextXML and records the last query string.
type timedTextServer struct {
	url    string
	status int
	query  atomic.Value
	calls  atomic.Int32
}

func newTimedTextServer(t *testing.T) *timedTextServer {
	t.Helper()
	ts := &timedTextServer{status: http.StatusOK}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		ts.query.Store(r.URL.RawQuery)
		w.WriteHeader(ts.status)
		fmt.Fprint(w, timedTextXML)
	}))
	t.Cleanup(srv.Close)
	ts.url = srv.URL
	return ts
}

func (ts *timedTextServer) track(lang, name, kind string) ytapi.CaptionTrack {
	var tr ytapi.CaptionTrack
	tr.BaseURL = ts.url + "/api/timedtext?lang=" + lang + "&fmt=srv3"
	tr.Name.SimpleText = name
	tr.LanguageCode = lang
	tr.Kind = kind
	return tr
}

func newTestSource(videos *fakeVideos) *Source {
	return &Source{videos: videos, client: &http.Client{Timeout: time.Second}}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})

	assert.Equal(t, DefaultTimeout, s.client.Timeout)
	client, ok := s.videos.(*ytapi.Client)
	require.True(t, ok)
	assert.Same(t, s.client, client.HTTPClient)
}

func TestFetch_ReturnsCleanSnippets(t *testing.T) {
	ts := newTimedTextServer(t)
	videos := &fakeVideos{tracks: []ytapi.CaptionTrack{ts.track("en", "English", "")}}

	transcript, err := newTestSource(videos).Fetch(context.Background(), testVideoID, []string{"en"})
	require.NoError(t, err)

	assert.Equal(t, testVideoID.String(), videos.requested)
	assert.Equal(t, testVideoID, transcript.VideoID)
	assert.Equal(t, "en", transcript.Language)
	assert.Equal(t, "English", transcript.LanguageName)
	assert.False(t, transcript.IsGenerated)

	require.Len(t, transcript.Snippets, 3)
	assert.Equal(t, "Hey there", transcript.Snippets[0].Text)
	assert.Equal(t, "it's me", transcript.Snippets[1].Text)
	assert.Equal(t, 1500*time.Millisecond, transcript.Snippets[1].Start)
	assert.Equal(t, 2250*time.Millisecond, transcript.Snippets[1].Duration)
	assert.Equal(t, "bye", transcript.Snippets[2].Text)
	assert.Equal(t, "Hey there it's me bye", transcript.Text())

	assert.Equal(t, "lang=en", ts.query.Load(), "srv3 format suffix is stripped")
}

func TestFetch_PrefersManualOverGeneratedPerLanguage(t *testing.T) {
	ts := newTimedTextServer(t)
	videos := &fakeVideos{tracks: []ytapi.CaptionTrack{
		ts.track("en", "English (auto-generated)", "asr"),
		ts.track("hi", "Hindi", ""),
		ts.track("en", "English", ""),
	}}

	transcript, err := newTestSource(videos).Fetch(context.Background(), testVideoID, []string{"en", "hi"})
	require.NoError(t, err)
	assert.Equal(t, "en", transcript.Language)
	assert.False(t, transcript.IsGenerated)
	assert.Equal(t, "English", transcript.LanguageName)
}

func TestFetch_LanguageOrderWinsOverManual(t *testing.T) {
	ts := newTimedTextServer(t)
	videos := &fakeVideos{tracks: []ytapi.CaptionTrack{
		ts.track("en", "English (auto-generated)", "asr"),
		ts.track("hi", "Hindi", ""),
	}}

	transcript, err := newTestSource(videos).Fetch(context.Background(), testVideoID, []string{"auto", "en", "hi"})
	require.NoError(t, err)
	assert.Equal(t, "en", transcript.Language)
	assert.True(t, transcript.IsGenerated)
	assert.Equal(t, "English (auto-generated)", transcript.LanguageName)
}

func TestFetch_NoMatchingLanguage(t *testing.T) {
	ts := newTimedTextServer(t)
	videos := &fakeVideos{tracks: []ytapi.CaptionTrack{
		ts.track("de", "German", ""),
		ts.track("fr", "French", "asr"),
	}}

	_, err := newTestSource(videos).Fetch(context.Background(), testVideoID, []string{"en"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoTranscriptFound))
	assert.Contains(t, err.Error(), "de")
	assert.Contains(t, err.Error(), "fr (auto)")
	assert.Zero(t, ts.calls.Load())
}

func TestFetch_TranscriptsDisabled(t *testing.T) {
	_, err := newTestSource(&fakeVideos{}).Fetch(context.Background(), testVideoID, []string{"en"})

	assert.ErrorIs(t, err, ErrTranscriptsDisabled)
	assert.False(t, errors.Is(err, domain.ErrNoTranscriptFound))
}

func TestFetch_VideoUnavailable(t *testing.T) {
	videos := &fakeVideos{err: errors.New("This video is unavailable")}

	_, err := newTestSource(videos).Fetch(context.Background(), testVideoID, []string{"en"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVideoUnavailable)
	assert.Contains(t, err.Error(), "This video is unavailable")
}

func TestFetch_TooManyRequests(t *testing.T) {
	ts := newTimedTextServer(t)
	ts.status = http.StatusTooManyRequests
	videos := &fakeVideos{tracks: []ytapi.CaptionTrack{ts.track("en", "English", "")}}

	_, err := newTestSource(videos).Fetch(context.Background(), testVideoID, []string{"en"})
	assert.ErrorIs(t, err, ErrRequestBlocked)
}

func TestFetch_TimedTextServerError(t *testing.T) {
	ts := newTimedTextServer(t)
	ts.status = http.StatusInternalServerError
	videos := &fakeVideos{tracks: []ytapi.CaptionTrack{ts.track("en", "English", "")}}

	_, err := newTestSource(videos).Fetch(context.Background(), testVideoID, []string{"en"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetch_ContextCancelled(t *testing.T) {
	ts := newTimedTextServer(t)
	videos := &fakeVideos{tracks: []ytapi.CaptionTrack{ts.track("en", "English", "")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSource(videos).Fetch(ctx, testVideoID, []string{"en"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, domain.ErrVideoUnavailable))
}

func TestSelectTrack_Empty(t *testing.T) {
	_, ok := selectTrack(nil, []string{"en"})
	assert.False(t, ok)
}

func TestParseTimedText_Invalid(t *testing.T) {
	_, err := parseTimedText(nil)
	assert.Error(t, err)
}

func TestParseSeconds(t *testing.T) {
	assert.Equal(t, 2500*time.Millisecond, parseSeconds("2.5"))
	assert.Zero(t, parseSeconds(""))
	assert.Zero(t, parseSeconds("-1"))
	assert.Zero(t, parseSeconds("abc"))
}
