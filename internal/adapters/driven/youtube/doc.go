// Package youtube implements driven.TranscriptSource on top of
// github.com/kkdai/youtube/v2.
//
// The library resolves the video (playability and caption tracks). The
// selected track's timed-text XML is downloaded and parsed here, because
// tubeqa picks between manual and auto-generated tracks per language.
package youtube
