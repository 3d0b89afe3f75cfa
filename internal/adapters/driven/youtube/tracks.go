package youtube

import (
	ytapi "github.com/kkdai/youtube/v2"
)

type captionTrack struct {
	BaseURL      string
	Name         string
	LanguageCode string
	Kind         string
}

func (t captionTrack) isGenerated() bool {
	return t.Kind == "asr"
}

func toCaptionTracks(tracks []ytapi.CaptionTrack) []captionTrack {
	out := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, captionTrack{
			BaseURL:      t.BaseURL,
			Name:         t.Name.SimpleText,
			LanguageCode: t.LanguageCode,
			Kind:         t.Kind,
		})
	}
	return out
}

// selectTrack returns the first track matching the requested languages in
// order, preferring a manually created track for each language.
func selectTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	manual := make(map[string]captionTrack)
	generated := make(map[string]captionTrack)
	for _, t := range tracks {
		target := manual
		if t.isGenerated() {
			target = generated
		}
		if _, exists := target[t.LanguageCode]; !exists {
			target[t.LanguageCode] = t
		}
	}

	for _, lang := range languages {
		if t, ok := manual[lang]; ok {
			return t, true
		}
		if t, ok := generated[lang]; ok {
			return t, true
		}
	}
	return captionTrack{}, false
}

func availableLanguages(tracks []captionTrack) []string {
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		code := t.LanguageCode
		if t.isGenerated() {
			code += " (auto)"
		}
		langs = append(langs, code)
	}
	return langs
}
