package youtube

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/postprocessors/normaliser"
)

type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText decodes a <transcript> document into snippets in document
// order. Markup and entities are removed and empty lines are skipped.
func parseTimedText(data []byte) ([]domain.Snippet, error) {
	var doc timedText
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode timed text: %w", err)
	}

	snippets := make([]domain.Snippet, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := normaliser.Clean(t.Body)
		if text == "" {
			continue
		}
		snippets = append(snippets, domain.Snippet{
			Text:     text,
			Start:    parseSeconds(t.Start),
			Duration: parseSeconds(t.Dur),
		})
	}
	return snippets, nil
}

func parseSeconds(s string) time.Duration {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
