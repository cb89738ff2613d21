package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality request kinds
const (
	KindAuto = iota
	KindAudioOnly
	KindHeightCapped
)

// Selection labels and the generic selector yt-dlp falls back to when no
// concrete format ID could be resolved
const (
	LabelAudioOnly   = "Audio Only"
	LabelBestQuality = "Best Quality"

	FallbackSelector = "best[height<=1080]/best"

	// autoMinHeight is the resolution auto mode prefers to reach
	autoMinHeight = 1080
)

// Request is a parsed quality request: best available, audio only, or a
// ceiling on vertical resolution
type Request struct {
	Kind      int
	MaxHeight int
}

// ParseRequest parses the quality string accepted by the API. Supported
// shapes: "auto" (or empty), "bestaudio"/"audio", "best[height<=N]", and
// the "1080p"/"720" shorthand.
func ParseRequest(s string) (Request, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch s {
	case "", "auto":
		return Request{Kind: KindAuto}, nil
	case "bestaudio", "audio":
		return Request{Kind: KindAudioOnly}, nil
	}

	if rest, ok := strings.CutPrefix(s, "best[height<="); ok {
		rest, ok = strings.CutSuffix(rest, "]")
		if ok {
			if n, err := strconv.Atoi(rest); err == nil && n > 0 {
				return Request{Kind: KindHeightCapped, MaxHeight: n}, nil
			}
		}
		return Request{}, fmt.Errorf("invalid quality selector %q", s)
	}

	if n, err := strconv.Atoi(strings.TrimSuffix(s, "p")); err == nil && n > 0 {
		return Request{Kind: KindHeightCapped, MaxHeight: n}, nil
	}

	return Request{}, fmt.Errorf("unsupported quality %q", s)
}

// Selection is the outcome of resolving a quality request against a
// catalog. Identical video and audio IDs signal an already-muxed combined
// format that must not be downloaded as separate tracks.
type Selection struct {
	VideoID string
	AudioID string
	Label   string
}

// Select resolves a quality request to concrete format IDs. When any
// video-only format exists some video is always returned; when the catalog
// only holds combined formats every request falls back to the best of
// them. An empty catalog yields an empty selection.
func Select(c Catalog, req Request) Selection {
	if req.Kind == KindAudioOnly {
		return selectAudioOnly(c)
	}

	var sel Selection

	switch req.Kind {
	case KindAuto:
		for _, f := range c.Video {
			if f.Height >= autoMinHeight {
				sel.VideoID = f.FormatID
				sel.Label = heightLabel(f.Height)
				break
			}
		}
		if sel.VideoID == "" && len(c.Video) > 0 {
			sel.VideoID = c.Video[0].FormatID
			sel.Label = heightLabel(c.Video[0].Height)
		}

	case KindHeightCapped:
		// Video is sorted descending, so the first entry at or below the
		// cap is the highest that fits; below-everything caps get the
		// lowest available instead of failing.
		for _, f := range c.Video {
			if f.Height <= req.MaxHeight {
				sel.VideoID = f.FormatID
				sel.Label = heightLabel(f.Height)
				break
			}
		}
		if sel.VideoID == "" && len(c.Video) > 0 {
			last := c.Video[len(c.Video)-1]
			sel.VideoID = last.FormatID
			sel.Label = heightLabel(last.Height)
		}
	}

	if len(c.Audio) > 0 {
		sel.AudioID = c.Audio[0].FormatID
	}

	if sel.VideoID == "" && sel.AudioID == "" {
		if best, ok := c.bestCombined(); ok {
			return Selection{
				VideoID: best.FormatID,
				AudioID: best.FormatID,
				Label:   heightLabel(best.Height),
			}
		}
		return Selection{Label: LabelBestQuality}
	}

	if sel.VideoID == "" {
		sel.Label = LabelAudioOnly
	} else if sel.Label == "" {
		sel.Label = LabelBestQuality
	}

	return sel
}

func selectAudioOnly(c Catalog) Selection {
	if len(c.Audio) > 0 {
		return Selection{AudioID: c.Audio[0].FormatID, Label: LabelAudioOnly}
	}
	if best, ok := c.loudestCombined(); ok {
		return Selection{AudioID: best.FormatID, Label: LabelAudioOnly}
	}
	return Selection{Label: LabelBestQuality}
}

// SelectorString composes the format expression handed to yt-dlp. Every
// branch yields something invokable even when no format ID was resolved.
func (s Selection) SelectorString() string {
	switch {
	case s.VideoID != "" && s.AudioID != "" && s.VideoID == s.AudioID:
		// Already muxed, fetch the single combined format as-is
		return s.VideoID
	case s.VideoID != "" && s.AudioID != "":
		return s.VideoID + "+" + s.AudioID
	case s.VideoID != "":
		return s.VideoID + "+bestaudio"
	case s.AudioID != "":
		return s.AudioID
	default:
		return FallbackSelector
	}
}

// NeedsMerge reports whether the selector names separate video and audio
// tracks that yt-dlp has to multiplex
func (s Selection) NeedsMerge() bool {
	return strings.Contains(s.SelectorString(), "+")
}

func heightLabel(height int) string {
	if height > 0 {
		return fmt.Sprintf("%dp", height)
	}
	return LabelBestQuality
}
