package format

import (
	"sort"

	"github.com/aanubhavv/youtube-video-downloader/internal/model"
)

// Catalog holds the format records of one extraction response partitioned
// by track composition. Video is sorted descending by (height, fps, tbr)
// and Audio descending by (abr, tbr); ties keep the original order.
// Combined stays in input order, ranking it is deferred to selection.
type Catalog struct {
	Video    []model.FormatRecord
	Audio    []model.FormatRecord
	Combined []model.FormatRecord

	// Discarded counts records carrying neither track
	Discarded int
}

// Build partitions raw format records into a ranked catalog. It is a pure
// function of its input; an empty input yields an empty catalog.
func Build(raw []model.FormatRecord) Catalog {
	var c Catalog

	for _, f := range raw {
		switch {
		case f.IsVideoOnly():
			c.Video = append(c.Video, f)
		case f.IsAudioOnly():
			c.Audio = append(c.Audio, f)
		case f.IsCombined():
			c.Combined = append(c.Combined, f)
		default:
			c.Discarded++
		}
	}

	// Stable sorts: equally-ranked formats keep their input order, which
	// decides which one selection picks.
	sort.SliceStable(c.Video, func(i, j int) bool {
		a, b := c.Video[i], c.Video[j]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		if a.FPS != b.FPS {
			return a.FPS > b.FPS
		}
		return a.TBR > b.TBR
	})

	sort.SliceStable(c.Audio, func(i, j int) bool {
		a, b := c.Audio[i], c.Audio[j]
		if a.ABR != b.ABR {
			return a.ABR > b.ABR
		}
		return a.TBR > b.TBR
	})

	return c
}

// IsEmpty returns true if no usable format survived partitioning
func (c Catalog) IsEmpty() bool {
	return len(c.Video) == 0 && len(c.Audio) == 0 && len(c.Combined) == 0
}

// TopVideo returns up to n highest-ranked video-only formats
func (c Catalog) TopVideo(n int) []model.FormatRecord {
	if len(c.Video) < n {
		n = len(c.Video)
	}
	return c.Video[:n]
}

// TopAudio returns up to n highest-ranked audio-only formats
func (c Catalog) TopAudio(n int) []model.FormatRecord {
	if len(c.Audio) < n {
		n = len(c.Audio)
	}
	return c.Audio[:n]
}

// bestCombined returns the combined format ranked by (height, tbr)
// descending, ties broken by input order
func (c Catalog) bestCombined() (model.FormatRecord, bool) {
	if len(c.Combined) == 0 {
		return model.FormatRecord{}, false
	}
	best := c.Combined[0]
	for _, f := range c.Combined[1:] {
		if f.Height > best.Height || (f.Height == best.Height && f.TBR > best.TBR) {
			best = f
		}
	}
	return best, true
}

// loudestCombined returns the combined format with the highest average
// audio bitrate, ties broken by input order
func (c Catalog) loudestCombined() (model.FormatRecord, bool) {
	if len(c.Combined) == 0 {
		return model.FormatRecord{}, false
	}
	best := c.Combined[0]
	for _, f := range c.Combined[1:] {
		if f.ABR > best.ABR {
			best = f
		}
	}
	return best, true
}
