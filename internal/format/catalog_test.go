package format

import (
	"testing"

	"github.com/aanubhavv/youtube-video-downloader/internal/model"
)

func video(id string, height int, fps, tbr float64) model.FormatRecord {
	return model.FormatRecord{FormatID: id, VCodec: "avc1", ACodec: "none", Height: height, FPS: fps, TBR: tbr}
}

func audio(id string, abr, tbr float64) model.FormatRecord {
	return model.FormatRecord{FormatID: id, VCodec: "none", ACodec: "opus", ABR: abr, TBR: tbr}
}

func combined(id string, height int, abr, tbr float64) model.FormatRecord {
	return model.FormatRecord{FormatID: id, VCodec: "avc1", ACodec: "mp4a", Height: height, ABR: abr, TBR: tbr}
}

func TestBuild_Partitioning(t *testing.T) {
	raw := []model.FormatRecord{
		video("v1", 720, 30, 1000),
		audio("a1", 128, 130),
		combined("c1", 360, 96, 700),
		{FormatID: "sb", VCodec: "none", ACodec: "none"}, // storyboard, unusable
		video("v2", 1080, 30, 2000),
	}

	c := Build(raw)

	if len(c.Video) != 2 {
		t.Errorf("Expected 2 video-only formats, got %d", len(c.Video))
	}
	if len(c.Audio) != 1 {
		t.Errorf("Expected 1 audio-only format, got %d", len(c.Audio))
	}
	if len(c.Combined) != 1 {
		t.Errorf("Expected 1 combined format, got %d", len(c.Combined))
	}
	if c.Discarded != 1 {
		t.Errorf("Expected 1 discarded record, got %d", c.Discarded)
	}

	total := len(c.Video) + len(c.Audio) + len(c.Combined) + c.Discarded
	if total != len(raw) {
		t.Errorf("Expected buckets to sum to %d, got %d", len(raw), total)
	}
}

func TestBuild_VideoRanking(t *testing.T) {
	raw := []model.FormatRecord{
		video("low", 480, 30, 500),
		video("high-fps", 1080, 60, 1500),
		video("high", 1080, 30, 3000),
		video("mid", 720, 30, 1200),
	}

	c := Build(raw)

	expected := []string{"high-fps", "high", "mid", "low"}
	for i, id := range expected {
		if c.Video[i].FormatID != id {
			t.Errorf("Expected rank %d to be '%s', got '%s'", i, id, c.Video[i].FormatID)
		}
	}
}

func TestBuild_VideoRankingStable(t *testing.T) {
	// Two identical 1080 entries must keep their input order
	raw := []model.FormatRecord{
		video("v720", 720, 30, 1000),
		video("first-1080", 1080, 30, 2000),
		video("second-1080", 1080, 30, 2000),
		video("v480", 480, 30, 600),
	}

	c := Build(raw)

	if c.Video[0].FormatID != "first-1080" {
		t.Errorf("Expected 'first-1080' at rank 0, got '%s'", c.Video[0].FormatID)
	}
	if c.Video[1].FormatID != "second-1080" {
		t.Errorf("Expected 'second-1080' at rank 1, got '%s'", c.Video[1].FormatID)
	}
}

func TestBuild_MissingFieldsRankAsZero(t *testing.T) {
	raw := []model.FormatRecord{
		{FormatID: "no-height", VCodec: "vp9", ACodec: "none", FPS: 60, TBR: 5000},
		video("v240", 240, 15, 100),
	}

	c := Build(raw)

	if c.Video[0].FormatID != "v240" {
		t.Errorf("Expected format with a known height to outrank missing height, got '%s' first", c.Video[0].FormatID)
	}
}

func TestBuild_AudioRanking(t *testing.T) {
	raw := []model.FormatRecord{
		audio("mid", 128, 130),
		audio("high", 160, 165),
		audio("low", 48, 50),
	}

	c := Build(raw)

	expected := []string{"high", "mid", "low"}
	for i, id := range expected {
		if c.Audio[i].FormatID != id {
			t.Errorf("Expected audio rank %d to be '%s', got '%s'", i, id, c.Audio[i].FormatID)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	c := Build(nil)

	if !c.IsEmpty() {
		t.Error("Expected empty catalog for nil input")
	}
	if c.Discarded != 0 {
		t.Errorf("Expected 0 discarded records, got %d", c.Discarded)
	}
}

func TestCatalog_TopVideo(t *testing.T) {
	c := Build([]model.FormatRecord{
		video("v1", 1080, 30, 2000),
		video("v2", 720, 30, 1000),
	})

	if got := len(c.TopVideo(10)); got != 2 {
		t.Errorf("Expected TopVideo(10) to return 2 entries, got %d", got)
	}
	if got := len(c.TopVideo(1)); got != 1 {
		t.Errorf("Expected TopVideo(1) to return 1 entry, got %d", got)
	}
	if c.TopVideo(1)[0].FormatID != "v1" {
		t.Errorf("Expected TopVideo(1) to return 'v1', got '%s'", c.TopVideo(1)[0].FormatID)
	}
}
