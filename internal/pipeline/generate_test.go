package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/services"
)

const scriptResponse = `{"script": "Hook. Body. Question?"}`

func newTestGenerator(t *testing.T, llm *fakeLLM, comments *fakeComments, media *fakeMedia) (*Generator, *fakeEvents) {
	t.Helper()
	events := &fakeEvents{}
	gen := NewGenerator(llm, comments, media, events, GeneratorConfig{
		DownloadsDir: t.TempDir(),
		MaxComments:  20,
	})
	return gen, events
}

func TestProcessOneBuildsPackage(t *testing.T) {
	llm := &fakeLLM{responses: []string{scriptResponse}}
	media := &fakeMedia{data: []byte("video-bytes")}
	gen, _ := newTestGenerator(t, llm, &fakeComments{}, media)

	video := models.Video{
		ID:          7,
		VideoID:     "v1",
		Author:      "alice",
		Description: "a viral clip",
		VideoURL:    "https://cdn.example.com/v1.mp4",
		CoverURL:    "https://cdn.example.com/v1.jpg",
		Stats:       models.VideoStats{"playCount": 1000},
	}
	pkg, err := gen.ProcessOne(context.Background(), 42, video)
	if err != nil {
		t.Fatalf("ProcessOne() error = %v", err)
	}

	if pkg.VideoDBID != 7 || pkg.VideoID != "v1" || pkg.Author != "alice" {
		t.Errorf("package identity wrong: %+v", pkg)
	}
	if pkg.GeneratedScript == nil || *pkg.GeneratedScript != "Hook. Body. Question?" {
		t.Errorf("GeneratedScript = %v, want the generated text", pkg.GeneratedScript)
	}
	if pkg.LocalFilePath == nil {
		t.Fatal("LocalFilePath = nil, want a downloaded file")
	}
	data, err := os.ReadFile(*pkg.LocalFilePath)
	if err != nil {
		t.Fatalf("downloaded file unreadable: %v", err)
	}
	if string(data) != "video-bytes" {
		t.Errorf("downloaded file holds %q, want the fetched bytes", data)
	}
	if filepath.Base(filepath.Dir(*pkg.LocalFilePath)) != "project_42" {
		t.Errorf("media not stored under project directory: %s", *pkg.LocalFilePath)
	}
}

func TestProcessOneDownloadFailureDegrades(t *testing.T) {
	fastPolicies(t)
	llm := &fakeLLM{responses: []string{scriptResponse}}
	media := &fakeMedia{err: &services.HTTPStatusError{Code: 403}}
	gen, events := newTestGenerator(t, llm, &fakeComments{}, media)

	pkg, err := gen.ProcessOne(context.Background(), 1, models.Video{
		ID:       1,
		VideoID:  "v1",
		VideoURL: "https://cdn.example.com/v1.mp4",
	})
	if err != nil {
		t.Fatalf("ProcessOne() error = %v, download failure must not fail the package", err)
	}
	if pkg.LocalFilePath != nil {
		t.Errorf("LocalFilePath = %v, want nil after failed download", *pkg.LocalFilePath)
	}
	if pkg.GeneratedScript == nil {
		t.Error("script should survive a failed download")
	}
	if media.calls != 1 {
		t.Errorf("media fetched %d times, want 1 (no retry on 4xx)", media.calls)
	}
	if len(events.errors) == 0 {
		t.Error("failed download should be reported")
	}
}

func TestDownloadMediaSkipsMissingURL(t *testing.T) {
	media := &fakeMedia{data: []byte("x")}
	gen, _ := newTestGenerator(t, &fakeLLM{}, &fakeComments{}, media)

	if path := gen.DownloadMedia(context.Background(), 1, models.Video{VideoID: "v1"}); path != nil {
		t.Errorf("DownloadMedia() = %v, want nil for a missing URL", *path)
	}
	if media.calls != 0 {
		t.Errorf("media fetched %d times, want 0", media.calls)
	}
}

func TestProcessOneScriptFailurePropagates(t *testing.T) {
	fastPolicies(t)
	llm := &fakeLLM{err: errors.New("model overloaded")}
	gen, _ := newTestGenerator(t, llm, &fakeComments{}, &fakeMedia{})

	_, err := gen.ProcessOne(context.Background(), 1, models.Video{ID: 1, VideoID: "v1"})
	if err == nil {
		t.Fatal("ProcessOne() expected error when script generation fails")
	}
	if llm.calls != 3 {
		t.Errorf("model called %d times, want 3", llm.calls)
	}
}

func TestGenerateScriptRetriesMalformed(t *testing.T) {
	fastPolicies(t)
	llm := &fakeLLM{responses: []string{`{"script": ""}`, scriptResponse}}
	gen, _ := newTestGenerator(t, llm, &fakeComments{}, &fakeMedia{})

	script, err := gen.GenerateScript(context.Background(), models.Video{VideoID: "v1"}, nil)
	if err != nil {
		t.Fatalf("GenerateScript() error = %v", err)
	}
	if llm.calls != 2 {
		t.Errorf("model called %d times, want 2", llm.calls)
	}
	if script != "Hook. Body. Question?" {
		t.Errorf("GenerateScript() = %q", script)
	}
}

func TestProcessAllDropsFailedVideos(t *testing.T) {
	fastPolicies(t)
	comments := &fakeComments{errs: map[string]error{
		"bad": &services.HTTPStatusError{Code: 404},
	}}
	llm := &fakeLLM{responses: []string{scriptResponse}}
	gen, events := newTestGenerator(t, llm, comments, &fakeMedia{data: []byte("x")})

	videos := []models.Video{
		{ID: 1, VideoID: "a"},
		{ID: 2, VideoID: "bad"},
		{ID: 3, VideoID: "c"},
	}
	packages := gen.ProcessAll(context.Background(), 1, videos)

	if len(packages) != 2 {
		t.Fatalf("got %d packages, want 2", len(packages))
	}
	if packages[0].VideoID != "a" || packages[1].VideoID != "c" {
		t.Errorf("survivors out of order: %s, %s", packages[0].VideoID, packages[1].VideoID)
	}
	if len(events.errors) == 0 {
		t.Error("dropped video should be reported")
	}
}

func TestWriteManifestEmptyRun(t *testing.T) {
	gen, _ := newTestGenerator(t, &fakeLLM{}, &fakeComments{}, &fakeMedia{})

	path, err := gen.WriteManifest(5, nil)
	if err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}
	if filepath.Base(path) != ManifestName {
		t.Errorf("manifest at %s, want file named %s", path, ManifestName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("manifest unreadable: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty manifest = %q, want []", data)
	}
}

func TestManifestHidesDatabaseID(t *testing.T) {
	script := "s"
	gen, _ := newTestGenerator(t, &fakeLLM{}, &fakeComments{}, &fakeMedia{})

	path, err := gen.WriteManifest(5, []Package{{
		VideoDBID:       99,
		VideoID:         "v1",
		Author:          "alice",
		Stats:           models.VideoStats{"playCount": 10},
		GeneratedScript: &script,
	}})
	if err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("manifest unreadable: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if _, ok := entries[0]["VideoDBID"]; ok {
		t.Error("manifest leaks the internal database id")
	}
	if entries[0]["video_id"] != "v1" {
		t.Errorf("video_id = %v, want v1", entries[0]["video_id"])
	}
	if entries[0]["local_file_path"] != nil {
		t.Errorf("local_file_path = %v, want null", entries[0]["local_file_path"])
	}
}
