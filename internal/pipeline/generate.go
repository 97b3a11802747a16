package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/retry"
	"github.com/mosesab/viralytics/internal/services"
)

// ManifestName is the compilation manifest written next to the downloaded
// media of a project.
const ManifestName = "video_compilation_data.json"

// GeneratorConfig holds the knobs for the generate stage.
type GeneratorConfig struct {
	DownloadsDir string
	MaxComments  int
}

// Generator turns each top pick into a content package: a reaction script,
// the downloaded source media, and a manifest entry.
type Generator struct {
	llm      TextGenerator
	comments CommentProvider
	media    MediaFetcher
	events   Events
	cfg      GeneratorConfig
}

// Package is one manifest entry. VideoDBID stays internal; the manifest is
// keyed by the provider's video id.
type Package struct {
	VideoDBID       int64             `json:"-"`
	VideoID         string            `json:"video_id"`
	Author          string            `json:"author"`
	Description     string            `json:"description"`
	Stats           models.VideoStats `json:"stats"`
	CoverURL        string            `json:"cover_image_url"`
	GeneratedScript *string           `json:"generated_script"`
	LocalFilePath   *string           `json:"local_file_path"`
}

var scriptPolicy = retry.Policy{
	Attempts:   3,
	Initial:    2 * time.Second,
	Max:        15 * time.Second,
	Multiplier: 2,
}

var downloadPolicy = retry.Policy{
	Attempts:   3,
	Initial:    2 * time.Second,
	Max:        10 * time.Second,
	Multiplier: 2,
}

func NewGenerator(llm TextGenerator, comments CommentProvider, media MediaFetcher, events Events, cfg GeneratorConfig) *Generator {
	return &Generator{llm: llm, comments: comments, media: media, events: events, cfg: cfg}
}

// GenerateScript writes a reaction script for one video. Malformed model
// output is retried; a final failure propagates so the caller can drop the
// video instead of shipping a blank script.
func (g *Generator) GenerateScript(ctx context.Context, video models.Video, comments []string) (string, error) {
	params := services.GenerateParams{
		Prompt:            buildScriptPrompt(video, comments),
		SystemInstruction: scriptSystemInstruction,
		Schema:            scriptSchema,
	}

	return retry.Do(ctx, scriptPolicy, func() (string, error) {
		raw, err := g.llm.Generate(ctx, params)
		if err != nil {
			return "", err
		}
		var out struct {
			Script string `json:"script"`
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", &MalformedResponseError{Cause: err}
		}
		if out.Script == "" {
			return "", &MalformedResponseError{Cause: fmt.Errorf("script is empty")}
		}
		return out.Script, nil
	})
}

// DownloadMedia fetches the video's media and stores it under the project's
// download directory. Download trouble degrades to a nil path; the package
// still ships with its script.
func (g *Generator) DownloadMedia(ctx context.Context, projectID int64, video models.Video) *string {
	if video.VideoURL == "" {
		g.events.Log(ctx, fmt.Sprintf("Video %s has no media URL, skipping download.", video.VideoID))
		return nil
	}

	data, err := retry.Do(ctx, downloadPolicy, func() ([]byte, error) {
		data, err := g.media.Fetch(ctx, video.VideoURL)
		if err != nil {
			var statusErr *services.HTTPStatusError
			if errors.As(err, &statusErr) && !statusErr.Transient() {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		g.events.Error(ctx, fmt.Sprintf("Download failed for video %s: %v", video.VideoID, err))
		return nil
	}

	dir := g.projectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		g.events.Error(ctx, fmt.Sprintf("Could not create download directory for video %s: %v", video.VideoID, err))
		return nil
	}
	path := filepath.Join(dir, video.VideoID+".mp4")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		g.events.Error(ctx, fmt.Sprintf("Could not write media file for video %s: %v", video.VideoID, err))
		return nil
	}
	return &path
}

// ProcessOne builds the full content package for one video. Script failure
// fails the video; download failure only costs the local file.
func (g *Generator) ProcessOne(ctx context.Context, projectID int64, video models.Video) (Package, error) {
	comments, err := retry.Do(ctx, commentFetchPolicy, func() ([]string, error) {
		comments, err := g.comments.Comments(ctx, video.VideoID, g.cfg.MaxComments)
		if err != nil {
			var statusErr *services.HTTPStatusError
			if errors.As(err, &statusErr) && !statusErr.Transient() {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return comments, nil
	})
	if err != nil {
		return Package{}, fmt.Errorf("comments for video %s: %w", video.VideoID, err)
	}

	script, err := g.GenerateScript(ctx, video, comments)
	if err != nil {
		return Package{}, fmt.Errorf("script for video %s: %w", video.VideoID, err)
	}

	localPath := g.DownloadMedia(ctx, projectID, video)

	return Package{
		VideoDBID:       video.ID,
		VideoID:         video.VideoID,
		Author:          video.Author,
		Description:     video.Description,
		Stats:           video.Stats,
		CoverURL:        video.CoverURL,
		GeneratedScript: &script,
		LocalFilePath:   localPath,
	}, nil
}

// ProcessAll packages every video concurrently. A failed video is logged and
// dropped; the survivors come back in input order.
func (g *Generator) ProcessAll(ctx context.Context, projectID int64, videos []models.Video) []Package {
	results := make([]*Package, len(videos))

	var wg sync.WaitGroup
	for i, video := range videos {
		wg.Add(1)
		go func(i int, video models.Video) {
			defer wg.Done()
			pkg, err := g.ProcessOne(ctx, projectID, video)
			if err != nil {
				g.events.Error(ctx, fmt.Sprintf("Skipping video %s: %v", video.VideoID, err))
				return
			}
			results[i] = &pkg
		}(i, video)
	}
	wg.Wait()

	packages := make([]Package, 0, len(videos))
	for _, r := range results {
		if r != nil {
			packages = append(packages, *r)
		}
	}
	return packages
}

// WriteManifest writes the compilation manifest for a project. An empty run
// still writes a manifest holding an empty list.
func (g *Generator) WriteManifest(projectID int64, packages []Package) (string, error) {
	if packages == nil {
		packages = []Package{}
	}

	dir := g.projectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(packages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

func (g *Generator) projectDir(projectID int64) string {
	return filepath.Join(g.cfg.DownloadsDir, fmt.Sprintf("project_%d", projectID))
}
