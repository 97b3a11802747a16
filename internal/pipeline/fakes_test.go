package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/retry"
	"github.com/mosesab/viralytics/internal/services"
	"github.com/mosesab/viralytics/internal/textclass"
)

// fastPolicies shrinks the retry backoff so failure paths run in
// milliseconds. Restored on cleanup.
func fastPolicies(t *testing.T) {
	t.Helper()
	saved := []retry.Policy{trendFetchPolicy, trendSelectPolicy, searchPolicy, commentFetchPolicy, scriptPolicy, downloadPolicy}
	quick := func(p retry.Policy) retry.Policy {
		p.Initial = time.Millisecond
		p.Max = 5 * time.Millisecond
		return p
	}
	trendFetchPolicy = quick(trendFetchPolicy)
	trendSelectPolicy = quick(trendSelectPolicy)
	searchPolicy = quick(searchPolicy)
	commentFetchPolicy = quick(commentFetchPolicy)
	scriptPolicy = quick(scriptPolicy)
	downloadPolicy = quick(downloadPolicy)
	t.Cleanup(func() {
		trendFetchPolicy = saved[0]
		trendSelectPolicy = saved[1]
		searchPolicy = saved[2]
		commentFetchPolicy = saved[3]
		scriptPolicy = saved[4]
		downloadPolicy = saved[5]
	})
}

type fakeEvents struct {
	mu       sync.Mutex
	logs     []string
	errors   []string
	statuses []string
	complete int
}

func (f *fakeEvents) Log(_ context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, message)
}

func (f *fakeEvents) Error(_ context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, message)
}

func (f *fakeEvents) Status(_ context.Context, step, status string, _ int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, step+":"+status)
}

func (f *fakeEvents) WorkflowComplete(_ context.Context, _ int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.complete++
}

type fakeStore struct {
	mu sync.Mutex

	project *models.Project
	getErr  error

	paused    bool
	pausedSeq []bool
	pausedErr error

	savedTrends []models.SelectedTrend

	savedVideos []models.Video
	savedLabel  string
	insertErr   error

	unanalyzed []models.Video
	listErr    error

	appliedAll []models.AnalyzedVideo
	appliedTop map[string]bool
	applyErr   error

	topPending []models.Video

	scripts map[int64]string
	paths   map[int64]string
}

func (f *fakeStore) GetProject(_ context.Context, id int64) (*models.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.project != nil {
		return f.project, nil
	}
	return &models.Project{ID: id, Name: "test", ChannelDescription: "a test channel"}, nil
}

func (f *fakeStore) IsPaused(_ context.Context, _ int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pausedErr != nil {
		return false, f.pausedErr
	}
	if len(f.pausedSeq) > 0 {
		paused := f.pausedSeq[0]
		f.pausedSeq = f.pausedSeq[1:]
		return paused, nil
	}
	return f.paused, nil
}

func (f *fakeStore) SaveTrends(_ context.Context, _ int64, trends []models.SelectedTrend) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedTrends = append(f.savedTrends, trends...)
	return nil
}

func (f *fakeStore) SaveVideos(_ context.Context, _ int64, label string, videos []models.Video) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedLabel = label
	f.savedVideos = append(f.savedVideos, videos...)
	return len(videos), nil
}

func (f *fakeStore) UnanalyzedVideos(_ context.Context, _ int64) ([]models.Video, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.unanalyzed, nil
}

func (f *fakeStore) ApplyAnalysis(_ context.Context, _ int64, analyzed []models.AnalyzedVideo, topIDs map[string]bool) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appliedAll = analyzed
	f.appliedTop = topIDs
	return nil
}

func (f *fakeStore) TopUnscriptedVideos(_ context.Context, _ int64) ([]models.Video, error) {
	return f.topPending, nil
}

func (f *fakeStore) SaveScript(_ context.Context, videoDBID int64, script, localPath *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scripts == nil {
		f.scripts = make(map[int64]string)
		f.paths = make(map[int64]string)
	}
	if script != nil {
		f.scripts[videoDBID] = *script
	}
	if localPath != nil {
		f.paths[videoDBID] = *localPath
	}
	return nil
}

type fakeTrendsSource struct {
	mu       sync.Mutex
	calls    int
	daily    []string
	realtime []string
	err      error
}

func (f *fakeTrendsSource) Daily(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.daily, nil
}

func (f *fakeTrendsSource) Realtime(_ context.Context, _ int, _, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.realtime, nil
}

// fakeLLM replays canned responses in order; the last one repeats. A non-nil
// err wins over responses.
type fakeLLM struct {
	mu        sync.Mutex
	calls     int
	responses []string
	err       error
}

func (f *fakeLLM) Generate(_ context.Context, _ services.GenerateParams) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return []byte(f.responses[idx]), nil
}

// fakeSearcher returns errs[i] on call i (nil entry means success), then
// items once the errors are exhausted.
type fakeSearcher struct {
	mu    sync.Mutex
	calls int
	errs  []error
	items []services.RawVideo
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int) ([]services.RawVideo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return f.items, nil
}

// fakeComments returns the comments registered for a video id, or the video
// id itself as a single comment when nothing is registered.
type fakeComments struct {
	mu    sync.Mutex
	calls int
	byID  map[string][]string
	errs  map[string]error
}

func (f *fakeComments) Comments(_ context.Context, videoID string, _ int) ([]string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err := f.errs[videoID]; err != nil {
		return nil, err
	}
	if comments, ok := f.byID[videoID]; ok {
		return comments, nil
	}
	return []string{videoID}, nil
}

// fakeClassifier maps the first comment to a canned result.
type fakeClassifier struct {
	results map[string]textclass.Result
	err     error
}

func (f *fakeClassifier) Classify(_ context.Context, comments []string) (textclass.Result, error) {
	if f.err != nil {
		return textclass.Result{}, f.err
	}
	if len(comments) == 0 {
		return textclass.Result{Label: "Neutral", Emotion: "neutral"}, nil
	}
	return f.results[comments[0]], nil
}

type fakeMedia struct {
	mu    sync.Mutex
	calls int
	data  []byte
	err   error
}

func (f *fakeMedia) Fetch(_ context.Context, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}
