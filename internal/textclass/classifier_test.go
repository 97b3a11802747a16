package textclass

import (
	"context"
	"sync"
	"testing"
)

func TestPolarityLabel(t *testing.T) {
	tests := []struct {
		name     string
		avg      float64
		expected string
	}{
		{"clearly positive", 0.367, "Positive"},
		{"just above threshold", 0.11, "Positive"},
		{"exactly at positive threshold", 0.1, "Neutral"},
		{"zero", 0.0, "Neutral"},
		{"exactly at negative threshold", -0.1, "Neutral"},
		{"just below threshold", -0.11, "Negative"},
		{"clearly negative", -0.8, "Negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PolarityLabel(tc.avg); got != tc.expected {
				t.Errorf("PolarityLabel(%v) = %q, want %q", tc.avg, got, tc.expected)
			}
		})
	}
}

func TestDominantEmotion(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"empty text", "", "neutral"},
		{"no lexicon hits", "the quick brown fox", "neutral"},
		{"joy dominates", "so funny I laugh every time, happy happy", "joy"},
		{"fear dominates", "scary and creepy, total nightmare", "fear"},
		{"tie breaks alphabetically", "angry nightmare", "anger"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DominantEmotion(tc.text); got != tc.expected {
				t.Errorf("DominantEmotion(%q) = %q, want %q", tc.text, got, tc.expected)
			}
		})
	}
}

func TestClassify_NoComments(t *testing.T) {
	r := NewClassifier().Classify(nil)

	if r.Compound != 0 {
		t.Errorf("Expected compound 0, got %v", r.Compound)
	}
	if r.Label != "Neutral" {
		t.Errorf("Expected Neutral, got %q", r.Label)
	}
	if r.Emotion != "neutral" {
		t.Errorf("Expected neutral emotion, got %q", r.Emotion)
	}
}

func TestClassify_PositiveComments(t *testing.T) {
	r := NewClassifier().Classify([]string{
		"I love this, absolutely amazing",
		"this is great, so wonderful",
	})

	if r.Compound <= 0.1 {
		t.Errorf("Expected compound > 0.1 for glowing comments, got %v", r.Compound)
	}
	if r.Label != "Positive" {
		t.Errorf("Expected Positive, got %q", r.Label)
	}
}

func TestPool_ClassifiesConcurrently(t *testing.T) {
	pool := NewPool(2, 8)
	defer pool.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := pool.Classify(context.Background(), []string{"scary and creepy"})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if r.Emotion != "fear" {
				t.Errorf("Expected fear, got %q", r.Emotion)
			}
		}()
	}
	wg.Wait()
}

func TestPool_CanceledContext(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The worker may still pick the task up first; only a returned error is
	// required to mention the cancellation.
	if _, err := pool.Classify(ctx, nil); err != nil && err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
