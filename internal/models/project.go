package models

import "time"

type Project struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	ChannelDescription string    `json:"channel_description"`
	IsPaused           bool      `json:"is_paused"`
	CreatedAt          time.Time `json:"created_at"`
}

type CreateProjectRequest struct {
	Name               string `json:"name"`
	ChannelDescription string `json:"channel_description"`
}

type TogglePauseRequest struct {
	IsPaused bool `json:"is_paused"`
}

// ProjectSummary partitions a project's videos by the top-pick flag: every
// video appears in exactly one of FetchedVideos or TopVideos.
type ProjectSummary struct {
	Trends        []Trend `json:"trends"`
	FetchedVideos []Video `json:"fetched_videos"`
	TopVideos     []Video `json:"top_videos"`
}
