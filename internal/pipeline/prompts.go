package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/mosesab/viralytics/internal/models"
)

const trendSystemInstruction = `You are a social media growth strategist. You pick trending topics that a
specific creator can realistically turn into high-performing short videos.
Only ever answer with JSON matching the requested schema.`

const scriptSystemInstruction = `You are a short-form video scriptwriter. You write punchy voiceover scripts
of 60 to 90 seconds that react to an existing viral video. Only ever answer
with JSON matching the requested schema.`

var trendSelectionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"selected_trends": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"keyword": {
						Type:        genai.TypeString,
						Description: "The trending search term, verbatim from the candidate list",
					},
					"justification": {
						Type:        genai.TypeString,
						Description: "One or two sentences on why this trend fits the channel",
					},
					"suggested_video_title": {
						Type:        genai.TypeString,
						Description: "A clickable video title for this trend",
					},
					"long_term_potential": {
						Type:        genai.TypeBoolean,
						Description: "Whether the topic will stay relevant beyond this week",
					},
				},
				Required: []string{"keyword", "justification", "suggested_video_title", "long_term_potential"},
			},
		},
	},
	Required: []string{"selected_trends"},
}

var scriptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"script": {
			Type:        genai.TypeString,
			Description: "The full voiceover script, plain text, no stage directions",
		},
	},
	Required: []string{"script"},
}

func buildTrendPrompt(channelDescription string, candidates []string) string {
	var b strings.Builder
	b.WriteString("Here is a description of my channel:\n")
	b.WriteString(channelDescription)
	b.WriteString("\n\nHere are the search terms currently trending:\n")
	for _, c := range candidates {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString("\nPick the 3 to 5 trends my channel is best positioned to cover. ")
	b.WriteString("Use the keywords exactly as listed. For each pick explain the fit, ")
	b.WriteString("suggest a video title, and judge its long-term potential.")
	return b.String()
}

func buildScriptPrompt(video models.Video, comments []string) string {
	var b strings.Builder
	b.WriteString("Write a reaction script for a short video responding to this viral post.\n\n")
	fmt.Fprintf(&b, "Original video by @%s:\n%s\n", video.Author, video.Description)
	if len(comments) > 0 {
		b.WriteString("\nWhat viewers are saying:\n")
		for _, c := range comments {
			b.WriteString("- ")
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nThe script should hook in the first two seconds, reference the ")
	b.WriteString("audience reaction where it helps, and end with a question that ")
	b.WriteString("invites comments.")
	return b.String()
}
