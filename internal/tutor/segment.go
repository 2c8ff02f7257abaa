package tutor

import (
	"fmt"
	"strings"
)

// SegmentType tags a lesson segment variant. Every variant must have a
// case in TeachingInstruction; an unknown tag is an error, not a
// silent skip.
type SegmentType string

const (
	SegmentScene      SegmentType = "scene"
	SegmentTheory     SegmentType = "theory"
	SegmentQuiz       SegmentType = "quiz"
	SegmentDiscussion SegmentType = "discussion"
	SegmentTask       SegmentType = "task"
)

// SceneLine is one spoken line of a narrated scene.
type SceneLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// QuizQuestion is one question of a quiz segment.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer,omitempty"`
}

// Segment is one unit of course content. Which fields are populated
// depends on Type.
type Segment struct {
	Type      SegmentType    `json:"type"`
	Title     string         `json:"title,omitempty"`
	Lines     []SceneLine    `json:"lines,omitempty"`     // scene
	Points    []string       `json:"points,omitempty"`    // theory
	Questions []QuizQuestion `json:"questions,omitempty"` // quiz
	Prompt    string         `json:"prompt,omitempty"`    // discussion
	Brief     string         `json:"brief,omitempty"`     // task
}

// TeachingInstruction serializes a lesson segment into the single
// synthetic user instruction for teaching mode. Output depends only on
// the arguments, so re-serializing the same segment is byte-identical.
func TeachingInstruction(seg Segment, weekNum int, weekTitle string, index, total int) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "We are in week %d (%q), segment %d of %d.\n\n", weekNum, weekTitle, index+1, total)

	switch seg.Type {
	case SegmentScene:
		fmt.Fprintf(&b, "Teach the following narrated scene titled %q. Walk the student through what happens and why it matters for the course:\n", seg.Title)
		for _, line := range seg.Lines {
			fmt.Fprintf(&b, "%s: %s\n", line.Speaker, line.Text)
		}
	case SegmentTheory:
		fmt.Fprintf(&b, "Teach the following theory block titled %q. Explain each point with a short example:\n", seg.Title)
		for _, p := range seg.Points {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	case SegmentQuiz:
		fmt.Fprintf(&b, "Walk the student through the quiz titled %q. For each question, present it, reason toward the answer, then confirm it:\n", seg.Title)
		for i, q := range seg.Questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
			for _, opt := range q.Options {
				fmt.Fprintf(&b, "   - %s\n", opt)
			}
			if q.Answer != "" {
				fmt.Fprintf(&b, "   Answer: %s\n", q.Answer)
			}
		}
	case SegmentDiscussion:
		fmt.Fprintf(&b, "Pose the following discussion prompt titled %q and outline two or three angles a student could take:\n%s\n", seg.Title, seg.Prompt)
	case SegmentTask:
		fmt.Fprintf(&b, "Present the following task brief titled %q. Explain what is expected and how to get started:\n%s\n", seg.Title, seg.Brief)
	default:
		return "", fmt.Errorf("unknown segment type %q", seg.Type)
	}

	return b.String(), nil
}
