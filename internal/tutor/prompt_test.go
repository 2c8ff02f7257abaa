package tutor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPromptLessonPrecedesWeek(t *testing.T) {
	prompt := SystemPrompt("the CAC payback segment", "", "week four covers unit economics")

	lessonIdx := strings.Index(prompt, "the CAC payback segment")
	weekIdx := strings.Index(prompt, "week four covers unit economics")
	require.NotEqual(t, -1, lessonIdx)
	require.NotEqual(t, -1, weekIdx)
	assert.Less(t, lessonIdx, weekIdx)
}

func TestSystemPromptOmitsEmptySections(t *testing.T) {
	prompt := SystemPrompt("", "", "")

	assert.NotContains(t, prompt, "Current lesson segment")
	assert.NotContains(t, prompt, "Course glossary")
	assert.NotContains(t, prompt, "This week's material")
}

func TestSystemPromptIncludesGlossary(t *testing.T) {
	prompt := SystemPrompt("", "CAC: customer acquisition cost", "")
	assert.Contains(t, prompt, "CAC: customer acquisition cost")
}

func TestLessonScopeInstruction(t *testing.T) {
	instr := LessonScopeInstruction(4)
	assert.Contains(t, instr, "week 4")
}
