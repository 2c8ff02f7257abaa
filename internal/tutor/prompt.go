// Package tutor assembles the system and teaching instructions for the
// course AI tutor. All builders are deterministic: the same input
// always yields the same instruction text.
package tutor

import (
	"strconv"
	"strings"
)

// coursePersona is the tutor identity shared across chat modes.
const coursePersona = `You are Professor Hale, the AI tutor for "Brand Strategy & Finance", a university course that follows a fictional startup as it builds, prices, and defends a consumer brand. You explain marketing and finance concepts clearly, relate answers to the course storyline when possible, and keep responses concise and encouraging. If a student asks about something far outside the course, gently steer them back.`

// lecturerPersona is used for teaching mode, where the model narrates
// a lesson segment rather than answering questions.
const lecturerPersona = `You are Professor Hale delivering a lecture for "Brand Strategy & Finance". Teach the material you are given in a warm, engaging lecturer voice. Do not invent content beyond the provided material; expand on it only to clarify.`

// LecturerSystemPrompt returns the teaching-mode system instruction.
func LecturerSystemPrompt() string { return lecturerPersona }

// SystemPrompt assembles the tutoring-mode system instruction from the
// persona and whichever context strings the client supplied. The most
// specific context wins placement: lesson-level text precedes the
// glossary and the week-level summary.
func SystemPrompt(lessonContext, glossary, weekContext string) string {
	parts := []string{coursePersona}
	if lessonContext != "" {
		parts = append(parts, "Current lesson segment:\n"+lessonContext)
	}
	if glossary != "" {
		parts = append(parts, "Course glossary:\n"+glossary)
	}
	if weekContext != "" {
		parts = append(parts, "This week's material:\n"+weekContext)
	}
	return strings.Join(parts, "\n\n")
}

// LessonScopeInstruction restricts answers to the current lesson
// segment. Prepended to the system prompt by the lesson chat endpoint.
func LessonScopeInstruction(weekNum int) string {
	return "Answer only questions about the current lesson segment of week " +
		strconv.Itoa(weekNum) + ". If the student asks about other material, tell them to finish this segment first.\n\n"
}
