package queue

const TypeNarrationPrefetch = "narration:prefetch"

// NarrationPrefetchPayload asks the worker to synthesize one narration
// line into the cache ahead of playback.
type NarrationPrefetchPayload struct {
	Text      string `json:"text"`
	SpeakerID string `json:"speaker_id"`
}
