package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnloop/courseai/internal/llm"
)

func TestTeachSegmentStreams(t *testing.T) {
	gw := &fakeGateway{chunks: []llm.StreamChunk{
		{Content: "Welcome to week two."},
		{Done: true},
	}}
	h := NewTeachHandler(gw, "gpt-4o-mini")

	rec := postJSON(t, h.TeachSegment, `{
		"segment":{"type":"theory","title":"Unit Economics","points":["CAC","LTV"]},
		"weekNum":2,
		"weekTitle":"Pricing",
		"segmentIndex":0,
		"totalSegments":4
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data: {"content":"Welcome to week two."}`)
	assert.Contains(t, rec.Body.String(), "data: [DONE]")

	require.Len(t, gw.lastReq.Messages, 2)
	assert.Equal(t, "system", gw.lastReq.Messages[0].Role)
	assert.Contains(t, gw.lastReq.Messages[1].Content, "Unit Economics")
	assert.Contains(t, gw.lastReq.Messages[1].Content, "week 2")
}

func TestTeachSegmentNotConfigured(t *testing.T) {
	gw := &fakeGateway{streamErr: errors.New(`provider "anthropic" not configured`)}
	h := NewTeachHandler(gw, "gpt-4o-mini")

	rec := postJSON(t, h.TeachSegment, `{"segment":{"type":"theory","title":"T"},"weekNum":1}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "text generation unavailable")
	assert.NotContains(t, rec.Body.String(), "anthropic")
}

func TestTeachSegmentUnknownType(t *testing.T) {
	h := NewTeachHandler(&fakeGateway{}, "gpt-4o-mini")

	rec := postJSON(t, h.TeachSegment, `{"segment":{"type":"karaoke"},"weekNum":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
