package speech

import (
	"context"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnloop/courseai/internal/voices"
)

func binaryFrame(header string, payload []byte) []byte {
	frame := make([]byte, 2, 2+len(header)+len(payload))
	binary.BigEndian.PutUint16(frame, uint16(len(header)))
	frame = append(frame, header...)
	return append(frame, payload...)
}

func binaryAudioFrame(payload []byte) []byte {
	return binaryFrame("X-RequestId:test\r\nContent-Type:audio/mpeg\r\nPath:audio\r\n", payload)
}

func binaryMetadataFrame() []byte {
	return binaryFrame(
		"X-RequestId:test\r\nContent-Type:application/json; charset=utf-8\r\nPath:audio.metadata\r\n",
		[]byte(`{"Metadata":[{"Type":"WordBoundary"}]}`),
	)
}

func TestEdgeAudioPayload(t *testing.T) {
	payload, ok := edgeAudioPayload(binaryAudioFrame([]byte("mp3data")))
	require.True(t, ok)
	assert.Equal(t, []byte("mp3data"), payload)

	_, ok = edgeAudioPayload([]byte{0x00})
	assert.False(t, ok)

	// Metadata frames share the Path:audio prefix; their JSON body must
	// not be mistaken for audio.
	_, ok = edgeAudioPayload(binaryMetadataFrame())
	assert.False(t, ok)
}

func TestBuildSSMLEscapesText(t *testing.T) {
	ssml := buildSSML(`price < cost & "margin"`, voices.EdgeVoice{Name: "en-US-GuyNeural"})

	assert.Contains(t, ssml, "en-US-GuyNeural")
	assert.Contains(t, ssml, "price &lt; cost &amp;")
	assert.NotContains(t, ssml, `price < cost`)
	assert.Contains(t, ssml, "rate='+0%'")
}

func TestEdgeEngineSynthesize(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("ConnectionId"))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		// speech.config
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(msg), "Path:speech.config")

		// ssml
		_, msg, err = conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(msg), "Path:ssml")
		assert.Contains(t, string(msg), "hello class")

		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, binaryAudioFrame([]byte("part1"))))
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, binaryMetadataFrame()))
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, binaryAudioFrame([]byte("part2"))))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("X-RequestId:test\r\nPath:turn.end\r\n\r\n{}")))
	}))
	defer srv.Close()

	engine := NewEdgeEngine()
	engine.wsURL = "ws" + strings.TrimPrefix(srv.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clip, err := engine.Synthesize(ctx, "hello class", "professor")
	require.NoError(t, err)
	assert.Equal(t, []byte("part1part2"), clip.Audio)
	assert.Equal(t, "audio/mpeg", clip.ContentType)
}
