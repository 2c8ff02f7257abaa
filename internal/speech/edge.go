package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/learnloop/courseai/internal/voices"
)

const (
	edgeWSURL        = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	edgeTrustedToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"
	edgeOrigin       = "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold"
	edgeOutputFormat = "audio-24khz-48kbitrate-mono-mp3"
)

// EdgeEngine synthesizes speech over the Edge read-aloud websocket
// endpoint. It is keyless: the endpoint accepts a fixed client token.
type EdgeEngine struct {
	dialer *websocket.Dialer
	wsURL  string
}

func NewEdgeEngine() *EdgeEngine {
	return &EdgeEngine{
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		wsURL:  edgeWSURL,
	}
}

func (e *EdgeEngine) Name() string { return "edge" }

// Synthesize opens a websocket, sends the audio config and one SSML
// message, and collects binary audio frames until turn.end.
func (e *EdgeEngine) Synthesize(ctx context.Context, text, speaker string) (*Clip, error) {
	voice := voices.Edge(speaker)

	connID := strings.ReplaceAll(uuid.NewString(), "-", "")
	u := fmt.Sprintf("%s?TrustedClientToken=%s&ConnectionId=%s", e.wsURL, edgeTrustedToken, connID)

	header := http.Header{}
	header.Set("Origin", edgeOrigin)

	conn, resp, err := e.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("edge dial (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("edge dial: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	ts := time.Now().UTC().Format(time.RFC1123)

	configMsg := fmt.Sprintf(
		"X-Timestamp:%s\r\nContent-Type:application/json; charset=utf-8\r\nPath:speech.config\r\n\r\n"+
			`{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},"outputFormat":"%s"}}}}`,
		ts, edgeOutputFormat,
	)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(configMsg)); err != nil {
		return nil, fmt.Errorf("edge send config: %w", err)
	}

	reqID := strings.ReplaceAll(uuid.NewString(), "-", "")
	ssmlMsg := fmt.Sprintf(
		"X-RequestId:%s\r\nContent-Type:application/ssml+xml\r\nX-Timestamp:%s\r\nPath:ssml\r\n\r\n%s",
		reqID, ts, buildSSML(text, voice),
	)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ssmlMsg)); err != nil {
		return nil, fmt.Errorf("edge send ssml: %w", err)
	}

	var audio bytes.Buffer
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("edge read: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			if payload, ok := edgeAudioPayload(data); ok {
				audio.Write(payload)
			}
		case websocket.TextMessage:
			if strings.Contains(string(data), "Path:turn.end") {
				return &Clip{Audio: audio.Bytes(), ContentType: "audio/mpeg"}, nil
			}
		}
	}
}

// edgeAudioPayload extracts the audio bytes from a binary frame. The
// frame starts with a big-endian uint16 header length, then the header
// block; only frames whose header carries the exact Path:audio line
// hold audio data. Matching the full header line matters: the service
// also sends Path:audio.metadata frames, whose JSON body must never
// end up in the clip.
func edgeAudioPayload(frame []byte) ([]byte, bool) {
	if len(frame) < 2 {
		return nil, false
	}
	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if len(frame) < 2+headerLen {
		return nil, false
	}
	header := frame[2 : 2+headerLen]
	if !bytes.Contains(header, []byte("Path:audio\r\n")) {
		return nil, false
	}
	return frame[2+headerLen:], true
}

func buildSSML(text string, v voices.EdgeVoice) string {
	rate := v.Rate
	if rate == "" {
		rate = "+0%"
	}
	pitch := v.Pitch
	if pitch == "" {
		pitch = "+0Hz"
	}
	return fmt.Sprintf(
		`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>`+
			`<voice name='%s'><prosody rate='%s' pitch='%s'>%s</prosody></voice></speak>`,
		v.Name, rate, pitch, html.EscapeString(text),
	)
}
