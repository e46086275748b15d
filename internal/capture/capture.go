// If you are AI: This file turns RTMP and FLV captures into AMF payloads and
// decodes them concurrently.

package capture

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"amfscope/internal/core/protocol/amf"
	"amfscope/internal/core/protocol/flv"
	"amfscope/internal/core/protocol/rtmp"
)

// Payload is one AMF-bearing unit extracted from a capture.
type Payload struct {
	Index     int    // Position among extracted payloads
	Kind      string // Message or tag type name
	Timestamp uint32
	Offset    int64 // File offset for FLV tags, -1 for RTMP messages
	Command   bool  // First byte is a format selector
	Data      []byte
}

// Decoded pairs a payload with its decode result.
type Decoded struct {
	Payload
	Result *amf.Result
}

// Name returns the first top-level string, such as a command or event name.
func (d Decoded) Name() string {
	for _, id := range d.Result.Graph.Roots() {
		desc, _ := d.Result.Graph.Get(id)
		switch v := desc.Value.(type) {
		case amf.AMF0StringValue:
			return string(v)
		case amf.AMF3StringValue:
			return string(v)
		case amf.FormatSelectorValue, amf.AMF0SwitchValue:
			continue
		}
		return ""
	}
	return ""
}

// FromRTMP extracts the AMF messages of a client RTMP capture.
// Payloads read before a truncated chunk are returned with the error.
func FromRTMP(r io.Reader, opts ...rtmp.SessionOption) ([]Payload, error) {
	msgs, err := rtmp.ReadAMFMessages(rtmp.NewSession(r, opts...))
	payloads := make([]Payload, 0, len(msgs))
	for i, m := range msgs {
		payloads = append(payloads, Payload{
			Index:     i,
			Kind:      m.TypeName(),
			Timestamp: m.Timestamp,
			Offset:    -1,
			Command:   m.IsCommandStream(),
			Data:      m.Body,
		})
	}
	if err != nil {
		return payloads, fmt.Errorf("rtmp capture: %w", err)
	}
	return payloads, nil
}

// FromFLV extracts the script data tags of an FLV file.
func FromFLV(r io.Reader) ([]Payload, error) {
	tags, err := flv.ScriptTags(r)
	payloads := make([]Payload, 0, len(tags))
	for i, t := range tags {
		payloads = append(payloads, Payload{
			Index:     i,
			Kind:      flv.TagTypeName(t.Type),
			Timestamp: t.Timestamp,
			Offset:    t.Offset,
			Data:      t.Data,
		})
	}
	if err != nil {
		return payloads, fmt.Errorf("flv file: %w", err)
	}
	return payloads, nil
}

// DecodeAll decodes payloads with at most workers running at once.
// Results keep the payload order. Only context cancellation fails the call.
func DecodeAll(ctx context.Context, payloads []Payload, workers int, logger *slog.Logger) ([]Decoded, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := make([]Decoded, len(payloads))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, p := range payloads {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res := amf.Decode(p.Data, p.Command, amf.WithLogger(logger.With("payload", p.Index)))
			if res.Errored {
				logger.Warn("payload decoded with errors", "payload", p.Index, "kind", p.Kind, "offset", res.ErrorOffset)
			}
			out[i] = Decoded{Payload: p, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
