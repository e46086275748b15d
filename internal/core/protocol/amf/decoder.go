// If you are AI: This file implements the decode pass and the error recovery controller.
// A pass is single-shot: it consumes one buffer and produces a value graph
// plus one annotation per consumed byte.

package amf

import (
	"errors"
	"log/slog"
	"math"
)

// MaxNesting bounds how many composites may be open at once.
// AMF0 objects, AMF3 arrays and AMF3 objects all count.
const MaxNesting = 1024

// ErrTooDeep is raised when a composite would exceed MaxNesting.
var ErrTooDeep = errors.New("nesting limit exceeded")

// Result holds the immutable outputs of one decode pass.
type Result struct {
	Graph       *Graph
	Syntax      []SyntaxByte
	Strings     []string
	Mode        Mode // Encoding active when the pass ended
	Errored     bool
	ErrorOffset int // Offset where error mode began, -1 if none
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Decoder is the explicit state threaded through every decode call.
type Decoder struct {
	cur       *Cursor
	graph     *Graph
	syntax    []SyntaxByte
	strings   StringTable
	mode      Mode
	depth     int // AMF0 object depth, used for shading
	nesting   int // Open composites of either encoding
	isCommand bool
	errored   bool
	errOffset int
	result    *Result
	logger    *slog.Logger
}

// NewDecoder creates a decoder over buf.
// When isCommand is set the first byte selects the starting encoding.
func NewDecoder(buf []byte, isCommand bool, opts ...Option) *Decoder {
	d := &Decoder{
		cur:       NewCursor(buf),
		graph:     NewGraph(),
		syntax:    make([]SyntaxByte, 0, len(buf)),
		mode:      ModeAMF0,
		isCommand: isCommand,
		errOffset: -1,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode runs a complete pass over buf.
// It never fails: malformed input yields error-tagged output instead.
// For a command stream the selector byte is recorded as id 0, so the first
// decoded value has id 1.
func Decode(buf []byte, isCommand bool, opts ...Option) *Result {
	return NewDecoder(buf, isCommand, opts...).Run()
}

// Run decodes the whole buffer. Subsequent calls return the same result.
func (d *Decoder) Run() *Result {
	if d.result != nil {
		return d.result
	}
	if d.isCommand {
		d.readFormatSelector()
	}
	for d.cur.Remaining() > 0 {
		if d.errored {
			d.drain()
			break
		}
		var err error
		if d.mode == ModeAMF3 {
			_, err = d.readAMF3()
		} else {
			_, err = d.readAMF0()
		}
		if err != nil {
			d.fail(err)
		}
	}
	if d.errored {
		d.finalizePending()
		d.record(Descriptor{ID: SentinelID, Value: AMF0UndefinedValue{}})
	}
	d.result = &Result{
		Graph:       d.graph,
		Syntax:      d.syntax,
		Strings:     d.strings.Entries(),
		Mode:        d.mode,
		Errored:     d.errored,
		ErrorOffset: d.errOffset,
	}
	return d.result
}

// readFormatSelector consumes the leading byte of a command stream.
func (d *Decoder) readFormatSelector() {
	b, err := d.cur.ReadByte()
	if err != nil {
		return
	}
	id := d.graph.Reserve()
	d.emit(b, id, TagFormatSelector)
	if b != 0 {
		d.mode = ModeAMF3
	}
	d.record(Descriptor{ID: id, Value: FormatSelectorValue(b)})
	d.logger.Debug("format selector", "value", b, "mode", d.mode.String())
}

// fail switches the decoder into terminal error mode.
func (d *Decoder) fail(err error) {
	if d.errored {
		return
	}
	d.errored = true
	d.errOffset = d.cur.Offset()
	d.logger.Debug("entering error mode",
		"offset", d.errOffset,
		"remaining", d.cur.Remaining(),
		"exhausted", errors.Is(err, ErrExhausted),
		"error", err,
	)
}

// drain tags every remaining byte as an error owned by the sentinel.
func (d *Decoder) drain() {
	for {
		b, err := d.cur.ReadByte()
		if err != nil {
			return
		}
		d.syntax = append(d.syntax, SyntaxByte{Value: b, Owner: SentinelID, Tag: TagError})
	}
}

// finalizePending fills slots abandoned by an aborted read.
func (d *Decoder) finalizePending() {
	for _, id := range d.graph.Pending() {
		var v Value = AMF0UndefinedValue{}
		if d.mode == ModeAMF3 {
			v = AMF3UndefinedValue{}
		}
		d.record(Descriptor{ID: id, Value: v, Partial: true})
	}
}

// record stores a finished descriptor.
func (d *Decoder) record(desc Descriptor) {
	if err := d.graph.Fill(desc); err != nil {
		d.logger.Debug("record failed", "id", desc.ID, "error", err)
	}
}

// enter opens one composite level, failing past MaxNesting.
// Every successful enter must be paired with leave.
func (d *Decoder) enter() error {
	if d.nesting >= MaxNesting {
		return ErrTooDeep
	}
	d.nesting++
	return nil
}

// leave closes the level opened by enter.
func (d *Decoder) leave() {
	d.nesting--
}

// emit appends one annotation.
func (d *Decoder) emit(b byte, owner ValueID, tag Tag) {
	depth := uint8(min(d.depth, math.MaxUint8))
	d.syntax = append(d.syntax, SyntaxByte{Value: b, Owner: owner, Tag: tag, Depth: depth})
}

// readByte reads and annotates one byte.
func (d *Decoder) readByte(owner ValueID, tag Tag) (byte, error) {
	b, err := d.cur.ReadByte()
	if err != nil {
		return 0, err
	}
	d.emit(b, owner, tag)
	return b, nil
}

// readBytes reads and annotates exactly n bytes.
func (d *Decoder) readBytes(n int, owner ValueID, tag Tag) ([]byte, error) {
	b, err := d.cur.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	for _, v := range b {
		d.emit(v, owner, tag)
	}
	return b, nil
}

// readU29 decodes and annotates a U29.
func (d *Decoder) readU29(owner ValueID, tag Tag) (uint32, error) {
	return ReadU29(d.cur, func(b byte) { d.emit(b, owner, tag) })
}

// readDouble reads an 8-byte big-endian IEEE-754 double.
func (d *Decoder) readDouble(owner ValueID, tag Tag) (float64, error) {
	b, err := d.readBytes(8, owner, tag)
	if err != nil {
		return 0, err
	}
	return float64frombytes(b), nil
}
