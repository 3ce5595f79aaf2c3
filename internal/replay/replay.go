// Package replay records the input of a run as zstd-compressed JSON lines
// and plays it back through a fresh Session. The simulation is
// deterministic for a fixed level and frame sequence, so a replay reproduces
// the run exactly.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"lostnaut/internal/game"
	"lostnaut/internal/input"
	"lostnaut/internal/level"
)

// Version is the file format written by this package.
const Version = 1

var (
	ErrVersion       = errors.New("replay: unsupported version")
	ErrLevelMismatch = errors.New("replay: recorded on a different level")
	ErrNoHeader      = errors.New("replay: missing header")
)

// Header is the first line of every replay.
type Header struct {
	Version int       `json:"version"`
	Level   string    `json:"level"`
	Name    string    `json:"name,omitempty"`
	Policy  string    `json:"policy,omitempty"`
	Started time.Time `json:"started"`
}

// NewHeader describes a recording of l.
func NewHeader(l *level.Level) Header {
	return Header{
		Version: Version,
		Level:   l.Digest(),
		Name:    l.Name,
		Started: time.Now().UTC(),
	}
}

// Frame is one simulation step.
type Frame struct {
	DT    float32
	Input input.Snapshot
}

// Trailer closes a replay with the state digest the run ended on.
type Trailer struct {
	Frames int    `json:"frames"`
	Digest string `json:"digest"`
}

// line is one JSONL record after the header. Exactly one of In and End is
// set.
type line struct {
	DT  float32         `json:"dt,omitempty"`
	In  *input.Snapshot `json:"in,omitempty"`
	End *Trailer        `json:"end,omitempty"`
}

// Recorder writes a replay. It satisfies game.Recorder.
type Recorder struct {
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
	frames int
}

// Create starts a replay file at path, creating parent directories.
func Create(path string, h Header) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewRecorder writes the header to w and returns a recorder for the frames.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	if h.Version == 0 {
		h.Version = Version
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	r := &Recorder{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if err := r.writeJSON(h); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return r, nil
}

func (r *Recorder) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

func (r *Recorder) Record(dt float32, in input.Snapshot) error {
	r.frames++
	return r.writeJSON(line{DT: dt, In: &in})
}

// Frames is the number of frames recorded so far.
func (r *Recorder) Frames() int { return r.frames }

// Close writes the trailer when final is non-nil and flushes everything.
func (r *Recorder) Close(final *game.State) error {
	var err error
	if final != nil {
		err = r.writeJSON(line{End: &Trailer{Frames: r.frames, Digest: final.Digest()}})
	}
	if ferr := r.w.Flush(); err == nil {
		err = ferr
	}
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader reads a replay frame by frame.
type Reader struct {
	Header  Header
	Trailer *Trailer

	f   *os.File
	dec *zstd.Decoder
	sc  *bufio.Scanner
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewReader reads and checks the header.
func NewReader(src io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	r := &Reader{dec: dec, sc: sc}
	if !sc.Scan() {
		dec.Close()
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("replay: read header: %w", err)
		}
		return nil, ErrNoHeader
	}
	if err := json.Unmarshal(sc.Bytes(), &r.Header); err != nil {
		dec.Close()
		return nil, fmt.Errorf("replay: decode header: %w", err)
	}
	if r.Header.Version != Version {
		dec.Close()
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Header.Version)
	}
	return r, nil
}

// Next returns the next frame, or io.EOF after the last one. The trailer,
// if present, is available once Next has returned io.EOF.
func (r *Reader) Next() (Frame, error) {
	for r.sc.Scan() {
		raw := r.sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ln line
		if err := json.Unmarshal(raw, &ln); err != nil {
			return Frame{}, fmt.Errorf("replay: decode frame: %w", err)
		}
		if ln.End != nil {
			r.Trailer = ln.End
			return Frame{}, io.EOF
		}
		if ln.In == nil {
			return Frame{}, fmt.Errorf("replay: frame without input")
		}
		return Frame{DT: ln.DT, Input: *ln.In}, nil
	}
	if err := r.sc.Err(); err != nil {
		return Frame{}, fmt.Errorf("replay: read frame: %w", err)
	}
	return Frame{}, io.EOF
}

func (r *Reader) Close() error {
	r.dec.Close()
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}

// Result is the outcome of playing a replay back.
type Result struct {
	State  game.State
	Frames int
	// Match is set when the replay has a trailer: whether the final state
	// digest equals the recorded one.
	Match *bool
}

// Run plays r back on l and returns the final state. The level must be the
// one the replay was recorded on.
func Run(l *level.Level, r *Reader, opts game.Options) (Result, error) {
	if r.Header.Level != l.Digest() {
		return Result{}, ErrLevelMismatch
	}
	s := game.NewSession(l, opts)

	var res Result
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		s.Step(f.DT, f.Input)
		res.Frames++
	}

	res.State = s.State()
	if r.Trailer != nil {
		ok := r.Trailer.Digest == res.State.Digest()
		res.Match = &ok
	}
	return res, nil
}
