// Package replay records a match as a stream of frames, one per processed
// action or turn boundary, compressed with lz4. Each frame carries the state
// digest after the step, so a replay can be verified against a re-simulation.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

type FrameKind string

const (
	FrameStart   FrameKind = "start"
	FrameAction  FrameKind = "action"
	FrameAdvance FrameKind = "advance"
	FrameEnd     FrameKind = "end"
)

type Frame struct {
	Turn    int       `json:"turn"`
	Actor   string    `json:"actor,omitempty"`
	Kind    FrameKind `json:"kind"`
	Action  string    `json:"action,omitempty"`
	Message string    `json:"message,omitempty"`
	Digest  string    `json:"digest"`
}

// Recorder appends frames to an lz4-compressed JSON-lines file. Close must
// be called to flush the compression frame.
type Recorder struct {
	file *os.File
	zw   *lz4.Writer
	buf  *bufio.Writer
	enc  *json.Encoder
}

func NewRecorder(path string) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay file: %w", err)
	}
	zw := lz4.NewWriter(file)
	buf := bufio.NewWriter(zw)
	return &Recorder{
		file: file,
		zw:   zw,
		buf:  buf,
		enc:  json.NewEncoder(buf),
	}, nil
}

func (r *Recorder) Record(frame Frame) error {
	if err := r.enc.Encode(frame); err != nil {
		return fmt.Errorf("encode replay frame: %w", err)
	}
	return nil
}

func (r *Recorder) Close() error {
	if err := r.buf.Flush(); err != nil {
		r.zw.Close()
		r.file.Close()
		return fmt.Errorf("flush replay: %w", err)
	}
	if err := r.zw.Close(); err != nil {
		r.file.Close()
		return fmt.Errorf("close replay compressor: %w", err)
	}
	return r.file.Close()
}

// Read loads every frame from a recorded replay.
func Read(path string) ([]Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer file.Close()
	return decode(lz4.NewReader(file))
}

func decode(r io.Reader) ([]Frame, error) {
	var frames []Frame
	dec := json.NewDecoder(r)
	for {
		var frame Frame
		if err := dec.Decode(&frame); err != nil {
			if err == io.EOF {
				return frames, nil
			}
			return nil, fmt.Errorf("decode replay frame: %w", err)
		}
		frames = append(frames, frame)
	}
}

// Verify re-checks the digest chain of a replay against a sequence of
// digests produced by re-simulating the same match. It reports the index of
// the first divergent frame, or -1 when the chains agree.
func Verify(frames []Frame, digests []string) int {
	n := len(frames)
	if len(digests) < n {
		n = len(digests)
	}
	for i := 0; i < n; i++ {
		if frames[i].Digest != digests[i] {
			return i
		}
	}
	if len(frames) != len(digests) {
		return n
	}
	return -1
}
