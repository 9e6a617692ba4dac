package replay

import (
	"path/filepath"
	"testing"
)

func TestRecordAndReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.replay")

	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	frames := []Frame{
		{Turn: 1, Kind: FrameStart, Digest: "aaa"},
		{Turn: 1, Actor: "p1", Kind: FrameAction, Action: "move_ship", Message: "Scout sailed to (3,4)", Digest: "bbb"},
		{Turn: 2, Kind: FrameAdvance, Digest: "ccc"},
		{Turn: 2, Kind: FrameEnd, Message: "Anne wins", Digest: "ddd"},
	}
	for _, frame := range frames {
		if err := rec.Record(frame); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(frames) {
		t.Fatalf("read %d frames, wrote %d", len(got), len(frames))
	}
	for i := range frames {
		if got[i] != frames[i] {
			t.Fatalf("frame %d round trip mismatch: %+v vs %+v", i, got[i], frames[i])
		}
	}
}

func TestReadMissingFileErrors(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.replay")); err == nil {
		t.Fatalf("expected an error for a missing replay")
	}
}

func TestVerify(t *testing.T) {
	frames := []Frame{{Digest: "a"}, {Digest: "b"}, {Digest: "c"}}

	if idx := Verify(frames, []string{"a", "b", "c"}); idx != -1 {
		t.Fatalf("matching chains flagged at %d", idx)
	}
	if idx := Verify(frames, []string{"a", "x", "c"}); idx != 1 {
		t.Fatalf("divergence at 1 reported as %d", idx)
	}
	if idx := Verify(frames, []string{"a", "b"}); idx != 2 {
		t.Fatalf("truncated chain should flag index 2, got %d", idx)
	}
}
