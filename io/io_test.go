package io

import (
	"errors"
	"testing"

	"github.com/go-audio/wav"
)

// brokenFile fails every write.
type brokenFile struct{}

func (brokenFile) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func (brokenFile) Seek(int64, int) (int64, error) { return 0, nil }

func TestWavSinkKeepsFirstError(t *testing.T) {
	s := &wavSink{
		enc: wav.NewEncoder(brokenFile{}, samplerate, 16, 1, 1),
		pcm: make([]int, 64),
	}
	out := [][]float32{make([]float32, 64)}

	s.write(out, 64)
	if s.err == nil {
		t.Fatal("no error recorded from a failing writer")
	}
	first := s.err
	// Later blocks must not clobber the first error.
	s.write(out, 64)
	if s.err != first {
		t.Errorf("err = %v, want %v", s.err, first)
	}
}

func TestWavSinkNil(t *testing.T) {
	var s *wavSink
	s.write([][]float32{{0}}, 1)
	if err := s.close(); err != nil {
		t.Errorf("close = %v, want nil", err)
	}
}
