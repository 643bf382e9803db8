package charlstm

import (
	"github.com/unixpickle/anynet/anys2s"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
	"golang.org/x/exp/rand"
)

// A SampleList windows an ID-encoded corpus into
// supervised next-character training sequences.
//
// Each window covers seqLen+1 consecutive IDs.
// The input sequence is the window without its last ID,
// and the desired output is the window without its first
// ID, so the desired output at each timestep is the input
// at the next timestep.
// Windows do not overlap, and a trailing chunk shorter
// than seqLen+1 is dropped.
//
// Samples are materialized lazily: the list only stores
// window offsets, and GetSample builds the one-hot
// vectors for a window on demand.
type SampleList struct {
	creator   anyvec.Creator
	ids       []int
	starts    []int
	seqLen    int
	vocabSize int
}

// NewSampleList windows the ID-encoded text ids into
// sequences of seqLen characters.
func NewSampleList(c anyvec.Creator, ids []int, vocabSize, seqLen int) *SampleList {
	if seqLen <= 0 {
		panic("sequence length must be positive")
	}
	var starts []int
	for i := 0; i+seqLen+1 <= len(ids); i += seqLen + 1 {
		starts = append(starts, i)
	}
	return &SampleList{
		creator:   c,
		ids:       ids,
		starts:    starts,
		seqLen:    seqLen,
		vocabSize: vocabSize,
	}
}

// Len returns the number of windows.
func (s *SampleList) Len() int {
	return len(s.starts)
}

// Swap swaps two windows.
func (s *SampleList) Swap(i, j int) {
	s.starts[i], s.starts[j] = s.starts[j], s.starts[i]
}

// Slice generates a shallow copy of a subset of the list.
func (s *SampleList) Slice(i, j int) anysgd.SampleList {
	res := *s
	res.starts = append([]int{}, s.starts[i:j]...)
	return &res
}

// Creator returns the creator used for sample vectors.
func (s *SampleList) Creator() anyvec.Creator {
	return s.creator
}

// GetSample materializes a window as a pair of one-hot
// vector sequences.
func (s *SampleList) GetSample(i int) (*anys2s.Sample, error) {
	chunk := s.ids[s.starts[i] : s.starts[i]+s.seqLen+1]
	sample := &anys2s.Sample{
		Input:  make([]anyvec.Vector, s.seqLen),
		Output: make([]anyvec.Vector, s.seqLen),
	}
	for t := 0; t < s.seqLen; t++ {
		sample.Input[t] = oneHot(s.creator, s.vocabSize, chunk[t])
		sample.Output[t] = oneHot(s.creator, s.vocabSize, chunk[t+1])
	}
	return sample, nil
}

// Shuffle reorders the windows the way a streaming
// shuffle over the corpus would: windows pass through a
// buffer of at most bufferSize entries and leave it in
// random order.
//
// A bufferSize of Len() or more amounts to a full
// shuffle, while a bufferSize of 1 or less keeps the
// corpus order.
func (s *SampleList) Shuffle(bufferSize int, r *rand.Rand) {
	if bufferSize <= 1 {
		return
	}
	src := append([]int{}, s.starts...)
	out := s.starts[:0]
	var buf []int
	for _, x := range src {
		if len(buf) < bufferSize {
			buf = append(buf, x)
			continue
		}
		k := r.Intn(len(buf))
		out = append(out, buf[k])
		buf[k] = x
	}
	for len(buf) > 0 {
		k := r.Intn(len(buf))
		out = append(out, buf[k])
		buf[k] = buf[len(buf)-1]
		buf = buf[:len(buf)-1]
	}
	s.starts = out
}

func oneHot(c anyvec.Creator, size, id int) anyvec.Vector {
	data := make([]float64, size)
	data[id] = 1
	return c.MakeVectorData(c.MakeNumericList(data))
}
