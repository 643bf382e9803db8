package charlstm

import (
	"strings"
	"testing"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
)

func TestTrainerRun(t *testing.T) {
	text := strings.Repeat("abcab cabca ", 8)
	vocab := NewVocabulary(text)
	ids, err := vocab.Encode(text)
	if err != nil {
		t.Fatal(err)
	}
	c := anyvec32.DefaultCreator{}
	samples := NewSampleList(c, ids, vocab.Size(), 3)
	model := NewModel(c, vocab, 4, 8)

	var iters int
	trainer := &Trainer{
		Model:     model,
		Samples:   samples,
		BatchSize: 4,
		Epochs:    2,
		StatusFunc: func(iter int, cost anyvec.Numeric) {
			iters++
		},
	}
	if err := trainer.Run(nil); err != nil {
		t.Fatal(err)
	}
	if iters == 0 {
		t.Error("status function was never called")
	}

	// Training must leave the model usable for sampling.
	s := &Sampler{Model: model}
	if _, err := s.Generate("ab", 5); err != nil {
		t.Fatal(err)
	}
}

func TestTrainerStopper(t *testing.T) {
	text := strings.Repeat("abcab cabca ", 8)
	vocab := NewVocabulary(text)
	ids, err := vocab.Encode(text)
	if err != nil {
		t.Fatal(err)
	}
	c := anyvec32.DefaultCreator{}
	samples := NewSampleList(c, ids, vocab.Size(), 3)
	model := NewModel(c, vocab, 4, 8)

	stop := make(chan struct{})
	close(stop)
	trainer := &Trainer{
		Model:     model,
		Samples:   samples,
		BatchSize: 4,
		Epochs:    1000,
	}
	if err := trainer.Run(stop); err != nil {
		t.Fatal(err)
	}
}

func TestTrainerEmpty(t *testing.T) {
	c := anyvec32.DefaultCreator{}
	vocab := NewVocabulary("ab")
	samples := NewSampleList(c, nil, vocab.Size(), 3)
	trainer := &Trainer{
		Model:   NewModel(c, vocab, 2, 4),
		Samples: samples,
		Epochs:  1,
	}
	if err := trainer.Run(nil); err == nil {
		t.Error("expected error for empty sample list")
	}
}
