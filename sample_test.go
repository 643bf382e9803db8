package charlstm

import (
	"strings"
	"testing"

	"github.com/unixpickle/anyvec/anyvec32"
	"golang.org/x/exp/rand"
)

func testingModel() *Model {
	return NewModel(anyvec32.DefaultCreator{}, NewVocabulary("abc "), 4, 8)
}

func TestGenerateDeterminism(t *testing.T) {
	model := testingModel()
	s1 := &Sampler{Model: model, Rand: rand.New(rand.NewSource(42))}
	s2 := &Sampler{Model: model, Rand: rand.New(rand.NewSource(42))}
	out1, err := s1.Generate("ab", 30)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := s2.Generate("ab", 30)
	if err != nil {
		t.Fatal(err)
	}
	if out1 != out2 {
		t.Errorf("identical seeds gave %q and %q", out1, out2)
	}
}

func TestGenerateCopiedWeights(t *testing.T) {
	model := testingModel()
	copied, err := model.Copy()
	if err != nil {
		t.Fatal(err)
	}
	s1 := &Sampler{Model: model, Rand: rand.New(rand.NewSource(7))}
	s2 := &Sampler{Model: copied, Rand: rand.New(rand.NewSource(7))}
	out1, err := s1.Generate("cab", 25)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := s2.Generate("cab", 25)
	if err != nil {
		t.Fatal(err)
	}
	if out1 != out2 {
		t.Errorf("copied weights gave %q instead of %q", out2, out1)
	}
}

func TestGenerateOutput(t *testing.T) {
	model := testingModel()
	s := &Sampler{Model: model, Rand: rand.New(rand.NewSource(3))}
	out, err := s.Generate("abc", 50)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "abc") {
		t.Errorf("output %q does not start with the seed", out)
	}
	runes := []rune(out)
	if len(runes) != 3+50 {
		t.Errorf("expected 53 characters, but got %d", len(runes))
	}
	for _, r := range runes {
		if !strings.ContainsRune("abc ", r) {
			t.Errorf("character %q is not in the vocabulary", r)
		}
	}
}

func TestGenerateZeroLength(t *testing.T) {
	model := testingModel()
	s := &Sampler{Model: model}
	out, err := s.Generate("cab", 0)
	if err != nil {
		t.Fatal(err)
	}
	if out != "cab" {
		t.Errorf("expected %q, but got %q", "cab", out)
	}
}

func TestGenerateBadSeeds(t *testing.T) {
	model := testingModel()
	s := &Sampler{Model: model}
	if _, err := s.Generate("abz", 5); err == nil {
		t.Error("expected error for out-of-vocabulary seed")
	}
	if _, err := s.Generate("", 5); err == nil {
		t.Error("expected error for empty seed")
	}
	if _, err := s.Generate("ab", -1); err == nil {
		t.Error("expected error for negative length")
	}
}

func TestGenerateTemperature(t *testing.T) {
	model := testingModel()
	s := &Sampler{Model: model, Temperature: 0.5, Rand: rand.New(rand.NewSource(9))}
	out, err := s.Generate("a", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len([]rune(out)) != 21 {
		t.Errorf("expected 21 characters, but got %d", len([]rune(out)))
	}
}
