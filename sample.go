package charlstm

import (
	"errors"
	"fmt"
	"time"

	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// A Sampler generates text from a trained Model by
// drawing one character at a time from the model's
// next-character distribution and feeding each drawn
// character back in as input.
type Sampler struct {
	Model *Model

	// Temperature divides the log-probabilities before
	// sampling, so values below 1 sharpen the distribution
	// and values above 1 flatten it.
	// If it is 0, a temperature of 1 is used.
	Temperature float64

	// Rand is the random source for the categorical draws.
	// If it is nil, a time-seeded source is used, and
	// repeated runs produce different text.
	Rand *rand.Rand
}

// Generate feeds seed to the model and then samples n
// characters, returning seed followed by the samples.
//
// Every character of seed must be in the model's
// vocabulary, and seed may not be empty; either failure
// occurs before any character is generated.
//
// Each call starts from a fresh recurrent state, so
// previous runs cannot leak into this one.
func (s *Sampler) Generate(seed string, n int) (string, error) {
	if seed == "" {
		return "", errors.New("generate text: empty seed")
	}
	if n < 0 {
		return "", fmt.Errorf("generate text: negative length %d", n)
	}
	seedIDs, err := s.Model.Vocab.Encode(seed)
	if err != nil {
		return "", essentials.AddCtx("generate text", err)
	}
	if n == 0 {
		return seed, nil
	}

	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	c := s.Model.Creator()
	vocab := s.Model.Vocab
	block := s.Model.Block()

	state := block.Start(1)
	var last anyrnn.Res
	step := func(id int) {
		last = block.Step(state, oneHot(c, vocab.Size(), id))
		state = last.State()
	}
	for _, id := range seedIDs {
		step(id)
	}

	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		id := s.draw(last.Output(), rng)
		out = append(out, vocab.Rune(id))
		if i+1 < n {
			step(id)
		}
	}
	return seed + string(out), nil
}

// draw samples a character ID from a vector of
// log-probabilities.
func (s *Sampler) draw(logProbs anyvec.Vector, rng *rand.Rand) int {
	v := logProbs.Copy()
	temp := s.Temperature
	if temp == 0 {
		temp = 1
	}
	if temp != 1 {
		v.Scale(v.Creator().MakeNumeric(1 / temp))
		anyvec.LogSoftmax(v, v.Len())
	}
	anyvec.Exp(v)
	w := sampleuv.NewWeighted(vectorData(v), rng)
	id, _ := w.Take()
	return id
}

func vectorData(v anyvec.Vector) []float64 {
	switch data := v.Data().(type) {
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	case []float64:
		return data
	default:
		panic(fmt.Sprintf("unsupported numeric list: %T", data))
	}
}
