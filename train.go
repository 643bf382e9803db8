package charlstm

import (
	"errors"
	"sync"

	"github.com/unixpickle/anydiff/anyseq"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anynet/anys2s"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// DefaultLearningRate is the learning rate used when a
// Trainer does not specify one.
const DefaultLearningRate = 0.001

// A Trainer trains a Model to predict the next character
// of each training sequence, using RMSProp on the average
// per-character cross-entropy.
//
// Training always runs the configured number of epochs to
// completion: no early stopping, no validation split.
type Trainer struct {
	Model   *Model
	Samples anys2s.SampleList

	// BatchSize is the SGD mini-batch size.
	BatchSize int

	// Epochs is the number of full passes over Samples.
	Epochs int

	// Rate is the learning rate.
	// If it is 0, DefaultLearningRate is used.
	Rate float64

	// StatusFunc, if non-nil, is called before every
	// mini-batch with the iteration index and the cost of
	// the previous mini-batch.
	StatusFunc func(iter int, cost anyvec.Numeric)
}

// Run trains the model for the configured number of
// epochs.
//
// If stopper is non-nil, closing it ends training early.
// Training and generation are strictly sequential: the
// model must not be used for anything else until Run
// returns.
func (t *Trainer) Run(stopper <-chan struct{}) error {
	if t.Samples.Len() == 0 {
		return errors.New("train model: no training sequences")
	}
	if t.Epochs <= 0 {
		return errors.New("train model: epoch count must be positive")
	}

	tr := &anys2s.Trainer{
		Func: func(s anyseq.Seq) anyseq.Seq {
			return anyrnn.Map(s, t.Model.Block())
		},
		Cost:    anynet.DotCost{},
		Params:  t.Model.Parameters(),
		Average: true,
	}

	done := make(chan struct{})
	var once sync.Once
	halt := func() {
		once.Do(func() {
			close(done)
		})
	}
	defer halt()
	if stopper != nil {
		go func() {
			select {
			case <-stopper:
				halt()
			case <-done:
			}
		}()
	}

	rate := t.Rate
	if rate == 0 {
		rate = DefaultLearningRate
	}
	target := t.Epochs * t.Samples.Len()
	var iter int
	sgd := &anysgd.SGD{
		Fetcher:     tr,
		Gradienter:  tr,
		Transformer: &anysgd.RMSProp{},
		Samples:     t.Samples,
		Rater:       anysgd.ConstRater(rate),
		BatchSize:   t.BatchSize,
	}
	sgd.StatusFunc = func(b anysgd.Batch) {
		if sgd.NumProcessed >= target {
			halt()
			return
		}
		if t.StatusFunc != nil {
			t.StatusFunc(iter, tr.LastCost)
		}
		iter++
	}
	if err := sgd.Run(done); err != nil {
		return essentials.AddCtx("train model", err)
	}
	return nil
}
