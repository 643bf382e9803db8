package charlstm

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var m Model
	serializer.RegisterTypedDeserializer(m.SerializerType(), DeserializeModel)
}

// A Model predicts the next character of a text: a
// one-hot character embedding, an LSTM, and a projection
// back onto the vocabulary.
//
// The projection ends in a log-softmax, so each output is
// a vector of per-character log-probabilities.
//
// The model carries no recurrent state of its own.
// State lives in the anyrnn.State values produced by
// Block().Start, so the same weights serve batched
// training and single-sequence generation, and every
// generation run starts from an untouched state.
type Model struct {
	Vocab *Vocabulary
	Embed *anyrnn.LayerBlock
	LSTM  *anyrnn.LSTM
	Out   *anyrnn.LayerBlock
}

// NewModel creates a randomized Model for the given
// vocabulary.
func NewModel(c anyvec.Creator, vocab *Vocabulary, embeddingSize, stateSize int) *Model {
	// An FC applied to one-hot inputs is an embedding
	// lookup (plus a shared bias).
	return &Model{
		Vocab: vocab,
		Embed: &anyrnn.LayerBlock{
			Layer: anynet.NewFC(c, vocab.Size(), embeddingSize),
		},
		LSTM: anyrnn.NewLSTM(c, embeddingSize, stateSize),
		Out: &anyrnn.LayerBlock{
			Layer: anynet.Net{
				anynet.NewFC(c, stateSize, vocab.Size()),
				anynet.LogSoftmax,
			},
		},
	}
}

// DeserializeModel deserializes a Model.
func DeserializeModel(d []byte) (*Model, error) {
	var res Model
	err := serializer.DeserializeAny(d, &res.Vocab, &res.Embed, &res.LSTM, &res.Out)
	if err != nil {
		return nil, essentials.AddCtx("deserialize Model", err)
	}
	return &res, nil
}

// Block returns the model as a single recurrent block.
func (m *Model) Block() anyrnn.Block {
	return anyrnn.Stack{m.Embed, m.LSTM, m.Out}
}

// Creator returns the vector creator of the parameters.
func (m *Model) Creator() anyvec.Creator {
	return m.LSTM.InitLastOut.Vector.Creator()
}

// Parameters returns the parameters of the model.
func (m *Model) Parameters() []*anydiff.Var {
	var res []*anydiff.Var
	for _, p := range []anynet.Parameterizer{m.Embed, m.LSTM, m.Out} {
		res = append(res, p.Parameters()...)
	}
	return res
}

// Copy creates a structurally identical Model with a full
// copy of the weights and the vocabulary.
func (m *Model) Copy() (*Model, error) {
	data, err := m.Serialize()
	if err != nil {
		return nil, essentials.AddCtx("copy Model", err)
	}
	res, err := DeserializeModel(data)
	if err != nil {
		return nil, essentials.AddCtx("copy Model", err)
	}
	return res, nil
}

// SerializerType returns the unique ID used to serialize
// a Model with the serializer package.
func (m *Model) SerializerType() string {
	return "github.com/unixpickle/charlstm.Model"
}

// Serialize serializes the Model.
func (m *Model) Serialize() ([]byte, error) {
	return serializer.SerializeAny(m.Vocab, m.Embed, m.LSTM, m.Out)
}
