// Command textgen trains a character-level LSTM on a
// text file and prints freshly generated text.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/charlstm"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/rip"
	"golang.org/x/exp/rand"
)

func main() {
	var dataPath string
	var seqLen int
	var embeddingSize int
	var stateSize int
	var bufferSize int
	var epochs int
	var batchSize int
	var rate float64
	var genLen int
	var seedText string
	var temperature float64
	var sampleSeed int64

	flag.StringVar(&dataPath, "data", "", "path to the training corpus")
	flag.IntVar(&seqLen, "seqlen", 100, "characters per training sequence")
	flag.IntVar(&embeddingSize, "embedding", 256, "character embedding size")
	flag.IntVar(&stateSize, "hidden", 1024, "LSTM state size")
	flag.IntVar(&bufferSize, "buffer", 10000, "shuffle buffer size")
	flag.IntVar(&epochs, "epochs", 20, "number of training epochs")
	flag.IntVar(&batchSize, "batch", 32, "SGD mini-batch size")
	flag.Float64Var(&rate, "rate", charlstm.DefaultLearningRate, "learning rate")
	flag.IntVar(&genLen, "chars", 1000, "number of characters to generate")
	flag.StringVar(&seedText, "seed", "CHEWIE", "seed text for generation")
	flag.Float64Var(&temperature, "temperature", 1, "sampling temperature")
	flag.Int64Var(&sampleSeed, "sampleseed", 0, "random seed for sampling (0 means time-based)")
	flag.Parse()

	if dataPath == "" {
		essentials.Die("Missing -data flag. See -help for more.")
	}

	log.Println("Loading corpus...")
	text, err := charlstm.ReadCorpus(dataPath)
	if err != nil {
		essentials.Die(err)
	}
	vocab := charlstm.NewVocabulary(text)
	if vocab.Size() == 0 {
		essentials.Die("empty corpus:", dataPath)
	}
	log.Printf("Vocabulary has %d characters.", vocab.Size())

	encoded, err := vocab.Encode(text)
	if err != nil {
		essentials.Die(err)
	}
	creator := anyvec32.CurrentCreator()
	samples := charlstm.NewSampleList(creator, encoded, vocab.Size(), seqLen)
	if samples.Len() == 0 {
		essentials.Die("corpus is shorter than one training sequence")
	}
	samples.Shuffle(bufferSize, rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
	log.Printf("Training on %d sequences.", samples.Len())

	model := charlstm.NewModel(creator, vocab, embeddingSize, stateSize)
	trainer := &charlstm.Trainer{
		Model:     model,
		Samples:   samples,
		BatchSize: batchSize,
		Epochs:    epochs,
		Rate:      rate,
		StatusFunc: func(iter int, cost anyvec.Numeric) {
			log.Printf("iter %d: cost=%v", iter, cost)
		},
	}
	log.Println("Press ctrl+c once to stop training early...")
	if err := trainer.Run(rip.NewRIP().Chan()); err != nil {
		essentials.Die(err)
	}

	sampler := &charlstm.Sampler{Model: model, Temperature: temperature}
	if sampleSeed != 0 {
		sampler.Rand = rand.New(rand.NewSource(uint64(sampleSeed)))
	}
	log.Println("Generating text...")
	res, err := sampler.Generate(seedText, genLen)
	if err != nil {
		essentials.Die(err)
	}
	fmt.Println(res)
}
