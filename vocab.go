// Package charlstm trains a character-level LSTM on a
// text corpus and generates new text from it, one
// character at a time.
package charlstm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var v Vocabulary
	serializer.RegisterTypedDeserializer(v.SerializerType(), DeserializeVocabulary)
}

// ReadCorpus reads an entire text file, dropping any
// bytes which do not form valid UTF-8.
func ReadCorpus(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", essentials.AddCtx("read corpus", err)
	}
	return string(bytes.ToValidUTF8(data, nil)), nil
}

// A Vocabulary is a sorted set of distinct characters
// together with a bijection between those characters and
// the IDs 0 through Size()-1.
//
// IDs are assigned by sorted character order, so the same
// text always yields the same mapping.
type Vocabulary struct {
	runes []rune
	ids   map[rune]int
}

// NewVocabulary builds a Vocabulary from the distinct
// characters of text.
//
// An empty text yields a Vocabulary of size 0, which is
// useless for training; callers should treat that as a
// configuration error.
func NewVocabulary(text string) *Vocabulary {
	seen := map[rune]bool{}
	var runes []rune
	for _, r := range text {
		if !seen[r] {
			seen[r] = true
			runes = append(runes, r)
		}
	}
	sort.Slice(runes, func(i, j int) bool {
		return runes[i] < runes[j]
	})
	ids := make(map[rune]int, len(runes))
	for i, r := range runes {
		ids[r] = i
	}
	return &Vocabulary{runes: runes, ids: ids}
}

// DeserializeVocabulary deserializes a Vocabulary.
func DeserializeVocabulary(d []byte) (*Vocabulary, error) {
	if !utf8.Valid(d) {
		return nil, errors.New("deserialize Vocabulary: invalid UTF-8")
	}
	return NewVocabulary(string(d)), nil
}

// Size returns the number of distinct characters.
func (v *Vocabulary) Size() int {
	return len(v.runes)
}

// Encode maps every character of s to its ID.
//
// It fails if s contains a character which is not in the
// vocabulary.
func (v *Vocabulary) Encode(s string) ([]int, error) {
	res := make([]int, 0, len(s))
	for _, r := range s {
		id, ok := v.ids[r]
		if !ok {
			return nil, fmt.Errorf("encode text: unknown character %q", r)
		}
		res = append(res, id)
	}
	return res, nil
}

// Rune returns the character for an ID.
func (v *Vocabulary) Rune(id int) rune {
	if id < 0 || id >= len(v.runes) {
		panic(fmt.Sprintf("character ID out of range: %d", id))
	}
	return v.runes[id]
}

// Decode maps a sequence of IDs back to a string.
// It is the inverse of Encode.
func (v *Vocabulary) Decode(ids []int) string {
	res := make([]rune, len(ids))
	for i, id := range ids {
		res[i] = v.Rune(id)
	}
	return string(res)
}

// SerializerType returns the unique ID used to serialize
// a Vocabulary with the serializer package.
func (v *Vocabulary) SerializerType() string {
	return "github.com/unixpickle/charlstm.Vocabulary"
}

// Serialize serializes the Vocabulary.
func (v *Vocabulary) Serialize() ([]byte, error) {
	return []byte(string(v.runes)), nil
}
