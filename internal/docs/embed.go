package docs

import (
	"hash/fnv"
	"strings"
	"unicode"
)

// Dimensions is the width of the embedding space.
const Dimensions = 768

// Embed produces a bag-of-words vector for text: each distinct word is
// hashed to a position and adds weight there, capped per position. It is a
// deliberately cheap stand-in for a real embedding model; with matched
// chunking on both sides it ranks lexical overlap well enough for retrieval.
func Embed(text string) []float32 {
	vec := make([]float32, Dimensions)
	for _, word := range tokenize(text) {
		pos := hashWord(word) % Dimensions
		vec[pos] += 0.1
		if vec[pos] > 1.0 {
			vec[pos] = 1.0
		}
	}
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func hashWord(word string) int {
	h := fnv.New32a()
	h.Write([]byte(word))
	return int(h.Sum32() & 0x7fffffff)
}
