package knowledge

import (
	"math"
	"regexp"
	"strings"
)

// wordRun matches maximal runs of word characters; runs shorter than two
// characters are dropped in tokenize.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)

func tokenize(text string) []string {
	runs := wordRun.FindAllString(strings.ToLower(text), -1)
	tokens := runs[:0]
	for _, r := range runs {
		if len([]rune(r)) >= 2 {
			tokens = append(tokens, r)
		}
	}
	return tokens
}

type vector map[string]float64

// vectorize fits TF-IDF over corpus with smoothed idf, ln((1+n)/(1+df)) + 1,
// and returns one L2-normalised vector per document.
func vectorize(corpus []string) []vector {
	counts := make([]map[string]int, len(corpus))
	df := make(map[string]int)

	for i, doc := range corpus {
		counts[i] = make(map[string]int)
		for _, tok := range tokenize(doc) {
			counts[i][tok]++
		}
		for tok := range counts[i] {
			df[tok]++
		}
	}

	n := float64(len(corpus))
	idf := make(map[string]float64, len(df))
	for tok, d := range df {
		idf[tok] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([]vector, len(corpus))
	for i, c := range counts {
		v := make(vector, len(c))
		var norm float64
		for tok, cnt := range c {
			w := float64(cnt) * idf[tok]
			v[tok] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for tok := range v {
				v[tok] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors
}

// cosine assumes both vectors are already normalised.
func cosine(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for tok, w := range a {
		dot += w * b[tok]
	}
	return dot
}
