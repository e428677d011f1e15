package retrieval

import (
	"math"
	"strings"
	"unicode"
)

type sparseVec map[int]float64

// tfidfIndex is rebuilt from scratch on every change; reference sets are
// small.
type tfidfIndex struct {
	vocab map[string]int
	idf   []float64
	docs  []sparseVec
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func buildTFIDFIndex(texts []string) *tfidfIndex {
	idx := &tfidfIndex{vocab: make(map[string]int)}
	if len(texts) == 0 {
		return idx
	}

	tokenized := make([][]string, len(texts))
	for i, t := range texts {
		tokenized[i] = tokenize(t)
		for _, tok := range tokenized[i] {
			if _, ok := idx.vocab[tok]; !ok {
				idx.vocab[tok] = len(idx.vocab)
			}
		}
	}

	df := make([]int, len(idx.vocab))
	idx.docs = make([]sparseVec, len(texts))
	for i, tokens := range tokenized {
		vec := make(sparseVec)
		for _, tok := range tokens {
			vec[idx.vocab[tok]]++
		}
		for term := range vec {
			df[term]++
		}
		idx.docs[i] = vec
	}

	n := float64(len(texts))
	idx.idf = make([]float64, len(idx.vocab))
	for i, d := range df {
		if d > 0 {
			idx.idf[i] = math.Log(n/float64(d)) + 1.0
		}
	}
	for _, vec := range idx.docs {
		for term := range vec {
			vec[term] *= idx.idf[term]
		}
	}
	return idx
}

func (idx *tfidfIndex) queryVec(query string) sparseVec {
	vec := make(sparseVec)
	for _, tok := range tokenize(query) {
		if term, ok := idx.vocab[tok]; ok {
			vec[term] += idx.idf[term]
		}
	}
	return vec
}

func cosineSim(a, b sparseVec) float64 {
	var dot, na, nb float64
	for k, v := range a {
		na += v * v
		if w, ok := b[k]; ok {
			dot += v * w
		}
	}
	for _, w := range b {
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
