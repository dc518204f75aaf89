// Package grapheme segments text into extended grapheme clusters (UAX #29)
// and classifies single clusters.
//
// A cluster is what a user perceives as one character: "a", "é" written as
// 'e' plus a combining accent, or a flag emoji made of two regional
// indicators. Positions in internal/source are counted in clusters, so every
// lexer built on it reasons about clusters rather than bytes or runes.
package grapheme

import (
	"iter"

	"github.com/rivo/uniseg"
)

// Segments yields every cluster of text together with its starting byte
// offset, in order.
func Segments(text string) iter.Seq2[int, Cluster] {
	return func(yield func(int, Cluster) bool) {
		if text == "" {
			return
		}
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			from, _ := g.Positions()
			if !yield(from, Cluster(g.Str())) {
				return
			}
		}
	}
}

// Split returns the clusters of text in order.
func Split(text string) []Cluster {
	if text == "" {
		return nil
	}
	out := make([]Cluster, 0, len(text))
	for _, c := range Segments(text) {
		out = append(out, c)
	}
	return out
}

// Count returns the number of clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}
