package similarity

// Ratio is the top-level convenience wrapper spec.md §5 calls for: the
// Indel-normalized similarity between a and b, in [0,1]. It is the
// building block PartialRatio slides across windows of the longer
// sequence.
func Ratio(a, b Seq, c Cutoff) (float64, bool) {
	return IndelNormalizedSimilarity(a, b, c)
}
