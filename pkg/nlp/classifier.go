package nlp

import "sort"

// Classifier scores an utterance against every corpus entry by cosine
// similarity. Confidence is the raw similarity scaled by the winning entry's
// weight. Ties keep the earliest corpus entry, so classification is stable
// across identical runs.
type Classifier struct {
	vectorizer *Vectorizer
	corpus     *Corpus
	threshold  float64
}

func NewClassifier(vectorizer *Vectorizer, corpus *Corpus, cfg Config) *Classifier {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultConfig().Threshold
	}
	return &Classifier{
		vectorizer: vectorizer,
		corpus:     corpus,
		threshold:  threshold,
	}
}

// Classify returns nil when no entry beats the similarity threshold.
func (cl *Classifier) Classify(text string) *IntentMatch {
	query := cl.vectorizer.Vectorize(text)

	var (
		best      *TrainingExample
		bestScore float64
	)
	entries := cl.corpus.snapshot()
	for i := range entries {
		score := cosineSimilarity(query, entries[i].vector)
		if score > bestScore {
			bestScore = score
			best = &entries[i]
		}
	}

	if best == nil || bestScore <= cl.threshold {
		return nil
	}

	return &IntentMatch{
		Label:      best.Label,
		Confidence: bestScore * best.Weight,
		Source:     "vector",
		Matched:    best.Text,
	}
}

// Suggest returns the texts of the closest corpus examples regardless of the
// threshold, used to build clarification prompts after a miss.
func (cl *Classifier) Suggest(text string, limit int) []string {
	query := cl.vectorizer.Vectorize(text)

	type scored struct {
		text  string
		score float64
	}
	entries := cl.corpus.snapshot()
	ranked := make([]scored, 0, len(entries))
	for i := range entries {
		score := cosineSimilarity(query, entries[i].vector)
		if score > 0 {
			ranked = append(ranked, scored{text: entries[i].Text, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]string, 0, limit)
	for _, r := range ranked[:limit] {
		out = append(out, r.text)
	}
	return out
}
