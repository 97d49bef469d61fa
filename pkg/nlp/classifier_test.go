package nlp_test

import (
	"fmt"
	"sync"
	"testing"

	"ReservaGolang/pkg/nlp"
)

// fixtureCorpus builds a tiny corpus with token buckets that do not collide
// at dimension 100, so similarity scores are exact.
func fixtureCorpus(v *nlp.Vectorizer) *nlp.Corpus {
	return nlp.NewCorpusFromSeed(v, []nlp.TrainingExample{
		{Text: "alpha beta", Label: nlp.IntentBookRoom, Weight: 1.0},
		{Text: "gamma delta", Label: nlp.IntentProvideDates, Weight: 1.0},
		{Text: "epsilon", Label: nlp.IntentConfirm, Weight: 0.8},
	})
}

func TestClassifyExactMatch(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	corpus := fixtureCorpus(v)
	cl := nlp.NewClassifier(v, corpus, nlp.DefaultConfig())

	match := cl.Classify("alpha beta")
	if match == nil {
		t.Fatal("Classify returned nil for an exact corpus phrase")
	}
	if match.Label != nlp.IntentBookRoom {
		t.Errorf("label = %q, want %q", match.Label, nlp.IntentBookRoom)
	}
	if match.Confidence < 0.999 {
		t.Errorf("confidence = %v, want ~1.0", match.Confidence)
	}
	if match.Source != "vector" {
		t.Errorf("source = %q, want vector", match.Source)
	}
}

func TestClassifyWeightScalesConfidence(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	cl := nlp.NewClassifier(v, fixtureCorpus(v), nlp.DefaultConfig())

	match := cl.Classify("epsilon")
	if match == nil {
		t.Fatal("Classify returned nil")
	}
	if diff := match.Confidence - 0.8; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %v, want 0.8 (similarity 1.0 x weight 0.8)", match.Confidence)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	cl := nlp.NewClassifier(v, fixtureCorpus(v), nlp.DefaultConfig())

	if match := cl.Classify(""); match != nil {
		t.Errorf("Classify(empty) = %+v, want nil", match)
	}
	// "zeta" occupies a bucket none of the fixture tokens hash into.
	if match := cl.Classify("zeta"); match != nil {
		t.Errorf("Classify(unrelated) = %+v, want nil", match)
	}
}

func TestClassifyTieKeepsFirstSeen(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	corpus := nlp.NewCorpusFromSeed(v, []nlp.TrainingExample{
		{Text: "tau", Label: nlp.IntentReset, Weight: 1.0},
		{Text: "tau", Label: nlp.IntentStatus, Weight: 1.0},
	})
	cl := nlp.NewClassifier(v, corpus, nlp.DefaultConfig())

	for i := 0; i < 10; i++ {
		match := cl.Classify("tau")
		if match == nil {
			t.Fatal("Classify returned nil")
		}
		if match.Label != nlp.IntentReset {
			t.Fatalf("run %d: tie broke to %q, want first-seen %q", i, match.Label, nlp.IntentReset)
		}
	}
}

func TestHotAppendBecomesClassifiable(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	corpus := fixtureCorpus(v)
	cl := nlp.NewClassifier(v, corpus, nlp.DefaultConfig())

	if match := cl.Classify("kappa"); match != nil {
		t.Fatalf("kappa already classified before training: %+v", match)
	}

	corpus.AddExample("kappa", nlp.IntentReset, 1.0)

	match := cl.Classify("kappa")
	if match == nil {
		t.Fatal("Classify returned nil after AddExample")
	}
	if match.Label != nlp.IntentReset {
		t.Errorf("label = %q, want %q", match.Label, nlp.IntentReset)
	}
}

func TestConcurrentTrainAndClassify(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	corpus := fixtureCorpus(v)
	cl := nlp.NewClassifier(v, corpus, nlp.DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				corpus.AddExample(fmt.Sprintf("worker %d example %d", n, j), nlp.IntentGreeting, 1.0)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if match := cl.Classify("alpha beta"); match == nil || match.Label != nlp.IntentBookRoom {
					t.Error("established example stopped classifying during training")
					return
				}
			}
		}()
	}
	wg.Wait()

	if corpus.Len() < 8*50+3 {
		t.Errorf("corpus length = %d, want at least %d", corpus.Len(), 8*50+3)
	}
}

func TestSuggestRanksByCloseness(t *testing.T) {
	t.Parallel()

	v := nlp.NewVectorizer(100)
	cl := nlp.NewClassifier(v, fixtureCorpus(v), nlp.DefaultConfig())

	got := cl.Suggest("alpha", 2)
	if len(got) == 0 {
		t.Fatal("Suggest returned nothing")
	}
	if got[0] != "alpha beta" {
		t.Errorf("top suggestion = %q, want %q", got[0], "alpha beta")
	}
}
