package solver

import (
	"testing"

	"github.com/waoai/confidis/internal/domain"
	"github.com/waoai/confidis/internal/equalify"
	"github.com/waoai/confidis/internal/graph"
)

func setup() (*graph.Store, domain.Params) {
	return graph.New(), domain.DefaultParams()
}

func TestWeightMonotoneAndNonNegative(t *testing.T) {
	const factor = 100.0
	prev := Weight(0, factor)
	if prev != 0 {
		t.Fatalf("expected zero weight at zero quality, got %v", prev)
	}
	for _, q := range []float64{0.1, 0.5, 0.9, 1.0} {
		w := Weight(q, factor)
		if w < prev {
			t.Fatalf("weight not monotone: q=%v gave %v < previous %v", q, w, prev)
		}
		if w < 0 {
			t.Fatalf("weight went negative at q=%v: %v", q, w)
		}
		prev = w
	}
}

func TestPluralityWinsWithoutTrust(t *testing.T) {
	store, params := setup()
	q := store.EnsureQuestion("q1")

	for i, name := range []string{"alice", "bob", "carol"} {
		src := store.EnsureSource(name, params.DefaultSourceQuality)
		ans := "blue"
		if i == 2 {
			ans = "red"
		}
		store.Submit(src, q, ans)
	}

	sv := New()
	sv.Solve(store, params)

	choice := sv.Choice(q)
	if choice.Answer != "blue" {
		t.Fatalf("expected plurality answer 'blue', got %q", choice.Answer)
	}
	if choice.Status != StatusClean {
		t.Fatalf("expected clean status for untrusted question, got %v", choice.Status)
	}
}

func TestTrustedSourceFreezesAnswer(t *testing.T) {
	store, params := setup()
	q := store.EnsureQuestion("q1")

	majority := store.EnsureSource("majority", params.DefaultSourceQuality)
	store.Submit(majority, q, "blue")
	minority := store.EnsureSource("minority", params.DefaultSourceQuality)
	store.Submit(minority, q, "blue")

	trusted := store.EnsureSource("oracle", params.DefaultSourceQuality)
	store.MarkTrusted(trusted, domain.TrustedQuality)
	store.Submit(trusted, q, "green")

	sv := New()
	sv.Solve(store, params)

	choice := sv.Choice(q)
	if choice.Answer != "green" {
		t.Fatalf("expected trusted source to override plurality, got %q", choice.Answer)
	}
	if choice.Status != StatusFrozen {
		t.Fatalf("expected frozen status once a trusted submission exists, got %v", choice.Status)
	}
	if choice.Confidence != 1.0 {
		t.Fatalf("expected full confidence on a frozen question, got %v", choice.Confidence)
	}
}

func TestDisagreeingTrustedSourcesBreakTieLexicographically(t *testing.T) {
	store, params := setup()
	q := store.EnsureQuestion("q1")

	first := store.EnsureSource("first", params.DefaultSourceQuality)
	store.MarkTrusted(first, domain.TrustedQuality)
	store.Submit(first, q, "zeta")

	second := store.EnsureSource("second", params.DefaultSourceQuality)
	store.MarkTrusted(second, domain.TrustedQuality)
	store.Submit(second, q, "alpha")

	sv := New()
	sv.Solve(store, params)

	if got := sv.Choice(q).Answer; got != "alpha" {
		t.Fatalf("expected lexicographically-first trusted token 'alpha', got %q", got)
	}
}

func TestUnreliableSourceLosesInfluenceOverIterations(t *testing.T) {
	store, params := setup()

	reliable := store.EnsureSource("reliable", params.DefaultSourceQuality)
	unreliable := store.EnsureSource("unreliable", params.DefaultSourceQuality)

	for i := 0; i < 10; i++ {
		qid := "q" + string(rune('a'+i))
		q := store.EnsureQuestion(qid)
		store.Submit(reliable, q, "truth")
		store.Submit(unreliable, q, "lie")
	}

	sv := New()
	sv.Solve(store, params)

	if got := store.Quality(reliable); got <= store.Quality(unreliable) {
		t.Fatalf("expected reliable source to end with higher quality: reliable=%v unreliable=%v",
			got, store.Quality(unreliable))
	}
	for _, qid := range []string{"qa", "qb", "qc"} {
		q := store.EnsureQuestion(qid)
		if got := sv.Choice(q).Answer; got != "truth" {
			t.Fatalf("expected reliable source's answer to win for %s, got %q", qid, got)
		}
	}
}

func TestNoSubmissionsYieldsEmptyChoice(t *testing.T) {
	store, params := setup()
	q := store.EnsureQuestion("lonely")

	sv := New()
	sv.Solve(store, params)

	choice := sv.Choice(q)
	if choice.Answer != "" {
		t.Fatalf("expected no answer for a question with no submissions, got %q", choice.Answer)
	}
	if choice.Status != StatusDirty {
		t.Fatalf("expected a submission-less question to remain dirty, got %v", choice.Status)
	}
}

func TestAllAnswersSortedByConfidenceDescending(t *testing.T) {
	store, params := setup()
	q := store.EnsureQuestion("q1")

	for i, name := range []string{"a", "b", "c", "d"} {
		src := store.EnsureSource(name, params.DefaultSourceQuality)
		ans := "blue"
		if i >= 3 {
			ans = "red"
		}
		store.Submit(src, q, ans)
	}

	sv := New()
	sv.Solve(store, params)

	pairs, err := AllAnswers(store, equalify.Exact{}, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected two distinct answers reported, got %d", len(pairs))
	}
	if pairs[0].Confidence < pairs[1].Confidence {
		t.Fatalf("expected descending confidence order, got %+v", pairs)
	}
}

func TestAllAnswersClustersEquivalentNumericTokens(t *testing.T) {
	store, _ := setup()
	q := store.EnsureQuestion("q1")

	s1 := store.EnsureSource("s1", 0.9)
	s2 := store.EnsureSource("s2", 0.8)
	s3 := store.EnsureSource("s3", 0.1)
	store.Submit(s1, q, "10.0")
	store.Submit(s2, q, "10") // same numeric value as "10.0", different token text
	store.Submit(s3, q, "99.0")

	eq := equalify.Numeric{MaxDistance: 1000}
	pairs, err := AllAnswers(store, eq, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected two clusters, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].Answer != "10" {
		t.Fatalf("expected the two-source cluster to rank first, got %+v", pairs)
	}
}
