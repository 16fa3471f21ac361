// Package solver implements the fixed-point belief resolution algorithm:
// the mutual recursion between a source's quality and the answers its
// questions currently resolve to. It holds no state of its own beyond the
// per-question status cache; the graph itself lives in internal/graph.
package solver

import (
	"math"
	"sort"

	"github.com/waoai/confidis/internal/domain"
	"github.com/waoai/confidis/internal/equalify"
	"github.com/waoai/confidis/internal/graph"
)

// clusterEpsilon is the distance below which two answer tokens are
// considered the same cluster by AllAnswers. It is deliberately small: the
// default exact equalifier only ever reports distance 0 or 1, so this
// threshold only matters once a host configures a fuzzy comparison method.
const clusterEpsilon = 1e-9

// maxIterations bounds the fixed-point loop. 50 passes is far beyond what
// any observed graph needs to converge; it exists only to guarantee
// termination on a pathological or cyclic weighting configuration.
const maxIterations = 50

// Status is a question's position in the Dirty -> Clean/Frozen state
// machine described in SPEC_FULL.md §4.3.
type Status int

const (
	// StatusDirty questions have never been solved, or were invalidated by
	// a mutation since their last solve.
	StatusDirty Status = iota
	// StatusClean questions have a solved chosen answer that is still
	// subject to revision on a future solve.
	StatusClean
	// StatusFrozen questions contain at least one trusted submission; their
	// chosen answer is pinned and never reconsidered.
	StatusFrozen
)

// Choice is a question's resolved answer together with the bookkeeping the
// solver needs to detect convergence and the caller needs to report
// confidence.
type Choice struct {
	Answer     string
	Confidence float64
	Status     Status
}

// Solver owns the per-question solved-state cache. A Solver is created once
// per engine instance and reused across solves; Solve is idempotent when
// called against an unchanged, non-dirty graph.
type Solver struct {
	choices map[int]Choice
}

// New returns a solver with no cached choices.
func New() *Solver {
	return &Solver{choices: make(map[int]Choice)}
}

// Solve recomputes the fixed point over the whole graph: alternately
// re-choosing an answer for every non-frozen question under the current
// source qualities, then re-deriving every non-trusted source's quality
// from the answers just chosen, until a pass leaves every question's chosen
// answer unchanged, or maxIterations is reached. It mutates source quality
// in store as a side effect; it does not mutate the graph's submissions.
func (s *Solver) Solve(store *graph.Store, params domain.Params) {
	for iter := 0; iter < maxIterations; iter++ {
		changed := s.choosePass(store, params)
		s.qualityPass(store, params)
		if !changed {
			break
		}
	}
	store.ClearDirty()
}

// choosePass recomputes the chosen answer for every non-frozen question and
// reports whether any question's chosen answer differs from its previous
// value (freezing status changes count as a change too, so a newly frozen
// question always triggers one further quality pass).
func (s *Solver) choosePass(store *graph.Store, params domain.Params) bool {
	changed := false
	for _, q := range store.QuestionHandles() {
		prev, hadPrev := s.choices[q]
		next := s.chooseForQuestion(store, params, q)
		s.choices[q] = next
		if !hadPrev || prev.Answer != next.Answer || prev.Status != next.Status {
			changed = true
		}
	}
	return changed
}

// chooseForQuestion resolves a single question's submissions into a chosen
// answer. A question with any trusted submission is frozen on the
// lexicographically-first trusted answer token, breaking ties among
// disagreeing trusted sources deterministically. A question with no
// trusted submission resolves to the answer with the greatest total
// source weight, falling back to plain submission-count plurality (and
// then lexicographic order) when every contributing weight is zero.
func (s *Solver) chooseForQuestion(store *graph.Store, params domain.Params, q int) Choice {
	subs := store.SubmissionsForQuestion(q)
	if len(subs) == 0 {
		return Choice{Status: StatusDirty}
	}

	var trustedAnswers []string
	for _, sub := range subs {
		if store.IsTrusted(sub.Handle) {
			trustedAnswers = append(trustedAnswers, sub.Answer)
		}
	}
	if len(trustedAnswers) > 0 {
		sort.Strings(trustedAnswers)
		return Choice{Answer: trustedAnswers[0], Confidence: 1.0, Status: StatusFrozen}
	}

	weight := make(map[string]float64)
	count := make(map[string]int)
	total := 0.0
	for _, sub := range subs {
		w := Weight(store.Quality(sub.Handle), params.LogWeightFactor)
		weight[sub.Answer] += w
		count[sub.Answer]++
		total += w
	}

	best := plurality(weight, count)
	confidence := 0.0
	if total > 0 {
		confidence = weight[best] / total
	}
	return Choice{Answer: best, Confidence: confidence, Status: StatusClean}
}

// plurality picks the answer token with the greatest weight, falling back
// to submission count when weights tie (including the all-zero case), and
// finally to lexicographic order so the result is deterministic.
func plurality(weight map[string]float64, count map[string]int) string {
	answers := make([]string, 0, len(weight))
	for a := range weight {
		answers = append(answers, a)
	}
	sort.Strings(answers)

	best := answers[0]
	for _, a := range answers[1:] {
		switch {
		case weight[a] > weight[best]:
			best = a
		case weight[a] == weight[best] && count[a] > count[best]:
			best = a
		}
	}
	return best
}

// qualityPass recomputes every non-trusted source's quality from the
// answers the solver just chose for the questions it submitted to.
func (s *Solver) qualityPass(store *graph.Store, params domain.Params) {
	for _, src := range store.SourceHandles() {
		if store.IsTrusted(src) {
			continue
		}
		store.SetQuality(src, s.qualityForSource(store, params, src))
	}
}

// qualityForSource applies the quality-update rule: the fraction of a
// source's submissions that agree with the current chosen answer, smoothed
// by a prior equivalent to InitialSourceStrength submissions at
// DefaultSourceQuality.
func (s *Solver) qualityForSource(store *graph.Store, params domain.Params, src int) float64 {
	subs := store.SubmissionsBySource(src)
	agreements := 0.0
	for _, sub := range subs {
		choice, ok := s.choices[sub.Handle]
		if ok && choice.Answer == sub.Answer {
			agreements++
		}
	}
	numerator := params.InitialSourceStrength*params.DefaultSourceQuality + agreements
	denominator := params.InitialSourceStrength + float64(len(subs))
	if denominator == 0 {
		return params.DefaultSourceQuality
	}
	return numerator / denominator
}

// Weight converts a source's quality into a vote weight via the monotone
// logarithmic transform: zero at quality zero, increasing with quality up
// to logWeightFactor·log(1+logWeightFactor) at quality one, and never
// negative for any quality in [0,1].
func Weight(quality, logWeightFactor float64) float64 {
	w := logWeightFactor * math.Log(1+quality*logWeightFactor)
	if w < 0 {
		return 0
	}
	return w
}

// Choice returns the solver's cached resolution for a question, or the zero
// Choice if the question has never been solved.
func (s *Solver) Choice(q int) Choice {
	return s.choices[q]
}

// AllAnswers clusters the distinct answer tokens submitted to a question
// under eq and reports one confidence per cluster: the complement of the
// probability that no source in the cluster is correct,
// 1 - Π(1 - quality(s)). This is the reporting-layer probability GET
// ANSWERS TO exposes; it is not the normalized vote share the core solver
// uses to pick a single answer (see chooseForQuestion), and clusters are
// not mutually exclusive probability mass. A question containing a
// trusted submission is reported frozen: the lexicographically-first
// trusted token at confidence 1, every other distinct token at 0,
// matching the solver's own freezing rule.
func AllAnswers(store *graph.Store, eq equalify.Equalifier, q int) ([]domain.AnswerConfidencePair, error) {
	subs := store.SubmissionsForQuestion(q)
	if len(subs) == 0 {
		return nil, nil
	}

	var trustedAnswers []string
	for _, sub := range subs {
		if store.IsTrusted(sub.Handle) {
			trustedAnswers = append(trustedAnswers, sub.Answer)
		}
	}
	if len(trustedAnswers) > 0 {
		sort.Strings(trustedAnswers)
		chosen := trustedAnswers[0]
		seen := map[string]bool{}
		var out []domain.AnswerConfidencePair
		for _, sub := range subs {
			if seen[sub.Answer] {
				continue
			}
			seen[sub.Answer] = true
			conf := 0.0
			if sub.Answer == chosen {
				conf = 1.0
			}
			out = append(out, domain.AnswerConfidencePair{Answer: sub.Answer, Confidence: conf})
		}
		sortPairs(out)
		return out, nil
	}

	clusters, err := clusterAnswers(subs, eq)
	if err != nil {
		return nil, err
	}

	var out []domain.AnswerConfidencePair
	for _, cluster := range clusters {
		incorrectChance := 1.0
		for _, sub := range cluster.members {
			incorrectChance *= 1 - store.Quality(sub.Handle)
		}
		out = append(out, domain.AnswerConfidencePair{
			Answer:     cluster.token,
			Confidence: 1 - incorrectChance,
		})
	}
	sortPairs(out)
	return out, nil
}

// answerCluster groups every submission whose token equalifies to the same
// answer; token is the cluster's lexicographically-smallest member, used
// as the reported representative.
type answerCluster struct {
	token   string
	members []graph.Submission
}

// clusterAnswers groups subs by eq-distance below clusterEpsilon. Distinct
// tokens are visited in lexicographic order so the result is deterministic
// and the representative token of any cluster is always its smallest
// member, regardless of submission order.
func clusterAnswers(subs []graph.Submission, eq equalify.Equalifier) ([]answerCluster, error) {
	byToken := make(map[string][]graph.Submission)
	var tokens []string
	for _, sub := range subs {
		if _, ok := byToken[sub.Answer]; !ok {
			tokens = append(tokens, sub.Answer)
		}
		byToken[sub.Answer] = append(byToken[sub.Answer], sub)
	}
	sort.Strings(tokens)

	var clusters []answerCluster
	for _, tok := range tokens {
		placed := false
		for i := range clusters {
			d, err := eq.Distance(clusters[i].token, tok)
			if err != nil {
				return nil, err
			}
			if d < clusterEpsilon {
				clusters[i].members = append(clusters[i].members, byToken[tok]...)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, answerCluster{token: tok, members: byToken[tok]})
		}
	}
	return clusters, nil
}

func sortPairs(pairs []domain.AnswerConfidencePair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Confidence != pairs[j].Confidence {
			return pairs[i].Confidence > pairs[j].Confidence
		}
		return pairs[i].Answer < pairs[j].Answer
	})
}
