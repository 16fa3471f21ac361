package interp

import (
	"strconv"
	"strings"

	"github.com/waoai/confidis/internal/domain"
	"github.com/waoai/confidis/internal/equalify"
	"github.com/waoai/confidis/internal/graph"
	"github.com/waoai/confidis/internal/solver"
)

// Interpreter binds a graph, a solver, and the current tunable parameters
// into one executable unit. It holds the only mutable state an engine
// instance has beyond the graph itself: the current comparison method and
// the three CONFIGURE-able weighting parameters.
type Interpreter struct {
	store      *graph.Store
	solver     *solver.Solver
	params     domain.Params
	equalifier equalify.Equalifier
}

// New returns an interpreter over a fresh, empty graph, with the engine's
// documented defaults and the exact comparison method.
func New() *Interpreter {
	return &Interpreter{
		store:      graph.New(),
		solver:     solver.New(),
		params:     domain.DefaultParams(),
		equalifier: equalify.Exact{},
	}
}

// Execute parses and runs one protocol line. The returned value is one of
// domain.AnswerResult, domain.SourceResult, []domain.AnswerConfidencePair,
// domain.EqualityResult, or nil for commands with no result. On any
// failure the returned error is a *domain.ResolverError.
func (in *Interpreter) Execute(line string) (any, error) {
	cmd, err := Parse(line)
	if err != nil {
		return nil, err
	}
	return in.Run(cmd)
}

// Run executes an already-parsed command.
func (in *Interpreter) Run(cmd Command) (any, error) {
	switch cmd.Kind {
	case KindConfigure:
		return nil, in.configure(cmd)
	case KindBelieve:
		h := in.store.EnsureSource(cmd.SourceID, in.params.DefaultSourceQuality)
		in.store.MarkTrusted(h, domain.TrustedQuality)
		return nil, nil
	case KindSet:
		q := in.store.EnsureQuestion(cmd.QuestionID)
		s := in.store.EnsureSource(cmd.SourceID, in.params.DefaultSourceQuality)
		in.store.Submit(s, q, cmd.Answer)
		return nil, nil
	case KindGetAnswer:
		return in.getAnswer(cmd.QuestionID)
	case KindGetSource:
		return in.getSource(cmd.SourceID)
	case KindGetAnswers:
		return in.getAnswers(cmd.QuestionID)
	case KindTestEquality:
		return in.testEquality(cmd.TokenA, cmd.TokenB)
	default:
		return nil, domain.NewParseError("unrecognized command")
	}
}

func (in *Interpreter) configure(cmd Command) error {
	switch cmd.ConfigureName {
	case "initial_source_strength":
		v, err := parseFloatArg(cmd.ConfigureArgs[0])
		if err != nil {
			return err
		}
		if v < 0 {
			return domain.NewOutOfRange("initial_source_strength must be >= 0, got %v", v)
		}
		in.params.InitialSourceStrength = v
	case "default_source_quality":
		v, err := parseFloatArg(cmd.ConfigureArgs[0])
		if err != nil {
			return err
		}
		if v < 0 || v > 1 {
			return domain.NewOutOfRange("default_source_quality must be in [0,1], got %v", v)
		}
		in.params.DefaultSourceQuality = v
	case "log_weight_factor":
		v, err := parseFloatArg(cmd.ConfigureArgs[0])
		if err != nil {
			return err
		}
		if v <= 0 {
			return domain.NewOutOfRange("log_weight_factor must be > 0, got %v", v)
		}
		in.params.LogWeightFactor = v
	case "comparison_method":
		eq, err := equalify.Build(cmd.ConfigureArgs[0], parseKwargs(cmd.ConfigureArgs[1:]))
		if err != nil {
			return err
		}
		in.equalifier = eq
		return nil // comparison method does not affect solver weighting, no re-solve needed
	default:
		return domain.NewUnknownParameter(cmd.ConfigureName)
	}
	in.store.MarkDirty()
	return nil
}

func parseFloatArg(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.NewParseError("expected a number, got %q", raw)
	}
	return v, nil
}

func parseKwargs(args []string) map[string]string {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

func (in *Interpreter) resolve() {
	if in.store.Dirty() {
		in.solver.Solve(in.store, in.params)
	}
}

func (in *Interpreter) getAnswer(questionID string) (domain.AnswerResult, error) {
	if !in.store.HasQuestion(questionID) {
		return domain.AnswerResult{}, domain.NewNoSubmissions(questionID)
	}
	in.resolve()
	q := in.store.EnsureQuestion(questionID)
	choice := in.solver.Choice(q)
	if choice.Answer == "" {
		return domain.AnswerResult{}, domain.NewNoSubmissions(questionID)
	}
	return domain.AnswerResult{Answer: choice.Answer, Confidence: choice.Confidence}, nil
}

func (in *Interpreter) getSource(sourceID string) (domain.SourceResult, error) {
	in.resolve()
	h := in.store.EnsureSource(sourceID, in.params.DefaultSourceQuality)
	return domain.SourceResult{Quality: in.store.Quality(h)}, nil
}

func (in *Interpreter) getAnswers(questionID string) ([]domain.AnswerConfidencePair, error) {
	if !in.store.HasQuestion(questionID) {
		return nil, domain.NewNoSubmissions(questionID)
	}
	in.resolve()
	q := in.store.EnsureQuestion(questionID)
	pairs, err := solver.AllAnswers(in.store, in.equalifier, q)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, domain.NewNoSubmissions(questionID)
	}
	return pairs, nil
}

func (in *Interpreter) testEquality(a, b string) (domain.EqualityResult, error) {
	d, err := in.equalifier.Distance(a, b)
	if err != nil {
		return domain.EqualityResult{}, err
	}
	return domain.EqualityResult{Distance: d}, nil
}
