package interp

import (
	"testing"

	"github.com/waoai/confidis/internal/domain"
)

func mustRun(t *testing.T, in *Interpreter, line string) any {
	t.Helper()
	result, err := in.Execute(line)
	if err != nil {
		t.Fatalf("unexpected error executing %q: %v", line, err)
	}
	return result
}

func TestParseRejectsMalformedCommands(t *testing.T) {
	cases := []string{
		"",
		"SET q1 a",
		"SET q1 a WITH s1",
		"GET",
		"GET FROM q1",
		"GET ANSWER q1",
		"TEST EQUALITY a",
		"BOGUS q1",
	}
	for _, c := range cases {
		if _, err := Parse(c); err == nil {
			t.Fatalf("expected parse error for %q", c)
		}
	}
}

func TestConfigureOutOfRangeRejected(t *testing.T) {
	in := New()
	_, err := in.Execute("CONFIGURE default_source_quality 1.5")
	if err == nil {
		t.Fatalf("expected OutOfRange error")
	}
	re, ok := err.(*domain.ResolverError)
	if !ok || re.Kind != domain.ErrorKindOutOfRange {
		t.Fatalf("expected OutOfRange error kind, got %v", err)
	}
}

func TestConfigureUnknownParameterRejected(t *testing.T) {
	in := New()
	_, err := in.Execute("CONFIGURE not_a_real_param 1.0")
	re, ok := err.(*domain.ResolverError)
	if !ok || re.Kind != domain.ErrorKindUnknownParameter {
		t.Fatalf("expected UnknownParameter error kind, got %v", err)
	}
}

func TestGetAnswerOnUnknownQuestionIsNoSubmissions(t *testing.T) {
	in := New()
	_, err := in.Execute("GET ANSWER TO nosuch")
	re, ok := err.(*domain.ResolverError)
	if !ok || re.Kind != domain.ErrorKindNoSubmissions {
		t.Fatalf("expected NoSubmissions error kind, got %v", err)
	}
}

func TestTrustedSourceWinsAndFreezes(t *testing.T) {
	in := New()
	mustRun(t, in, "SET q1 a FROM s1")
	mustRun(t, in, "SET q1 a FROM s2")
	mustRun(t, in, "BELIEVE s3")
	mustRun(t, in, "SET q1 b FROM s3")

	result := mustRun(t, in, "GET ANSWER TO q1").(domain.AnswerResult)
	if result.Answer != "b" || result.Confidence != 1.0 {
		t.Fatalf("expected trusted source's answer with full confidence, got %+v", result)
	}
}

func TestSetReplacesPriorSubmission(t *testing.T) {
	in := New()
	mustRun(t, in, "SET q1 a FROM s1")
	mustRun(t, in, "SET q1 b FROM s1")

	result := mustRun(t, in, "GET ANSWER TO q1").(domain.AnswerResult)
	if result.Answer != "b" {
		t.Fatalf("expected replaced submission to win with only one source, got %q", result.Answer)
	}
}

func TestComparisonMethodConfiguresNumeric(t *testing.T) {
	in := New()
	mustRun(t, in, "CONFIGURE comparison_method numeric max_distance=10")
	result := mustRun(t, in, "TEST EQUALITY 5 10").(domain.EqualityResult)
	if result.Distance != 0.5 {
		t.Fatalf("expected normalized distance 0.5, got %v", result.Distance)
	}
}

func TestTestEqualityExactDefault(t *testing.T) {
	in := New()
	same := mustRun(t, in, "TEST EQUALITY a a").(domain.EqualityResult)
	diff := mustRun(t, in, "TEST EQUALITY a b").(domain.EqualityResult)
	if same.Distance != 0 || diff.Distance != 1 {
		t.Fatalf("expected exact equalifier distances 0/1, got %v/%v", same.Distance, diff.Distance)
	}
}
