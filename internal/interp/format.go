package interp

import (
	"fmt"
	"strings"

	"github.com/waoai/confidis/internal/domain"
)

// Format renders a command's result the way the protocol's reference
// transcript does: "<answer> (<confidence>%)" for a single answer, a bare
// three-decimal fraction for a quality or a distance, and a comma-joined
// list of "<answer> (<confidence>%)" pairs for a multi-answer report. It
// exists so the CLI and the golden-file tests share exactly one rendering
// of engine results.
func Format(result any) string {
	switch v := result.(type) {
	case domain.AnswerResult:
		return fmt.Sprintf("%s (%.3f%%)", v.Answer, v.Confidence*100)
	case domain.SourceResult:
		return fmt.Sprintf("%.3f", v.Quality)
	case domain.EqualityResult:
		return fmt.Sprintf("%.3f", v.Distance)
	case []domain.AnswerConfidencePair:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fmt.Sprintf("%s (%.3f%%)", p.Answer, p.Confidence*100)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
