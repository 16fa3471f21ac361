// Package interp parses and interprets the engine's line-oriented command
// protocol. Each line is one command; parsing is case-sensitive and
// whitespace-tokenized, with no quoting or escaping.
package interp

import (
	"strings"

	"github.com/waoai/confidis/internal/domain"
)

// Kind identifies which of the protocol's verbs a Command carries.
type Kind int

const (
	KindConfigure Kind = iota
	KindBelieve
	KindSet
	KindGetAnswer
	KindGetSource
	KindGetAnswers
	KindTestEquality
)

// Command is one parsed protocol line.
type Command struct {
	Kind Kind

	ConfigureName string
	ConfigureArgs []string // remaining tokens after ConfigureName, in order

	SourceID   string
	QuestionID string
	Answer     string

	TokenA string
	TokenB string
}

// Parse tokenizes and validates one protocol line. It returns a
// *domain.ResolverError with ErrorKindParseError on any malformed input;
// it never panics on untrusted input.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, domain.NewParseError("empty command")
	}

	switch fields[0] {
	case "CONFIGURE":
		if len(fields) < 3 {
			return Command{}, domain.NewParseError("CONFIGURE requires a name and at least one value")
		}
		return Command{Kind: KindConfigure, ConfigureName: fields[1], ConfigureArgs: fields[2:]}, nil

	case "BELIEVE":
		if len(fields) != 2 {
			return Command{}, domain.NewParseError("BELIEVE requires exactly one source id")
		}
		return Command{Kind: KindBelieve, SourceID: fields[1]}, nil

	case "SET":
		if len(fields) != 5 || fields[3] != "FROM" {
			return Command{}, domain.NewParseError("SET requires: SET <question> <answer> FROM <source>")
		}
		return Command{Kind: KindSet, QuestionID: fields[1], Answer: fields[2], SourceID: fields[4]}, nil

	case "GET":
		if len(fields) < 2 {
			return Command{}, domain.NewParseError("GET requires a sub-verb")
		}
		switch fields[1] {
		case "ANSWER":
			if len(fields) != 4 || fields[2] != "TO" {
				return Command{}, domain.NewParseError("GET ANSWER requires: GET ANSWER TO <question>")
			}
			return Command{Kind: KindGetAnswer, QuestionID: fields[3]}, nil
		case "ANSWERS":
			if len(fields) != 4 || fields[2] != "TO" {
				return Command{}, domain.NewParseError("GET ANSWERS requires: GET ANSWERS TO <question>")
			}
			return Command{Kind: KindGetAnswers, QuestionID: fields[3]}, nil
		case "SOURCE":
			if len(fields) != 3 {
				return Command{}, domain.NewParseError("GET SOURCE requires: GET SOURCE <source>")
			}
			return Command{Kind: KindGetSource, SourceID: fields[2]}, nil
		default:
			return Command{}, domain.NewParseError("unrecognized GET sub-verb %q", fields[1])
		}

	case "TEST":
		if len(fields) != 4 || fields[1] != "EQUALITY" {
			return Command{}, domain.NewParseError("TEST EQUALITY requires: TEST EQUALITY <token> <token>")
		}
		return Command{Kind: KindTestEquality, TokenA: fields[2], TokenB: fields[3]}, nil

	default:
		return Command{}, domain.NewParseError("unrecognized verb %q", fields[0])
	}
}
