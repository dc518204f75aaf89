package main

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// invalidChoice builds the error for a flag value outside allowed, with the
// closest allowed value as a hint when one matches fuzzily.
func invalidChoice(flag, value string, allowed []string) error {
	msg := fmt.Sprintf("invalid --%s value %q (expected %s)", flag, value, strings.Join(allowed, "|"))
	if hint := suggest(value, allowed); hint != "" {
		msg += fmt.Sprintf(", did you mean %q?", hint)
	}
	return fmt.Errorf("%s", msg)
}

// suggest returns the allowed value closest to value, or "" when none
// contains its characters in order.
func suggest(value string, allowed []string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	best, bestScore := "", -1
	for _, candidate := range allowed {
		score := fuzzy.RankMatchNormalizedFold(value, candidate)
		if score < 0 {
			continue
		}
		if bestScore < 0 || score < bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}
