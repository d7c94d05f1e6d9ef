package frontend

import (
	"regexp"
	"strings"

	"classbridge/internal/source"
)

// Body scans are textual. The front-end does not build statement
// trees, so acquisition, release, and comparison facts come from
// pattern matches over the raw body text.
var (
	acquireRe = regexp.MustCompile(`(\w+)\s*=\s*new\b`)
	releaseRe = regexp.MustCompile(`delete\s*(?:\[\s*\])?\s*(\w+)`)
	returnRe  = regexp.MustCompile(`return\s+(\w+)\s*;`)
)

// recordBodyFacts scans a member body for the facts the mappers
// consume. Returns the name of the field handed out by a borrowing
// accessor, if the member is one.
func recordBodyFacts(member *source.MemberDeclaration, typeName, body string) string {
	body = strings.ReplaceAll(body, "this->", "")

	switch {
	case member.Name == typeName:
		member.AcquiredFields = captures(acquireRe, body)
	case member.Name == "~"+typeName:
		member.ReleasedFields = captures(releaseRe, body)
	case member.Name == "operator==" || member.Name == "operator!=":
		member.ComparedFields = comparedFields(member, body)
	default:
		if member.ReturnType.IsPointer || member.ReturnType.IsReference {
			if m := returnRe.FindStringSubmatch(body); m != nil {
				return m[1]
			}
		}
	}

	return ""
}

// comparedFields lists the fields an equality body compares, found by
// accesses through the operand parameter.
func comparedFields(member *source.MemberDeclaration, body string) []string {
	if len(member.Params) == 0 || member.Params[0].Name == "" {
		return nil
	}

	re := regexp.MustCompile(regexp.QuoteMeta(member.Params[0].Name) + `\.(\w+)`)

	return captures(re, body)
}

// captures returns the ordered, deduplicated first capture of every
// match.
func captures(re *regexp.Regexp, body string) []string {
	var out []string

	seen := make(map[string]bool)

	for _, m := range re.FindAllStringSubmatch(body, -1) {
		if seen[m[1]] {
			continue
		}

		seen[m[1]] = true
		out = append(out, m[1])
	}

	return out
}

// markOwnership flags fields acquired in a constructor and released in
// the destructor as owned, and records which fields borrowing
// accessors hand out.
func markOwnership(decl *source.TypeDeclaration, borrowed []string) {
	acquired := make(map[string]bool)
	released := make(map[string]bool)

	for _, m := range decl.Members {
		switch m.Name {
		case decl.Name.Name:
			for _, f := range m.AcquiredFields {
				acquired[f] = true
			}
		case "~" + decl.Name.Name:
			for _, f := range m.ReleasedFields {
				released[f] = true
			}
		}
	}

	borrowedSet := make(map[string]bool, len(borrowed))
	for _, f := range borrowed {
		borrowedSet[f] = true
	}

	for i := range decl.Members {
		m := &decl.Members[i]
		if !m.IsFieldDecl {
			continue
		}

		m.OwnsResource = acquired[m.Name] && released[m.Name]
		m.BorrowExposed = borrowedSet[m.Name]
	}
}
