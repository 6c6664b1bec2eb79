package bank

import "strings"

// GradeGrant is a validated {department, grade} pair. Raw grant strings never
// travel past this boundary.
type GradeGrant struct {
	Department string `json:"department"`
	Grade      string `json:"grade"`
}

// Grants maps a department to the grades a teacher may draw questions from.
type Grants map[string][]string

// separators tried in priority order when splitting a raw grant string.
var grantSeparators = []string{"|", ":", " - "}

// ParseGradeGrants resolves loosely-formatted grant strings ("Science|Grade 5",
// "Science: Grade 5", "Science - Grade 5", or a known department embedded as a
// substring) into a department->grades map. Unresolvable entries are returned
// in dropped rather than silently discarded; callers decide how loudly to
// report them. The output count may be smaller than the input count.
func ParseGradeGrants(raws []string, knownDepartments []string) (Grants, []string) {
	grants := Grants{}
	var dropped []string

	for _, raw := range raws {
		g, ok := parseGrant(raw, knownDepartments)
		if !ok {
			dropped = append(dropped, raw)
			continue
		}
		if !containsString(grants[g.Department], g.Grade) {
			grants[g.Department] = append(grants[g.Department], g.Grade)
		}
	}
	return grants, dropped
}

func parseGrant(raw string, knownDepartments []string) (GradeGrant, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return GradeGrant{}, false
	}

	for _, sep := range grantSeparators {
		i := strings.Index(s, sep)
		if i < 0 {
			continue
		}
		dep := canonicalDepartment(strings.TrimSpace(s[:i]), knownDepartments)
		grade := strings.TrimSpace(s[i+len(sep):])
		if dep != "" && grade != "" {
			return GradeGrant{Department: dep, Grade: grade}, true
		}
		// Separator present but the left side is not a known department;
		// fall through to the substring scan below.
		break
	}

	// Fallback: a known department name embedded anywhere in the string. The
	// grade is everything after the first token, which is imprecise for
	// inputs like "Grade 5 Science" (yields grade "5 Science") but matches
	// how legacy grants were written.
	for _, dep := range knownDepartments {
		if dep == "" || !strings.Contains(strings.ToLower(s), strings.ToLower(dep)) {
			continue
		}
		rest := s
		if i := strings.IndexAny(s, " |:-"); i >= 0 {
			rest = s[i:]
		}
		grade := strings.TrimLeft(rest, " |:-")
		if grade == "" {
			return GradeGrant{}, false
		}
		return GradeGrant{Department: dep, Grade: grade}, true
	}
	return GradeGrant{}, false
}

func canonicalDepartment(name string, known []string) string {
	for _, d := range known {
		if strings.EqualFold(d, name) {
			return d
		}
	}
	return ""
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
