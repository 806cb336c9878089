package types

import (
	"strings"
)

// ExperienceLevel is the closed set of seniority labels understood by the matcher.
// The zero value is ExperienceUnknown, which covers absent and unrecognized labels.
type ExperienceLevel int

const (
	ExperienceUnknown ExperienceLevel = iota
	ExperienceEntry
	ExperienceMid
	ExperienceSenior
)

var experienceLabels = map[string]ExperienceLevel{
	"ENTRY":  ExperienceEntry,
	"MID":    ExperienceMid,
	"SENIOR": ExperienceSenior,
}

// ParseExperienceLevel maps a label to its level, case-insensitively.
// Surrounding whitespace is not trimmed, so a padded label is unrecognized.
// Unrecognized labels yield ExperienceUnknown; parsing never fails.
func ParseExperienceLevel(label string) ExperienceLevel {
	if level, ok := experienceLabels[strings.ToUpper(label)]; ok {
		return level
	}
	return ExperienceUnknown
}

// Known reports whether the level is one of the recognized labels.
func (l ExperienceLevel) Known() bool {
	return l >= ExperienceEntry && l <= ExperienceSenior
}

// Meets reports whether l satisfies the required level. Unknown on either side never meets.
func (l ExperienceLevel) Meets(required ExperienceLevel) bool {
	return l.Known() && required.Known() && l >= required
}

func (l ExperienceLevel) String() string {
	switch l {
	case ExperienceEntry:
		return "ENTRY"
	case ExperienceMid:
		return "MID"
	case ExperienceSenior:
		return "SENIOR"
	default:
		return "UNKNOWN"
	}
}
