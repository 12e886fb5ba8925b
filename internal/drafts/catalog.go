package drafts

import (
	"fmt"
	"strings"
)

// Field catalog: internal field identifiers to the labels shown to users.
// A field missing from this map is exempt from required-field validation;
// a label ending in "(Optional)" marks the field optional. The skill labels
// carry a format slot filled from the draft's skill-label denormalization.
var fieldLabels = map[string]string{
	"firstname":    "First Name",
	"lastname":     "Last Name",
	"phone":        "Phone Number",
	"email":        "Email Address",
	"linkedin":     "LinkedIn Profile",
	"profile":      "Website/Portfolio/GitHub (Optional)",
	"domains":      "Areas of Focus",
	"organization": "Organization",
	"location":     "Location",
	"position":     "Job Title",
	"start":        "Start Date",
	"end":          "End Date",
	"core_skills":  "%s used",
	"extra_skills": "%s used",
	"description":  "Resume Points",
}

const optionalSuffix = "(Optional)"

// Label resolves an internal field identifier to its external label.
// The second return is false when the field has no external label, which
// opts it out of validation.
func Label(field string) (string, bool) {
	label, ok := fieldLabels[field]
	return label, ok
}

// DisplayLabel resolves a label for display, filling the format slot of
// fields whose label depends on the draft's skill terminology.
func DisplayLabel(field, skillLabel string) string {
	label, ok := fieldLabels[field]
	if !ok {
		return ""
	}
	if strings.Contains(label, "%s") {
		return fmt.Sprintf(label, skillLabel)
	}
	return label
}

func labelOptional(label string) bool {
	return strings.HasSuffix(label, optionalSuffix)
}
