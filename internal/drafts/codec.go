package drafts

import (
	"resume-builder/internal/formtree"
)

const (
	draftDateLayout = "2006-01-02"
	finalDateLayout = "January 2006"
)

// ToFinal rewrites every date leaf to its "Month Year" display string.
// The result is a structural isomorph of the input and is one-way: the
// month-year form drops the day and cannot be read back into the editor.
func ToFinal(n formtree.Node) formtree.Node {
	return formtree.MapLeaves(n, func(leaf formtree.Node) formtree.Node {
		if leaf.Kind == formtree.KindDate {
			return formtree.String(leaf.Time.Format(finalDateLayout))
		}
		return leaf
	})
}

// ToDraft rewrites every date leaf to its ISO "YYYY-MM-DD" string, the
// intermediate storage form. Distinct from ToFinal; the two formats are
// not interchangeable.
func ToDraft(n formtree.Node) formtree.Node {
	return formtree.MapLeaves(n, func(leaf formtree.Node) formtree.Node {
		if leaf.Kind == formtree.KindDate {
			return formtree.String(leaf.Time.Format(draftDateLayout))
		}
		return leaf
	})
}

// FromDraft inverts ToDraft: any string leaf that parses as "YYYY-MM-DD"
// becomes a date leaf, everything else passes through unchanged. A string
// that merely fails the parse is never an error. A free-text field holding
// a date-shaped string is indistinguishable from a real date field here;
// in practice the draft document is only ever produced by ToDraft, so only
// genuine date fields carry that shape.
func FromDraft(n formtree.Node) formtree.Node {
	return formtree.MapLeaves(n, func(leaf formtree.Node) formtree.Node {
		if leaf.Kind == formtree.KindString {
			if t, ok := formtree.ParseDate(leaf.Str); ok {
				return formtree.Date(t)
			}
		}
		return leaf
	})
}
