package drafts

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"resume-builder/internal/formtree"
)

var fieldValidator = validator.New()

// Validate checks a submission tree (the FinalNode shape, dates still date
// leaves) and returns every human-readable problem found. Three shape
// checks on the contact fields run first, independent of the field catalog;
// then a recursive descent flags required fields that are empty. Only
// failures are collected, so allValid is simply an empty error list.
func Validate(root formtree.Node) (errs []string, allValid bool) {
	errs = []string{}

	info, _ := root.Get("info")
	if email := stringAt(info, "email"); email != "" && !isEmail(email) {
		errs = append(errs, "Email is not valid.")
	}
	if linkedin := stringAt(info, "linkedin"); linkedin != "" && !isURL(linkedin) {
		errs = append(errs, "LinkedIn link is not valid.")
	}
	if profile := stringAt(info, "profile"); profile != "" && !isURL(profile) {
		errs = append(errs, "Profile link is not valid.")
	}

	walkRequired(root, "", nil, "", &errs)
	return errs, len(errs) == 0
}

// FormatWarnings renders the aggregated warning shown to the user when a
// submission fails validation: every message, bullet-joined.
func FormatWarnings(errs []string) string {
	bullets := make([]string, len(errs))
	for i, e := range errs {
		bullets[i] = "- " + e
	}
	return "Invalid input detected. Errors found:\n" + strings.Join(bullets, "\n")
}

// walkRequired descends the tree. Records carrying a "name" field establish
// the context name for their descendants (an inherited name wins over the
// record's own); lists pass their element index down and clear the field
// identifier, so tag-set elements never validate. String leaves whose field
// has no external label are exempt; labels ending in "(Optional)" accept
// empty values.
func walkRequired(n formtree.Node, field string, idx *int, name string, errs *[]string) {
	switch n.Kind {
	case formtree.KindRecord:
		next := name
		if next == "" {
			if child, ok := n.Get("name"); ok && child.Kind == formtree.KindString {
				next = child.Str
			}
		}
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			walkRequired(child, key, idx, next, errs)
		}
	case formtree.KindList:
		for i := range n.Items {
			i := i
			walkRequired(n.Items[i], "", &i, name, errs)
		}
	case formtree.KindString:
		label, ok := Label(field)
		if !ok {
			return
		}
		if n.Str != "" || labelOptional(label) {
			return
		}
		if idx == nil || name == "" {
			*errs = append(*errs, fmt.Sprintf("%s required.", label))
			return
		}
		*errs = append(*errs, fmt.Sprintf("%s required for entry %d in %s.", label, *idx+1, name))
	}
}

func isEmail(s string) bool {
	return fieldValidator.Var(s, "email") == nil
}

func isURL(s string) bool {
	return fieldValidator.Var(s, "url") == nil
}
