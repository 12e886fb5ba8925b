package drafts

import (
	"time"

	"resume-builder/internal/formtree"
)

// DraftNode builds the draft snapshot tree: the shape written to
// intermediate storage and served to the editor. Sections keep their map
// shape (keyed by name); dates stay date leaves until a codec pass.
func DraftNode(d *ResumeDraft, today time.Time) formtree.Node {
	root := formtree.Record()
	root.Set("info", infoNode(d.Info))
	root.Set("education", educationNode(d.Education, today))

	sections := formtree.Record()
	for _, section := range d.OrderedSections() {
		sections.Set(string(section.Name), sectionNode(section))
	}
	root.Set("sections", sections)
	return root
}

// FinalNode builds the submission document: education and the derived
// labels folded into info, sections flattened to an ordered list.
func FinalNode(d *ResumeDraft, today time.Time) formtree.Node {
	info := infoNode(d.Info)
	info.Set("education", educationNode(d.Education, today))

	var sections []formtree.Node
	for _, section := range d.OrderedSections() {
		sections = append(sections, sectionNode(section))
	}

	root := formtree.Record()
	root.Set("info", info)
	root.Set("sections", formtree.List(sections...))
	return root
}

func infoNode(info PersonalInfo) formtree.Node {
	n := formtree.Record()
	n.Set("firstname", formtree.String(info.FirstName))
	n.Set("lastname", formtree.String(info.LastName))
	n.Set("phone", formtree.String(info.Phone))
	n.Set("email", formtree.String(info.Email))
	n.Set("linkedin", formtree.String(info.LinkedIn))
	n.Set("profile", formtree.String(info.Profile))
	n.Set("domains", stringListNode(info.Domains))
	n.Set("is_swe", formtree.Bool(info.IsSWE))
	n.Set("core_skill_label", formtree.String(info.CoreSkillLabel))
	if info.ExtraSkillLabel != nil {
		n.Set("extra_skill_label", formtree.String(*info.ExtraSkillLabel))
	} else {
		n.Set("extra_skill_label", formtree.Null())
	}
	n.Set("domain_label", formtree.String(info.DomainLabel))
	return n
}

func educationNode(entries []EducationEntry, today time.Time) formtree.Node {
	items := make([]formtree.Node, len(entries))
	for i, entry := range entries {
		n := formtree.Record()
		n.Set("institution", formtree.String(entry.Institution))
		n.Set("institution_location", formtree.String(entry.InstitutionLocation))
		n.Set("degree_name", formtree.String(entry.DegreeName))
		n.Set("start", formtree.Date(entry.Start))
		n.Set("end", formtree.Date(entry.End))
		n.Set("relevant_coursework", formtree.String(entry.RelevantCoursework))
		n.Set("completed", formtree.Bool(entry.Completed(today)))
		items[i] = n
	}
	return formtree.List(items...)
}

func sectionNode(section *Section) formtree.Node {
	n := formtree.Record()
	n.Set("name", formtree.String(string(section.Name)))
	n.Set("include", formtree.Bool(section.Include))

	items := make([]formtree.Node, len(section.Items))
	for i, item := range section.Items {
		items[i] = itemNode(item)
	}
	n.Set("items", formtree.List(items...))
	return n
}

func itemNode(item SectionItem) formtree.Node {
	n := formtree.Record()
	n.Set("organization", formtree.String(item.Organization))
	n.Set("location", formtree.String(item.Location))
	n.Set("position", formtree.String(item.Position))
	n.Set("start", formtree.Date(item.Start))
	n.Set("end", formtree.Date(item.End))
	n.Set("core_skills", stringListNode(item.CoreSkills))
	n.Set("extra_skills", stringListNode(item.ExtraSkills))

	points := make([]formtree.Node, len(item.Description))
	for i, point := range item.Description {
		p := formtree.Record()
		p.Set("summary", formtree.String(point.Summary))
		p.Set("required_skills", stringListNode(point.RequiredSkills))
		p.Set("group", formtree.Number(float64(point.Group)))
		points[i] = p
	}
	n.Set("description", formtree.List(points...))
	n.Set("still_working", formtree.Bool(item.StillWorking))
	return n
}

func stringListNode(values []string) formtree.Node {
	items := make([]formtree.Node, len(values))
	for i, v := range values {
		items[i] = formtree.String(v)
	}
	return formtree.List(items...)
}

// DraftFromNode rebuilds a typed draft from a stored snapshot tree that has
// already been through the draft date pass. Unknown or missing fields fall
// back to zero values; derived fields are recomputed rather than trusted.
func DraftFromNode(root formtree.Node) *ResumeDraft {
	d := NewResumeDraft()

	if info, ok := root.Get("info"); ok {
		d.SetInfo(infoFromNode(info))
	}
	if education, ok := root.Get("education"); ok {
		for _, item := range education.Items {
			d.Education = append(d.Education, educationFromNode(item))
		}
	}
	if sections, ok := root.Get("sections"); ok {
		for _, key := range sections.Keys() {
			name, err := ParseSectionName(key)
			if err != nil {
				continue
			}
			node, _ := sections.Get(key)
			section := d.AddSection(name)
			section.Include = boolAt(node, "include")
			if items, ok := node.Get("items"); ok {
				for _, item := range items.Items {
					section.Items = append(section.Items, itemFromNode(item))
				}
			}
		}
	}
	return d
}

func infoFromNode(n formtree.Node) PersonalInfo {
	return PersonalInfo{
		FirstName: stringAt(n, "firstname"),
		LastName:  stringAt(n, "lastname"),
		Phone:     stringAt(n, "phone"),
		Email:     stringAt(n, "email"),
		LinkedIn:  stringAt(n, "linkedin"),
		Profile:   stringAt(n, "profile"),
		Domains:   stringListAt(n, "domains"),
		IsSWE:     boolAt(n, "is_swe"),
	}
}

func educationFromNode(n formtree.Node) EducationEntry {
	return EducationEntry{
		Institution:         stringAt(n, "institution"),
		InstitutionLocation: stringAt(n, "institution_location"),
		DegreeName:          stringAt(n, "degree_name"),
		Start:               dateAt(n, "start"),
		End:                 dateAt(n, "end"),
		RelevantCoursework:  stringAt(n, "relevant_coursework"),
	}
}

func itemFromNode(n formtree.Node) SectionItem {
	item := SectionItem{
		Organization: stringAt(n, "organization"),
		Location:     stringAt(n, "location"),
		Position:     stringAt(n, "position"),
		Start:        dateAt(n, "start"),
		End:          dateAt(n, "end"),
		CoreSkills:   stringListAt(n, "core_skills"),
		ExtraSkills:  stringListAt(n, "extra_skills"),
		Description:  []DescriptionPoint{},
		StillWorking: boolAt(n, "still_working"),
	}
	if points, ok := n.Get("description"); ok {
		for _, p := range points.Items {
			item.Description = append(item.Description, DescriptionPoint{
				Summary:        stringAt(p, "summary"),
				RequiredSkills: stringListAt(p, "required_skills"),
				Group:          int(numberAt(p, "group")),
			})
		}
	}
	return item
}

func stringAt(n formtree.Node, key string) string {
	child, ok := n.Get(key)
	if !ok || child.Kind != formtree.KindString {
		return ""
	}
	return child.Str
}

func boolAt(n formtree.Node, key string) bool {
	child, ok := n.Get(key)
	if !ok || child.Kind != formtree.KindBool {
		return false
	}
	return child.Bool
}

func numberAt(n formtree.Node, key string) float64 {
	child, ok := n.Get(key)
	if !ok || child.Kind != formtree.KindNumber {
		return 0
	}
	return child.Num
}

func dateAt(n formtree.Node, key string) time.Time {
	child, ok := n.Get(key)
	if !ok || child.Kind != formtree.KindDate {
		return time.Time{}
	}
	return child.Time
}

func stringListAt(n formtree.Node, key string) []string {
	child, ok := n.Get(key)
	if !ok || child.Kind != formtree.KindList {
		return []string{}
	}
	out := make([]string, 0, len(child.Items))
	for _, item := range child.Items {
		if item.Kind == formtree.KindString {
			out = append(out, item.Str)
		}
	}
	return out
}
