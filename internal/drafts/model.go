package drafts

import (
	"fmt"
	"time"
)

// SectionName enumerates the repeatable resume sections.
type SectionName string

const (
	SectionExperience       SectionName = "experience"
	SectionExtracurriculars SectionName = "extracurriculars"
	SectionProjects         SectionName = "projects"
)

// ParseSectionName validates a raw section name.
func ParseSectionName(raw string) (SectionName, error) {
	switch SectionName(raw) {
	case SectionExperience, SectionExtracurriculars, SectionProjects:
		return SectionName(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown section %q", ErrInvalidInput, raw)
	}
}

// PersonalInfo holds the scalar identity fields plus the free-form focus
// tags. The three labels are denormalized from IsSWE for display and are
// re-derived on every edit of the flag, never stored independently.
type PersonalInfo struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	LinkedIn  string
	Profile   string
	Domains   []string
	IsSWE     bool

	CoreSkillLabel  string
	ExtraSkillLabel *string
	DomainLabel     string
}

// DeriveLabels recomputes the display labels from the IsSWE flag.
func (p *PersonalInfo) DeriveLabels() {
	if p.IsSWE {
		tech := "Technologies"
		p.CoreSkillLabel = "Languages"
		p.ExtraSkillLabel = &tech
		p.DomainLabel = "Domains"
		return
	}
	p.CoreSkillLabel = "Skills"
	p.ExtraSkillLabel = nil
	p.DomainLabel = "Areas of Focus"
}

// EducationEntry is one education record. Completed is derived from End,
// never edited directly.
type EducationEntry struct {
	Institution         string
	InstitutionLocation string
	DegreeName          string
	Start               time.Time
	End                 time.Time
	RelevantCoursework  string
}

// Completed reports whether the entry ended on or before the given day.
func (e EducationEntry) Completed(today time.Time) bool {
	return !e.End.After(today)
}

// DescriptionPoint is a single bullet on a section item.
type DescriptionPoint struct {
	Summary        string
	RequiredSkills []string
	Group          int
}

// SectionItem is one entry inside a repeatable section. When StillWorking
// is set the End date stays in the data and in every serialized form; the
// editor only stops showing it.
type SectionItem struct {
	Organization string
	Location     string
	Position     string
	Start        time.Time
	End          time.Time
	CoreSkills   []string
	ExtraSkills  []string
	Description  []DescriptionPoint
	StillWorking bool
}

// Section groups items under one of the fixed section names.
type Section struct {
	Name    SectionName
	Include bool
	Items   []SectionItem
}

// ResumeDraft is the in-memory form tree for one user's session. It is
// mutated in place by the editing operations and owes its durability
// entirely to explicit saves.
type ResumeDraft struct {
	Info      PersonalInfo
	Education []EducationEntry
	Sections  map[SectionName]*Section

	// sectionOrder preserves the order sections were added in, so the
	// final document lists them deterministically.
	sectionOrder []SectionName
}

// NewResumeDraft returns a draft with empty fields and derived labels set.
func NewResumeDraft() *ResumeDraft {
	d := &ResumeDraft{
		Info:     PersonalInfo{Domains: []string{}},
		Sections: make(map[SectionName]*Section),
	}
	d.Info.DeriveLabels()
	return d
}

// SetInfo replaces the personal info and re-derives the display labels.
func (d *ResumeDraft) SetInfo(info PersonalInfo) {
	if info.Domains == nil {
		info.Domains = []string{}
	}
	d.Info = info
	d.Info.DeriveLabels()
}

// AddEducation appends a fresh entry dated today and returns its index.
func (d *ResumeDraft) AddEducation(today time.Time) int {
	d.Education = append(d.Education, EducationEntry{Start: today, End: today})
	return len(d.Education) - 1
}

// SetEducation replaces the entry at idx.
func (d *ResumeDraft) SetEducation(idx int, entry EducationEntry) error {
	if idx < 0 || idx >= len(d.Education) {
		return fmt.Errorf("%w: education entry %d", ErrNotFound, idx)
	}
	d.Education[idx] = entry
	return nil
}

// RemoveEducation deletes the entry at idx; later entries shift down.
func (d *ResumeDraft) RemoveEducation(idx int) error {
	out, err := removeAt(d.Education, idx)
	if err != nil {
		return fmt.Errorf("education entry %d: %w", idx, err)
	}
	d.Education = out
	return nil
}

// AddSection registers a section under the given name. Adding an existing
// name is a no-op: the name is the key, so a duplicate cannot exist and the
// items already collected are kept.
func (d *ResumeDraft) AddSection(name SectionName) *Section {
	if section, ok := d.Sections[name]; ok {
		return section
	}
	section := &Section{Name: name, Items: []SectionItem{}}
	d.Sections[name] = section
	d.sectionOrder = append(d.sectionOrder, name)
	return section
}

// Section fetches a section by name.
func (d *ResumeDraft) Section(name SectionName) (*Section, error) {
	section, ok := d.Sections[name]
	if !ok {
		return nil, fmt.Errorf("%w: section %q", ErrNotFound, name)
	}
	return section, nil
}

// OrderedSections returns sections in the order they were added.
func (d *ResumeDraft) OrderedSections() []*Section {
	out := make([]*Section, 0, len(d.sectionOrder))
	for _, name := range d.sectionOrder {
		out = append(out, d.Sections[name])
	}
	return out
}

// SetInclude flips the include flag on a section.
func (d *ResumeDraft) SetInclude(name SectionName, include bool) error {
	section, err := d.Section(name)
	if err != nil {
		return err
	}
	section.Include = include
	return nil
}

// AddItem appends a fresh item dated today to the named section.
func (d *ResumeDraft) AddItem(name SectionName, today time.Time) (int, error) {
	section, err := d.Section(name)
	if err != nil {
		return 0, err
	}
	section.Items = append(section.Items, SectionItem{
		Start:       today,
		End:         today,
		CoreSkills:  []string{},
		ExtraSkills: []string{},
		Description: []DescriptionPoint{},
	})
	return len(section.Items) - 1, nil
}

// SetItem replaces the item at idx in the named section.
func (d *ResumeDraft) SetItem(name SectionName, idx int, item SectionItem) error {
	section, err := d.Section(name)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(section.Items) {
		return fmt.Errorf("%w: %s item %d", ErrNotFound, name, idx)
	}
	section.Items[idx] = item
	return nil
}

// RemoveItem deletes the item at idx; later items shift down.
func (d *ResumeDraft) RemoveItem(name SectionName, idx int) error {
	section, err := d.Section(name)
	if err != nil {
		return err
	}
	out, err := removeAt(section.Items, idx)
	if err != nil {
		return fmt.Errorf("%s item %d: %w", name, idx, err)
	}
	section.Items = out
	return nil
}

// AddPoint appends an empty description point to an item.
func (d *ResumeDraft) AddPoint(name SectionName, idx int) (int, error) {
	section, err := d.Section(name)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(section.Items) {
		return 0, fmt.Errorf("%w: %s item %d", ErrNotFound, name, idx)
	}
	item := &section.Items[idx]
	item.Description = append(item.Description, DescriptionPoint{RequiredSkills: []string{}})
	return len(item.Description) - 1, nil
}

// SetPoint replaces the description point at pointIdx on an item.
func (d *ResumeDraft) SetPoint(name SectionName, idx, pointIdx int, point DescriptionPoint) error {
	section, err := d.Section(name)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(section.Items) {
		return fmt.Errorf("%w: %s item %d", ErrNotFound, name, idx)
	}
	item := &section.Items[idx]
	if pointIdx < 0 || pointIdx >= len(item.Description) {
		return fmt.Errorf("%w: %s item %d point %d", ErrNotFound, name, idx, pointIdx)
	}
	item.Description[pointIdx] = point
	return nil
}

// RemovePoint deletes the description point at pointIdx; later points
// shift down.
func (d *ResumeDraft) RemovePoint(name SectionName, idx, pointIdx int) error {
	section, err := d.Section(name)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(section.Items) {
		return fmt.Errorf("%w: %s item %d", ErrNotFound, name, idx)
	}
	item := &section.Items[idx]
	out, err := removeAt(item.Description, pointIdx)
	if err != nil {
		return fmt.Errorf("%s item %d point %d: %w", name, idx, pointIdx, err)
	}
	item.Description = out
	return nil
}

// removeAt deletes the element at idx. Any caller holding a later index
// must recompute it, since everything past idx shifts down by one.
func removeAt[T any](list []T, idx int) ([]T, error) {
	if idx < 0 || idx >= len(list) {
		return nil, ErrNotFound
	}
	return append(list[:idx], list[idx+1:]...), nil
}
