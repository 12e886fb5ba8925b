package drafts

import (
	"fmt"
	"time"

	"resume-builder/internal/formtree"
)

// Inbound payloads mirror the stored field names; dates arrive as ISO
// "YYYY-MM-DD" strings and are parsed at the boundary.

type personalInfoRequest struct {
	FirstName string   `json:"firstname"`
	LastName  string   `json:"lastname"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	LinkedIn  string   `json:"linkedin"`
	Profile   string   `json:"profile"`
	Domains   []string `json:"domains"`
	IsSWE     bool     `json:"is_swe"`
}

func (r personalInfoRequest) toModel() PersonalInfo {
	return PersonalInfo{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		LinkedIn:  r.LinkedIn,
		Profile:   r.Profile,
		Domains:   r.Domains,
		IsSWE:     r.IsSWE,
	}
}

type educationRequest struct {
	Institution         string `json:"institution"`
	InstitutionLocation string `json:"institution_location"`
	DegreeName          string `json:"degree_name"`
	Start               string `json:"start"`
	End                 string `json:"end"`
	RelevantCoursework  string `json:"relevant_coursework"`
}

func (r educationRequest) toModel() (EducationEntry, error) {
	start, err := parseDateField("start", r.Start)
	if err != nil {
		return EducationEntry{}, err
	}
	end, err := parseDateField("end", r.End)
	if err != nil {
		return EducationEntry{}, err
	}
	return EducationEntry{
		Institution:         r.Institution,
		InstitutionLocation: r.InstitutionLocation,
		DegreeName:          r.DegreeName,
		Start:               start,
		End:                 end,
		RelevantCoursework:  r.RelevantCoursework,
	}, nil
}

type descriptionPointRequest struct {
	Summary        string   `json:"summary"`
	RequiredSkills []string `json:"required_skills"`
	Group          int      `json:"group"`
}

func (r descriptionPointRequest) toModel() DescriptionPoint {
	skills := r.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return DescriptionPoint{Summary: r.Summary, RequiredSkills: skills, Group: r.Group}
}

type sectionItemRequest struct {
	Organization string                    `json:"organization"`
	Location     string                    `json:"location"`
	Position     string                    `json:"position"`
	Start        string                    `json:"start"`
	End          string                    `json:"end"`
	CoreSkills   []string                  `json:"core_skills"`
	ExtraSkills  []string                  `json:"extra_skills"`
	Description  []descriptionPointRequest `json:"description"`
	StillWorking bool                      `json:"still_working"`
}

func (r sectionItemRequest) toModel() (SectionItem, error) {
	start, err := parseDateField("start", r.Start)
	if err != nil {
		return SectionItem{}, err
	}
	end, err := parseDateField("end", r.End)
	if err != nil {
		return SectionItem{}, err
	}

	item := SectionItem{
		Organization: r.Organization,
		Location:     r.Location,
		Position:     r.Position,
		Start:        start,
		End:          end,
		CoreSkills:   r.CoreSkills,
		ExtraSkills:  r.ExtraSkills,
		Description:  []DescriptionPoint{},
		StillWorking: r.StillWorking,
	}
	if item.CoreSkills == nil {
		item.CoreSkills = []string{}
	}
	if item.ExtraSkills == nil {
		item.ExtraSkills = []string{}
	}
	for _, p := range r.Description {
		item.Description = append(item.Description, p.toModel())
	}
	return item, nil
}

type addSectionRequest struct {
	Name string `json:"name"`
}

type includeRequest struct {
	Include bool `json:"include"`
}

func parseDateField(field, value string) (time.Time, error) {
	parsed, ok := formtree.ParseDate(value)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", ErrInvalidInput, field)
	}
	return parsed, nil
}
