package drafts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/formtree"
)

func TestToDraftFromDraftRoundTrip(t *testing.T) {
	d := NewResumeDraft()
	d.SetInfo(filledInfo())
	d.AddEducation(testToday)
	d.AddSection(SectionExperience)
	if _, err := d.AddItem(SectionExperience, testToday); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	node := DraftNode(d, testToday)
	back := FromDraft(ToDraft(node))
	if !formtree.Equal(node, back) {
		t.Fatal("FromDraft(ToDraft(x)) did not reproduce the tree")
	}
}

func TestToDraftIdentityWithoutDates(t *testing.T) {
	rec := formtree.Record()
	rec.Set("firstname", formtree.String("Jane"))
	rec.Set("tags", formtree.List(formtree.String("go"), formtree.String("sql")))
	rec.Set("count", formtree.Number(2))

	if !formtree.Equal(rec, ToDraft(rec)) {
		t.Fatal("ToDraft changed a date-free tree")
	}
	if !formtree.Equal(rec, ToFinal(rec)) {
		t.Fatal("ToFinal changed a date-free tree")
	}
}

func TestToFinalFormatsMonthYear(t *testing.T) {
	rec := formtree.Record()
	rec.Set("start", formtree.Date(time.Date(2023, time.July, 14, 0, 0, 0, 0, time.UTC)))

	out := ToFinal(rec)
	start, _ := out.Get("start")
	if start.Kind != formtree.KindString || start.Str != "July 2023" {
		t.Fatalf("expected \"July 2023\", got %+v", start)
	}
}

func TestFromDraftLeavesMalformedDatesAlone(t *testing.T) {
	rec := formtree.Record()
	rec.Set("start", formtree.String("2023-7-4"))
	rec.Set("note", formtree.String("met 2023-07-04 deadline"))

	out := FromDraft(rec)
	start, _ := out.Get("start")
	if start.Kind != formtree.KindString || start.Str != "2023-7-4" {
		t.Fatalf("malformed date must pass through, got %+v", start)
	}
	note, _ := out.Get("note")
	if note.Kind != formtree.KindString {
		t.Fatalf("prose must pass through, got kind %d", note.Kind)
	}
}

func TestStillWorkingEndDateRetained(t *testing.T) {
	d := NewResumeDraft()
	d.AddSection(SectionExperience)
	if _, err := d.AddItem(SectionExperience, testToday); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	end := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	item := SectionItem{
		Organization: "Acme",
		Location:     "Remote",
		Position:     "Engineer",
		Start:        time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		End:          end,
		StillWorking: true,
	}
	if err := d.SetItem(SectionExperience, 0, item); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	var buf bytes.Buffer
	if err := formtree.Encode(&buf, ToDraft(DraftNode(d, testToday))); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"end":"2025-11-01"`) {
		t.Fatalf("still-working end date missing from draft: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"still_working":true`) {
		t.Fatalf("still_working flag missing: %s", buf.String())
	}
}
