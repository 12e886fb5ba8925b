package drafts

import (
	"bytes"
	"context"
	"sync"
	"time"

	"resume-builder/internal/formtree"
	"resume-builder/internal/shared/metrics"
)

// Service owns the per-user in-memory drafts. Each user's session holds
// exactly one tree, created from storage (or defaults) on first touch and
// discarded only by an explicit session drop or process end; durability
// comes solely from explicit saves.
//
// Every mutation returns the full updated snapshot, so the client always
// re-renders from the complete tree rather than patching local state.
type Service struct {
	Gateway *Gateway

	mu       sync.Mutex
	sessions map[string]*ResumeDraft

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService constructs a Service over the given gateway.
func NewService(gw *Gateway) *Service {
	return &Service{
		Gateway:  gw,
		sessions: make(map[string]*ResumeDraft),
		now:      time.Now,
	}
}

func (s *Service) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// draft returns the session tree for a user, loading the stored draft on
// first access. A failed load means a first run: start from defaults.
// Callers must hold s.mu.
func (s *Service) draft(ctx context.Context, userID string) *ResumeDraft {
	if d, ok := s.sessions[userID]; ok {
		return d
	}
	// Any load failure means "first run": the editor opens with defaults.
	d, err := s.Gateway.Load(ctx, userID)
	if err != nil {
		d = NewResumeDraft()
	}
	s.sessions[userID] = d
	return d
}

func (s *Service) snapshotLocked(d *ResumeDraft) ([]byte, error) {
	var buf bytes.Buffer
	if err := formtree.Encode(&buf, ToDraft(DraftNode(d, s.today()))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Snapshot returns the current session tree in its draft (ISO-date) form.
func (s *Service) Snapshot(ctx context.Context, userID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.draft(ctx, userID))
}

// Discard drops the in-memory session without saving. Unsaved mutations
// are simply gone; there is no rollback machinery to run.
func (s *Service) Discard(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// mutate runs fn against the user's session tree and returns the updated
// snapshot when fn succeeds.
func (s *Service) mutate(ctx context.Context, userID string, fn func(*ResumeDraft) error) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(ctx, userID)
	if err := fn(d); err != nil {
		return nil, err
	}
	return s.snapshotLocked(d)
}

// UpdateInfo replaces the personal info; display labels re-derive here.
func (s *Service) UpdateInfo(ctx context.Context, userID string, info PersonalInfo) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		d.SetInfo(info)
		return nil
	})
}

// AddEducation appends a blank education entry.
func (s *Service) AddEducation(ctx context.Context, userID string) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		d.AddEducation(s.today())
		return nil
	})
}

// SetEducation replaces the education entry at idx.
func (s *Service) SetEducation(ctx context.Context, userID string, idx int, entry EducationEntry) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		return d.SetEducation(idx, entry)
	})
}

// RemoveEducation deletes the education entry at idx.
func (s *Service) RemoveEducation(ctx context.Context, userID string, idx int) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		return d.RemoveEducation(idx)
	})
}

// AddSection upserts a section by name.
func (s *Service) AddSection(ctx context.Context, userID string, name SectionName) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		d.AddSection(name)
		return nil
	})
}

// SetInclude flips a section's include flag.
func (s *Service) SetInclude(ctx context.Context, userID string, name SectionName, include bool) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		return d.SetInclude(name, include)
	})
}

// AddItem appends a blank item to a section.
func (s *Service) AddItem(ctx context.Context, userID string, name SectionName) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		_, err := d.AddItem(name, s.today())
		return err
	})
}

// SetItem replaces a section item.
func (s *Service) SetItem(ctx context.Context, userID string, name SectionName, idx int, item SectionItem) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		return d.SetItem(name, idx, item)
	})
}

// RemoveItem deletes a section item.
func (s *Service) RemoveItem(ctx context.Context, userID string, name SectionName, idx int) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		return d.RemoveItem(name, idx)
	})
}

// AddPoint appends a blank description point to a section item.
func (s *Service) AddPoint(ctx context.Context, userID string, name SectionName, idx int) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		_, err := d.AddPoint(name, idx)
		return err
	})
}

// SetPoint replaces a description point.
func (s *Service) SetPoint(ctx context.Context, userID string, name SectionName, idx, pointIdx int, point DescriptionPoint) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		return d.SetPoint(name, idx, pointIdx, point)
	})
}

// RemovePoint deletes a description point.
func (s *Service) RemovePoint(ctx context.Context, userID string, name SectionName, idx, pointIdx int) ([]byte, error) {
	return s.mutate(ctx, userID, func(d *ResumeDraft) error {
		return d.RemovePoint(name, idx, pointIdx)
	})
}

// SaveDraft persists the session tree as the intermediate document.
func (s *Service) SaveDraft(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(ctx, userID)

	start := time.Now()
	err := s.Gateway.SaveDraft(ctx, userID, d, s.today())
	metrics.ObserveSaveDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return err
	}
	metrics.IncDraftSaved()
	return nil
}

// Submit validates the session tree and persists the final document when
// it passes. The returned list is non-empty exactly when validation failed;
// err reports storage problems only.
func (s *Service) Submit(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(ctx, userID)

	start := time.Now()
	validationErrs, err := s.Gateway.SaveFinal(ctx, userID, d, s.today())
	metrics.ObserveSaveDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return nil, err
	}
	if len(validationErrs) > 0 {
		metrics.IncValidationFailed()
		return validationErrs, nil
	}
	metrics.IncFinalSubmitted()
	return nil, nil
}

// ImportSource stores extracted text from an uploaded resume file next to
// the user's draft.
func (s *Service) ImportSource(ctx context.Context, userID, text string) error {
	return s.Gateway.SaveSource(ctx, userID, text)
}
