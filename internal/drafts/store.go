package drafts

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"resume-builder/internal/formtree"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

const (
	draftKeySuffix  = "_intermediate.json"
	finalKeySuffix  = "_final.json"
	sourceKeySuffix = "_source.txt"

	jsonContentType = "application/json"
)

// Gateway persists draft and final resume documents to the object store,
// one object per user per form.
type Gateway struct {
	Store object.Store
}

// DraftKey returns the storage key of a user's intermediate document.
func DraftKey(userID string) string { return userID + draftKeySuffix }

// FinalKey returns the storage key of a user's final document.
func FinalKey(userID string) string { return userID + finalKeySuffix }

// SourceKey returns the storage key of a user's imported resume text.
func SourceKey(userID string) string { return userID + sourceKeySuffix }

// Load fetches and decodes the stored intermediate document. Every failure
// on the read path (missing object, transport error, corrupt JSON) is folded
// into ErrNoDraft so the editor starts from defaults instead of refusing to
// open.
func (g *Gateway) Load(ctx context.Context, userID string) (*ResumeDraft, error) {
	body, err := g.Store.Get(ctx, DraftKey(userID))
	if err != nil {
		telemetry.Info("draft.load_miss", map[string]any{
			"user_id": userID,
			"reason":  err.Error(),
		})
		return nil, ErrNoDraft
	}
	defer body.Close()

	node, err := formtree.Decode(body)
	if err != nil {
		telemetry.Error("draft.load_corrupt", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, ErrNoDraft
	}

	return DraftFromNode(FromDraft(node)), nil
}

// SaveDraft writes the intermediate document. There is no validation gate:
// a draft may be saved in any state. Write failures surface to the caller;
// losing a save silently is not acceptable.
func (g *Gateway) SaveDraft(ctx context.Context, userID string, d *ResumeDraft, today time.Time) error {
	node := ToDraft(DraftNode(d, today))

	var buf bytes.Buffer
	if err := formtree.Encode(&buf, node); err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := g.Store.Put(ctx, DraftKey(userID), jsonContentType, strings.NewReader(buf.String())); err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

// SaveFinal validates the submission and, only when fully valid, writes the
// final document. On validation failure nothing is written and the error
// list comes back for the caller to surface; err is reserved for storage
// failures.
func (g *Gateway) SaveFinal(ctx context.Context, userID string, d *ResumeDraft, today time.Time) (validationErrs []string, err error) {
	node := FinalNode(d, today)

	errs, ok := Validate(node)
	if !ok {
		telemetry.Info("draft.submit_invalid", map[string]any{
			"user_id":     userID,
			"error_count": len(errs),
		})
		return errs, nil
	}

	var buf bytes.Buffer
	if err := formtree.Encode(&buf, ToFinal(node)); err != nil {
		return nil, fmt.Errorf("encode final: %w", err)
	}
	if err := g.Store.Put(ctx, FinalKey(userID), jsonContentType, strings.NewReader(buf.String())); err != nil {
		return nil, fmt.Errorf("put final: %w", err)
	}
	return nil, nil
}

// SaveSource stores the plain text extracted from an imported resume file.
func (g *Gateway) SaveSource(ctx context.Context, userID, text string) error {
	if err := g.Store.Put(ctx, SourceKey(userID), "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return fmt.Errorf("put source text: %w", err)
	}
	return nil
}
