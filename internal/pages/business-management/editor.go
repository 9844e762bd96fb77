package businessmanagement

import (
	"context"

	"marketplace-admin/internal/models"
)

// Editor buffers profile edits apart from the displayed row. Cancel
// restores the last successfully saved baseline, never the server; Save
// commits draft and baseline together, so an interrupted edit never
// partially commits.
type Editor struct {
	baseline models.BusinessPartner
	draft    models.BusinessPartner
}

func NewEditor(partner models.BusinessPartner) *Editor {
	return &Editor{
		baseline: clonePartner(partner),
		draft:    clonePartner(partner),
	}
}

// Draft exposes the in-progress document for field edits.
func (e *Editor) Draft() *models.BusinessPartner {
	return &e.draft
}

// Baseline returns the last successfully saved shape.
func (e *Editor) Baseline() models.BusinessPartner {
	return clonePartner(e.baseline)
}

// Cancel throws the draft away and restores the baseline.
func (e *Editor) Cancel() {
	e.draft = clonePartner(e.baseline)
}

// Save serializes the draft (dropping custom-detail entries with an
// empty name or detail), sends it through put, and on success promotes
// the saved shape to both the display value and the cancel baseline.
func (e *Editor) Save(ctx context.Context, put func(ctx context.Context, doc models.BusinessPartner) error) error {
	doc := clonePartner(e.draft)
	doc.MoreDetails = doc.MoreDetails.Compact()

	if err := put(ctx, doc); err != nil {
		return err
	}

	e.baseline = clonePartner(doc)
	e.draft = clonePartner(doc)
	return nil
}

// clonePartner deep-copies the slices a partner document carries so a
// draft edit can never leak into the baseline or the list row.
func clonePartner(p models.BusinessPartner) models.BusinessPartner {
	out := p
	if p.SubCategories != nil {
		out.SubCategories = make([]string, len(p.SubCategories))
		copy(out.SubCategories, p.SubCategories)
	}
	if p.MoreDetails != nil {
		out.MoreDetails = make(models.MoreDetails, len(p.MoreDetails))
		copy(out.MoreDetails, p.MoreDetails)
	}
	if p.Images != nil {
		out.Images = make([]models.Image, len(p.Images))
		copy(out.Images, p.Images)
	}
	return out
}
