package resumes

import (
	"fmt"

	"github.com/pkg/errors"

	"careercraft-backend/resume/render"
)

// CreatePath is the builder page a client is sent to when there is no
// usable submitted resume.
const CreatePath = "/resume-builder/create"

var (
	ErrNotOpen       = errors.New("resume editor is not open")
	ErrNoResume      = errors.New("no submitted resume")
	ErrCorruptResume = errors.New("submitted resume is unreadable")
)

// errEditorGone marks a draft save skipped because its editor closed.
var errEditorGone = errors.New("resume editor closed")

// ExportError reports a failed document export.
type ExportError struct {
	Format render.Format
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Message is the user-facing text for the failed format.
func (e *ExportError) Message() string {
	if e.Format == render.Word {
		return "Word document generation failed. Please try again."
	}
	return "PDF generation failed. Please try again."
}
