package section

import "github.com/arloliu/msbt/errs"

// handle is the release bookkeeping shared by every section editor.
//
// Edits are applied to the section immediately; derived fields are restored by
// the editor-specific finalize step when the handle is released, followed by the
// owner's onRelease hook. Release is idempotent and a released handle rejects
// further edits.
type handle struct {
	onRelease func()
	released  bool
}

func (h *handle) check() error {
	if h.released {
		return errs.ErrEditorReleased
	}

	return nil
}

func (h *handle) release(finalize func()) {
	if h.released {
		return
	}
	h.released = true

	finalize()
	if h.onRelease != nil {
		h.onRelease()
	}
}
