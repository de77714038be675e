package section

// GlobalIDEditor is the scoped mutation handle of a GlobalIDTable.
type GlobalIDEditor struct {
	handle
	t *GlobalIDTable
}

// Edit returns an editor for t. onRelease, if not nil, runs on release.
func (t *GlobalIDTable) Edit(onRelease func()) *GlobalIDEditor {
	return &GlobalIDEditor{handle: handle{onRelease: onRelease}, t: t}
}

// Len returns the current number of bindings.
func (e *GlobalIDEditor) Len() int {
	return len(e.t.ids)
}

// Set binds id to index, replacing any previous binding of id.
func (e *GlobalIDEditor) Set(id, index uint32) error {
	if err := e.check(); err != nil {
		return err
	}
	e.t.ids[id] = index

	return nil
}

// Delete removes the binding of id and reports whether it existed.
func (e *GlobalIDEditor) Delete(id uint32) (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	_, ok := e.t.ids[id]
	delete(e.t.ids, id)

	return ok, nil
}

// DropIndex removes every binding to index and moves bindings to higher indices
// down by one, following the removal of a message.
func (e *GlobalIDEditor) DropIndex(index uint32) error {
	if err := e.check(); err != nil {
		return err
	}
	for id, i := range e.t.ids {
		switch {
		case i == index:
			delete(e.t.ids, id)
		case i > index:
			e.t.ids[id] = i - 1
		}
	}

	return nil
}

// Release runs the owner's release hook.
func (e *GlobalIDEditor) Release() {
	e.release(func() {})
}
