package resource

// Mark is a visitor's useful/favorite selection for one resource.
type Mark struct {
	Useful   bool
	Favorite bool
}

// Overlay holds per-visitor marks layered over catalog counts. It is display
// state only: applying it never changes the stored record.
type Overlay struct {
	marks map[string]Mark
}

// NewOverlay returns an empty Overlay.
func NewOverlay() *Overlay {
	return &Overlay{marks: make(map[string]Mark)}
}

// ToggleUseful flips the useful mark of id and returns the new state.
func (o *Overlay) ToggleUseful(id string) bool {
	m := o.marks[id]
	m.Useful = !m.Useful
	o.set(id, m)
	return m.Useful
}

// ToggleFavorite flips the favorite mark of id and returns the new state.
func (o *Overlay) ToggleFavorite(id string) bool {
	m := o.marks[id]
	m.Favorite = !m.Favorite
	o.set(id, m)
	return m.Favorite
}

func (o *Overlay) set(id string, m Mark) {
	if m == (Mark{}) {
		delete(o.marks, id)
		return
	}
	o.marks[id] = m
}

// Mark returns the marks of id.
func (o *Overlay) Mark(id string) Mark {
	return o.marks[id]
}

// Apply returns r with its counts raised by one for each mark set.
func (o *Overlay) Apply(r Resource) Resource {
	m := o.marks[r.ID]
	if m.Useful {
		r.UsefulCount++
	}
	if m.Favorite {
		r.FavoriteCount++
	}
	return r
}

// ApplyAll applies the overlay to every element of items in place.
func (o *Overlay) ApplyAll(items []Resource) {
	for i := range items {
		items[i] = o.Apply(items[i])
	}
}
