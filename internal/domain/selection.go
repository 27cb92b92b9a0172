package domain

// Selection is either Unselected (zero value) or Selected(id).
type Selection struct {
	id string
}

// Selected returns the Selected(id) state. A blank id yields Unselected.
func Selected(id string) Selection { return Selection{id: id} }

func (s Selection) IsSelected() bool { return s.id != "" }

// ID returns the selected stop id, or "" when unselected.
func (s Selection) ID() string { return s.id }

// Is reports whether id is the selected stop.
func (s Selection) Is(id string) bool { return id != "" && s.id == id }
