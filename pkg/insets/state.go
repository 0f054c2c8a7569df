package insets

// State holds the most recent snapshot, or nothing if the window has not
// reported yet. Each Store overwrites the previous snapshot.
//
// State is not synchronized. The plugin only touches it from the UI thread.
type State struct {
	last    Snapshot
	present bool
}

// Store replaces the held snapshot.
func (s *State) Store(snap Snapshot) {
	s.last = snap
	s.present = true
}

// Load returns the held snapshot and whether one has arrived.
func (s *State) Load() (Snapshot, bool) {
	return s.last, s.present
}

// Clear forgets the held snapshot.
func (s *State) Clear() {
	s.last = Snapshot{}
	s.present = false
}
