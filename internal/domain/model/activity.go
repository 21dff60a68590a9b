// Package model contains domain models passed between layers.
package model

// Activity describes one extracurricular activity and its roster.
// Fields mirror the OpenAPI schema for /activities.
type Activity struct {
	Name            string   // unique activity name, used as the URL path segment
	Description     string   // what the activity is about
	Schedule        string   // human-readable meeting times
	MaxParticipants int      // advertised capacity, informational only
	Participants    []string // student emails in signup order
}

// HasParticipant reports whether email is already on the roster.
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}

	return false
}

// SpotsLeft returns the advertised capacity minus the roster size.
// It can go negative because signups past capacity are accepted.
func (a *Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Clone returns a deep copy so callers can hand out activities
// without sharing the roster slice.
func (a *Activity) Clone() Activity {
	out := *a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)

	return out
}
