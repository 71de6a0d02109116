package domain

import "time"

// Category is a cookie usage category the visitor can consent to
type Category string

// supported categories
const (
	CategoryNecessary Category = "necessary"
	CategoryAnalytics Category = "analytics"
	CategoryMarketing Category = "marketing"
)

// Categories returns all categories in display order
func Categories() []Category {
	return []Category{CategoryNecessary, CategoryAnalytics, CategoryMarketing}
}

// Preferences holds per-category choices without a decision time.
// Used as the draft while the detailed view is open.
type Preferences struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// DefaultPreferences returns the initial draft: only necessary cookies enabled
func DefaultPreferences() Preferences {
	return Preferences{Necessary: true}
}

// ConsentRecord is the persisted consent decision. Values are never modified in place,
// every decision produces a new record.
type ConsentRecord struct {
	Necessary bool
	Analytics bool
	Marketing bool
	DecidedAt time.Time // zero if the stored record carried no decision time
}

// NewConsentRecord makes a record from preferences decided at the given time.
// Necessary is always set, whatever the preferences say.
func NewConsentRecord(prefs Preferences, now time.Time) ConsentRecord {
	return ConsentRecord{
		Necessary: true,
		Analytics: prefs.Analytics,
		Marketing: prefs.Marketing,
		DecidedAt: now.UTC(),
	}
}

// AcceptAllRecord makes a record allowing every category
func AcceptAllRecord(now time.Time) ConsentRecord {
	return NewConsentRecord(Preferences{Analytics: true, Marketing: true}, now)
}

// RejectAllRecord makes a record allowing only necessary cookies
func RejectAllRecord(now time.Time) ConsentRecord {
	return NewConsentRecord(Preferences{}, now)
}

// Allows reports whether the record permits the given category
func (r ConsentRecord) Allows(c Category) bool {
	switch c {
	case CategoryNecessary:
		return true
	case CategoryAnalytics:
		return r.Analytics
	case CategoryMarketing:
		return r.Marketing
	default:
		return false
	}
}

// Preferences returns the record's choices without the decision time
func (r ConsentRecord) Preferences() Preferences {
	return Preferences{Necessary: true, Analytics: r.Analytics, Marketing: r.Marketing}
}

// Equal reports whether two records hold the same choices and decision time
func (r ConsentRecord) Equal(other ConsentRecord) bool {
	return r.Necessary == other.Necessary &&
		r.Analytics == other.Analytics &&
		r.Marketing == other.Marketing &&
		r.DecidedAt.Equal(other.DecidedAt)
}
