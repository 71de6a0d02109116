package consent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIntent is returned by ParseIntent for names outside of the intent set
var ErrUnknownIntent = errors.New("unknown intent")

// Intent is a user action forwarded by the presentation layer
type Intent int

// all intents the controller understands
const (
	AcceptAll Intent = iota + 1
	RejectAll
	OpenDetails
	ToggleAnalytics
	ToggleMarketing
	Save
	Back
)

var intentNames = map[Intent]string{
	AcceptAll:       "accept-all",
	RejectAll:       "reject-all",
	OpenDetails:     "open-details",
	ToggleAnalytics: "toggle-analytics",
	ToggleMarketing: "toggle-marketing",
	Save:            "save",
	Back:            "back",
}

// Intents returns all intents in declaration order
func Intents() []Intent {
	return []Intent{AcceptAll, RejectAll, OpenDetails, ToggleAnalytics, ToggleMarketing, Save, Back}
}

// String returns the kebab-case name of the intent
func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// ParseIntent converts a name like "accept-all" to Intent. Case and surrounding spaces are ignored.
func ParseIntent(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range intentNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}
