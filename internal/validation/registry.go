package validation

import "sort"

// registry maps a system id to its validator constructor. Looking up an
// unknown id yields "no validator"; the caller must reject the submission
// without recording a result.
var registry = map[string]func() *StreamValidator{
	"nnad":   NewCaseNotificationValidator,
	"mumps":  NewMumpsValidator,
	"nrevss": NewLabSurveillanceValidator,
}

// Get returns a fresh validator for the system id, or ok == false when no
// validator is configured.
func Get(systemID string) (*StreamValidator, bool) {
	ctor, ok := registry[systemID]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Registered lists the system ids with a configured validator, sorted.
func Registered() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
