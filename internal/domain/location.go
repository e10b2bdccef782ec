package domain

// LocationMap maps a request location to the code used in hostnames.
// Values are copied on construction and never mutated afterwards.
type LocationMap struct {
	codes map[string]string
}

// DefaultLocations returns the built-in location codes
func DefaultLocations() LocationMap {
	return NewLocationMap(map[string]string{
		"Singapore": "SNG",
		"London":    "LON",
		"New York":  "NYC",
	})
}

// NewLocationMap creates a location map from the given codes
func NewLocationMap(codes map[string]string) LocationMap {
	m := make(map[string]string, len(codes))
	for k, v := range codes {
		m[k] = v
	}
	return LocationMap{codes: m}
}

// With returns a copy of the map extended (or overridden) by extra
func (l LocationMap) With(extra map[string]string) LocationMap {
	m := make(map[string]string, len(l.codes)+len(extra))
	for k, v := range l.codes {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}
	return LocationMap{codes: m}
}

// Code returns the code for a location, or UnknownLocationError
func (l LocationMap) Code(location string) (string, error) {
	code, ok := l.codes[location]
	if !ok {
		return "", &UnknownLocationError{Location: location}
	}
	return code, nil
}

// Len returns the number of mapped locations
func (l LocationMap) Len() int {
	return len(l.codes)
}
