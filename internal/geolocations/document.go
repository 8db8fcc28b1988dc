package geolocations

// Object is a JSON object exactly as the service returned it.
// The client imposes no schema; use the accessors to check that a field is present.
type Object map[string]any

// List is a JSON array of objects.
type List []Object

// String returns the string field key and whether it was present with a string value.
func (o Object) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// Object returns the nested object under key.
func (o Object) Object(key string) (Object, bool) {
	m, ok := o[key].(map[string]any)
	return Object(m), ok
}

// Array returns the nested array under key.
func (o Object) Array(key string) ([]any, bool) {
	a, ok := o[key].([]any)
	return a, ok
}

// Find returns the first object for which match reports true.
func (l List) Find(match func(Object) bool) (Object, bool) {
	for _, o := range l {
		if match(o) {
			return o, true
		}
	}
	return nil, false
}
