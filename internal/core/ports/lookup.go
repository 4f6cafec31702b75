package ports

// Lookup selects a single record by one recognized field. It is resolved
// from the raw query string at the HTTP boundary, so the service layer only
// ever sees an explicit field/value pair instead of an untyped map.
type Lookup struct {
	Field string
	Value string
}
