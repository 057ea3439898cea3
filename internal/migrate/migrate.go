// Package migrate upconverts persisted track-flow data from earlier schema
// versions into the current shape. Detection is structural: there is no
// version tag in the persisted data, so legacy shapes are recognized by the
// fields they carry (or lack).
package migrate

// Shape classifies a raw persisted slice before any business logic touches it.
type Shape int

// Shape values, in rough order of age: current data passes through untouched,
// legacy shapes are converted, unrecognized containers are rejected for that
// slice only.
const (
	// ShapeCurrent means the data already matches the current schema
	ShapeCurrent Shape = iota
	// ShapeLegacyList means a per-job recruiter list whose entries lack firstName
	ShapeLegacyList
	// ShapeLegacyString means a draft persisted as a bare body string
	ShapeLegacyString
	// ShapeUnrecognized means the top-level container has the wrong form
	ShapeUnrecognized
)

// String returns a human-readable shape name for log lines.
func (s Shape) String() string {
	switch s {
	case ShapeCurrent:
		return "current"
	case ShapeLegacyList:
		return "legacy-list"
	case ShapeLegacyString:
		return "legacy-string"
	case ShapeUnrecognized:
		return "unrecognized"
	}
	return "unknown"
}
