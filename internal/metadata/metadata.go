// Package metadata reads and writes the per-project record describing a
// vendored third-party project: where its upstream lives and which version
// the local mirror currently holds. Only the version field is ever written
// back by the update engine.
package metadata

// FileName is the record file at the root of each vendored project.
const FileName = "vendsync.yaml"

// SourceKind classifies a project's upstream.
type SourceKind string

const (
	KindGit     SourceKind = "Git"
	KindArchive SourceKind = "Archive"
	KindOther   SourceKind = "Other"
)

// Identifier locates a project's upstream and records the version the local
// mirror is at. Version is either a 40-character lowercase hex commit hash
// or an opaque tag string.
type Identifier struct {
	Kind    SourceKind `yaml:"kind"`
	Locator string     `yaml:"locator"`
	Version string     `yaml:"version"`
}

// Project is one vendored project's metadata record.
type Project struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Identifier  Identifier `yaml:"identifier"`

	// Path is where the record was loaded from; not serialized.
	Path string `yaml:"-"`
}
