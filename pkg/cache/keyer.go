package cache

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// RecordsKey addresses the records parsed from an input file.
	RecordsKey(sourceHash, format string) string

	// ArtifactKey addresses one rendered output of a set of records.
	ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists everything besides the events that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	ConfigHash  string  `json:"config_hash"`
	DPI         float64 `json:"dpi,omitempty"`
	Transparent bool    `json:"transparent,omitempty"`
	EmbedFonts  bool    `json:"embed_fonts,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RecordsKey hashes the source content together with its format.
func (DefaultKeyer) RecordsKey(sourceHash, format string) string {
	return hashKey("records", sourceHash, format)
}

// ArtifactKey hashes the records together with the render options.
func (DefaultKeyer) ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", recordsHash, opts)
}

var _ Keyer = DefaultKeyer{}
