package types

// OutputFormat selects the extract output format.
type OutputFormat string

const (
	OutputCSV OutputFormat = "csv"
	OutputPDF OutputFormat = "pdf"
)

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// Variant names the built-in schema variant: standard or sit.
	Variant string `json:"variant" yaml:"variant"`

	// SchemaFile is an optional YAML schema descriptor that overrides
	// the built-in variant.
	SchemaFile string `json:"schema_file,omitempty" yaml:"schema_file,omitempty"`
}

// RenderConfig holds settings for the output stage.
type RenderConfig struct {
	// Format selects the output format: csv or pdf.
	Format OutputFormat `json:"format" yaml:"format"`

	// TemplatePath is an optional HTML card template overriding the
	// embedded default (PDF output only).
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty"`
}

// DeckConfig holds settings for the deck store stage.
type DeckConfig struct {
	// DeckDir is the base directory for the deck (contains index/).
	DeckDir string `json:"deck_dir" yaml:"deck_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Render  RenderConfig  `json:"render" yaml:"render"`
	Deck    DeckConfig    `json:"deck" yaml:"deck"`
}
