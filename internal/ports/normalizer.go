package ports

// Normalizer defines the interface for text normalization.
type Normalizer interface {
	Normalize(text string) string
}

// Extractor defines the interface for extracting visible plain text from
// marked-up content.
type Extractor interface {
	Extract(content string) string
}
