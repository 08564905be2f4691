package domain

// ContentFormat identifies how a statute document's content is encoded.
type ContentFormat string

const (
	// FormatMarkup is raw HTML body content from the national blob store.
	FormatMarkup ContentFormat = "markup"
	// FormatStructuredText is pre-rendered text from a provincial collection.
	FormatStructuredText ContentFormat = "structured_text"
)

// StatuteDocument is the full text of one normative document.
// Constructed fresh per fetch; never cached or mutated.
type StatuteDocument struct {
	Content   string
	Title     string
	Category  string
	Number    string
	SourceURL string
	Format    ContentFormat
}

// StatuteMeta is the metadata projection of a national statute document.
type StatuteMeta struct {
	Title    string
	Category string
	Number   string
	URL      string
}
