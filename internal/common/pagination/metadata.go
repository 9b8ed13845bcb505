package pagination

// Metadata contains the page position included in listing responses.
type Metadata struct {
	Page     int  `json:"page"`                // Current page number (1-based)
	HasNext  bool `json:"has_next"`            // Another page follows
	NextPage *int `json:"next_page,omitempty"` // Set only when HasNext
}

// NewMetadata builds Metadata for page.
func NewMetadata(page int, hasNext bool) Metadata {
	m := Metadata{Page: page, HasNext: hasNext}
	if hasNext {
		next := page + 1
		m.NextPage = &next
	}
	return m
}
