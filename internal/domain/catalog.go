package domain

// BookVolume is catalog data for one book. Empty fields were absent from the catalog response.
type BookVolume struct {
	InfoLink      string
	PublishedDate string
	Thumbnail     string
}
