package core

// TimeRange restricts results by age. Any means no restriction.
type TimeRange string

const (
	TimeAny   TimeRange = "any"
	TimeDay   TimeRange = "day"
	TimeWeek  TimeRange = "week"
	TimeMonth TimeRange = "month"
	TimeYear  TimeRange = "year"
)

// FileType restricts web results to a document format.
type FileType string

const (
	FileAny FileType = "any"
	FilePDF FileType = "pdf"
	FileDoc FileType = "doc"
	FilePPT FileType = "ppt"
	FileXLS FileType = "xls"
)

// SearchFilters are the orthogonal, independently defaulted request filters.
// Language is an ISO-639-1 code or "any".
type SearchFilters struct {
	TimeRange TimeRange `json:"time_range"`
	Language  string    `json:"language"`
	FileType  FileType  `json:"file_type"`
}

// DefaultFilters returns filters with every dimension unrestricted.
func DefaultFilters() SearchFilters {
	return SearchFilters{TimeRange: TimeAny, Language: "any", FileType: FileAny}
}

// Normalize fills empty dimensions with their "any" default so that two
// logically identical filter sets compare (and cache) equal.
func (f SearchFilters) Normalize() SearchFilters {
	if f.TimeRange == "" {
		f.TimeRange = TimeAny
	}
	if f.Language == "" {
		f.Language = "any"
	}
	if f.FileType == "" {
		f.FileType = FileAny
	}
	return f
}
