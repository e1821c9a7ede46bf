// Package types defines the data structures shared by the scanner,
// aggregator, report and command packages.
package types

type (
	// MarkerCounts holds the number of occurrences of each lexical marker.
	MarkerCounts struct {
		Public  int `json:"public" yaml:"public"`
		Private int `json:"private" yaml:"private"`
		Try     int `json:"try" yaml:"try"`
		Catch   int `json:"catch" yaml:"catch"`
	}

	// DirectorySummary aggregates every matching file in a directory's
	// entire subtree, not just its direct children.
	DirectorySummary struct {
		Size      int64        `json:"size" yaml:"size"`
		Markers   MarkerCounts `json:"markers" yaml:"markers"`
		FileCount int          `json:"fileCount" yaml:"fileCount"`
		Files     []string     `json:"files" yaml:"files"`
	}

	// FileStats is the contribution of a single matching file.
	FileStats struct {
		Name    string
		Size    int64
		Markers MarkerCounts
	}
)

// Add adds other to m elementwise.
func (m *MarkerCounts) Add(other MarkerCounts) {
	m.Public += other.Public
	m.Private += other.Private
	m.Try += other.Try
	m.Catch += other.Catch
}

// AddFile folds one file's stats into the summary.
func (s *DirectorySummary) AddFile(fs FileStats) {
	s.Size += fs.Size
	s.Markers.Add(fs.Markers)
	s.FileCount++
	s.Files = append(s.Files, fs.Name)
}
