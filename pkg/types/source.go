package types

// Repository identifies a remote git repository by URL.
type Repository struct {
	URL string `json:"url"`
}

// SourceRef is a pinned, content-addressed fetch descriptor for one
// directory's content snapshot. The JSON field names match the lockfile
// format written by the snapshot updater, which in turn mirrors the
// arguments of the content-addressed fetcher.
type SourceRef struct {
	URL             string `json:"url"`
	Rev             string `json:"rev"`
	Date            string `json:"date"`
	Path            string `json:"path"`
	Hash            string `json:"hash"`
	FetchLFS        bool   `json:"fetchLFS"`
	FetchSubmodules bool   `json:"fetchSubmodules"`
	DeepClone       bool   `json:"deepClone"`
	LeaveDotGit     bool   `json:"leaveDotGit"`
}

// Clone returns a copy of the SourceRef.
func (s *SourceRef) Clone() *SourceRef {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
