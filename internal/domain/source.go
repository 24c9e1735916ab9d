package domain

import "fmt"

// Source is a reference to the record a Conclusion (Fact, Name) was drawn
// from, grounded on the original prototype's Source class: a repository,
// volume, page, and entry number rather than the teacher's full GEDCOM
// Source/Citation/Repository entity graph (out of scope here — see
// DESIGN.md).
type Source struct {
	Repository  string `json:"repository,omitempty"`
	Volume      string `json:"volume,omitempty"`
	PageNumber  *int   `json:"page_number,omitempty"`
	EntryNumber *int   `json:"entry_number,omitempty"`
	ImageFile   string `json:"image_file,omitempty"`
}

// String renders the Source for logging.
func (s Source) String() string {
	return fmt.Sprintf("%s, volume %s, page %v, entry %v (%s)", s.Repository, s.Volume, intOrNil(s.PageNumber), intOrNil(s.EntryNumber), s.ImageFile)
}

func intOrNil(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
