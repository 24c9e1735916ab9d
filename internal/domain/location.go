package domain

// Location is a house-number-centric place reference (§3 Location),
// grounded on the teacher's Place value-object shape combined with the
// original prototype's house-number fields.
type Location struct {
	HouseNumber    *int   `json:"house_number,omitempty"`
	AltHouseNumber *int   `json:"alt_house_number,omitempty"`
	AltVillage     string `json:"alt_village,omitempty"`
}

// NewLocation returns a Location for the given village with no house numbers.
func NewLocation(village string) Location {
	return Location{AltVillage: village}
}

// IsEmpty reports whether the Location carries no data.
func (l Location) IsEmpty() bool {
	return l.HouseNumber == nil && l.AltHouseNumber == nil && l.AltVillage == ""
}

// Consistent reports whether two Locations could describe the same place:
// their villages match AND the multisets of house numbers share at least
// one non-null element (§3).
func (l Location) Consistent(other Location) bool {
	if l.AltVillage != other.AltVillage {
		return false
	}
	mine := []int{}
	if l.HouseNumber != nil {
		mine = append(mine, *l.HouseNumber)
	}
	if l.AltHouseNumber != nil {
		mine = append(mine, *l.AltHouseNumber)
	}
	theirs := []int{}
	if other.HouseNumber != nil {
		theirs = append(theirs, *other.HouseNumber)
	}
	if other.AltHouseNumber != nil {
		theirs = append(theirs, *other.AltHouseNumber)
	}
	for _, m := range mine {
		for _, t := range theirs {
			if m == t {
				return true
			}
		}
	}
	return false
}
