package models

// Category labels for expense records. An expense is expected to carry exactly
// one of these, encoded as the is_* boolean flags on the stored document.
const (
	CategoryGrocery        = "grocery"
	CategoryEntertainment  = "entertainment"
	CategoryTransportation = "transportation"
	CategoryFoodDrink      = "food_drink"
	CategoryShopping       = "shopping"
	CategoryUtilities      = "utilities"
	CategoryHealthcare     = "healthcare"
	CategoryEducation      = "education"
	CategoryOther          = "other"
)

// Categories lists every category label in the priority order used when
// reading flags back out of a record.
var Categories = []string{
	CategoryGrocery,
	CategoryEntertainment,
	CategoryTransportation,
	CategoryFoodDrink,
	CategoryShopping,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

// CategoryFlags is the fixed set of nine mutually-intended-exclusive booleans
// classifying an expense. The schema does not enforce exclusivity: readers
// must tolerate zero or multiple set flags and treat such records as
// uncategorized.
type CategoryFlags struct {
	IsGrocery        bool `json:"is_grocery" bson:"is_grocery"`
	IsEntertainment  bool `json:"is_entertainment" bson:"is_entertainment"`
	IsTransportation bool `json:"is_transportation" bson:"is_transportation"`
	IsFoodDrink      bool `json:"is_food_drink" bson:"is_food_drink"`
	IsShopping       bool `json:"is_shopping" bson:"is_shopping"`
	IsUtilities      bool `json:"is_utilities" bson:"is_utilities"`
	IsHealthcare     bool `json:"is_healthcare" bson:"is_healthcare"`
	IsEducation      bool `json:"is_education" bson:"is_education"`
	IsOther          bool `json:"is_other" bson:"is_other"`
}

// FlagsFor returns a CategoryFlags value with exactly the flag for the given
// label set. An unknown label maps to other.
func FlagsFor(category string) CategoryFlags {
	var f CategoryFlags
	switch category {
	case CategoryGrocery:
		f.IsGrocery = true
	case CategoryEntertainment:
		f.IsEntertainment = true
	case CategoryTransportation:
		f.IsTransportation = true
	case CategoryFoodDrink:
		f.IsFoodDrink = true
	case CategoryShopping:
		f.IsShopping = true
	case CategoryUtilities:
		f.IsUtilities = true
	case CategoryHealthcare:
		f.IsHealthcare = true
	case CategoryEducation:
		f.IsEducation = true
	default:
		f.IsOther = true
	}
	return f
}

// IsValidCategory reports whether label is one of the nine category labels.
func IsValidCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}

// Category returns the label of the first set flag in priority order, or an
// empty string when no flag is set (uncategorized).
func (f CategoryFlags) Category() string {
	switch {
	case f.IsGrocery:
		return CategoryGrocery
	case f.IsEntertainment:
		return CategoryEntertainment
	case f.IsTransportation:
		return CategoryTransportation
	case f.IsFoodDrink:
		return CategoryFoodDrink
	case f.IsShopping:
		return CategoryShopping
	case f.IsUtilities:
		return CategoryUtilities
	case f.IsHealthcare:
		return CategoryHealthcare
	case f.IsEducation:
		return CategoryEducation
	case f.IsOther:
		return CategoryOther
	}
	return ""
}

// SetCount returns how many flags are set. Well-formed records have exactly
// one, but the schema does not enforce it.
func (f CategoryFlags) SetCount() int {
	count := 0
	for _, set := range []bool{
		f.IsGrocery, f.IsEntertainment, f.IsTransportation, f.IsFoodDrink,
		f.IsShopping, f.IsUtilities, f.IsHealthcare, f.IsEducation, f.IsOther,
	} {
		if set {
			count++
		}
	}
	return count
}
