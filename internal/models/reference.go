package models

// Brands is the fixed, ordered list of lottery brands. Export columns and the
// brand summary sheet reproduce this order exactly.
var Brands = []string{
	"Supiri Dhana Sampatha",
	"Ada Kotipathi",
	"Lagna Wasanawe",
	"Super Ball",
	"Shanida",
	"Kapruka",
	"Jayoda",
	"Sasiri",
	"Jaya Sampatha",
}

// Days is the fixed, ordered list of report days, Monday first.
var Days = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Districts lists the 25 Sri Lankan districts accepted on final submissions.
var Districts = []string{
	"Ampara",
	"Anuradhapura",
	"Badulla",
	"Batticaloa",
	"Colombo",
	"Galle",
	"Gampaha",
	"Hambantota",
	"Jaffna",
	"Kalutara",
	"Kandy",
	"Kegalle",
	"Kilinochchi",
	"Kurunegala",
	"Mannar",
	"Matale",
	"Matara",
	"Moneragala",
	"Mullaitivu",
	"Nuwara Eliya",
	"Polonnaruwa",
	"Puttalam",
	"Ratnapura",
	"Trincomalee",
	"Vavuniya",
}

// SalesMethods lists the selectable sales methods; "Other" carries free text.
var SalesMethods = []string{"Counter", "Bicycle", "Other"}

// DealerNumberLength is the exact digit count required of dealer numbers.
const DealerNumberLength = 6

// ValidDistrict reports whether name is one of the fixed districts.
func ValidDistrict(name string) bool {
	for _, d := range Districts {
		if d == name {
			return true
		}
	}
	return false
}

// ValidBrand reports whether name is one of the fixed lottery brands.
func ValidBrand(name string) bool {
	for _, b := range Brands {
		if b == name {
			return true
		}
	}
	return false
}
