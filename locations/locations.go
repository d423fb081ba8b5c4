// Package locations holds the static block/panchayat table for the
// Mohiuddin Nagar constituency (137). The table ships with the binary;
// there is no way to configure it at runtime.
package locations

import "sort"

const (
	// BlockPlaceholder and PanchayatPlaceholder are the "no selection"
	// sentinels the entry form submits when nothing was chosen.
	BlockPlaceholder     = "Select Block"
	PanchayatPlaceholder = "Select Panchayat"

	// DefaultVidhanSabha is the constituency name pre-filled on the form.
	DefaultVidhanSabha = "Mohiuddin Nagar"
)

var panchayatsByBlock = map[string][]string{
	"Mohiuddin Nagar Block": {
		"Bhadaia", "Bochaha", "Dubaha", "Harail", "Kalyanpur Basti West",
		"Karim Nagar", "Kalyanpur Basti East", "Kursaha", "Madudabad",
		"MohiuddinNagar North", "MohiuddinNagar South", "Mohmadipur",
		"Raja Jan", "Raspur Patasia East", "Raspur Patasia West",
		"Siwasingh Pur", "Tetar Pur",
	},
	"Mohanpur Block": {
		"Baghara", "Dasahra", "Dharni Patti West", "Dharni Patti East",
		"Dumri South", "Dumri North", "Jalalpur", "Madhupur Sarai",
		"Mohanpur", "Rajpur", "Bishanpur Ber",
	},
	"Patori Block": {
		"Dhamaun North", "Dhamaun South", "Hetanpur", "Inaetpur",
		"Rupauli", "Shiura", "Tara Dhamaun", "Chaksaho",
	},
}

// blockOrder keeps the form's display order stable; map iteration would not.
var blockOrder = []string{
	"Mohiuddin Nagar Block",
	"Mohanpur Block",
	"Patori Block",
}

var allPanchayats []string

func init() {
	seen := make(map[string]bool)
	for _, names := range panchayatsByBlock {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				allPanchayats = append(allPanchayats, name)
			}
		}
	}
	sort.Strings(allPanchayats)
}

// Blocks returns the block names in display order.
func Blocks() []string {
	out := make([]string, len(blockOrder))
	copy(out, blockOrder)
	return out
}

// Panchayats returns the panchayats of one block in table order.
// Unknown blocks yield an empty slice, not an error.
func Panchayats(block string) []string {
	names, ok := panchayatsByBlock[block]
	if !ok {
		return []string{}
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// AllPanchayats returns every panchayat across all blocks, deduplicated and
// sorted lexicographically. The flattened list carries no block association.
func AllPanchayats() []string {
	out := make([]string, len(allPanchayats))
	copy(out, allPanchayats)
	return out
}

// IsBlock reports whether name is a real block (the placeholder is not).
func IsBlock(name string) bool {
	_, ok := panchayatsByBlock[name]
	return ok
}

// IsPanchayat reports whether name appears in any block's list.
func IsPanchayat(name string) bool {
	i := sort.SearchStrings(allPanchayats, name)
	return i < len(allPanchayats) && allPanchayats[i] == name
}

// PanchayatBelongsTo reports whether panchayat sits under block in the
// source table. Validation deliberately does not call this; the form allows
// any block/panchayat combination.
func PanchayatBelongsTo(block, panchayat string) bool {
	for _, name := range panchayatsByBlock[block] {
		if name == panchayat {
			return true
		}
	}
	return false
}
