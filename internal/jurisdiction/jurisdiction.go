// Package jurisdiction holds the reference tables for US reporting
// jurisdictions: FIPS codes, postal abbreviations, full names, and the
// 3-letter IIS grantee codes used by some registry feeds.
package jurisdiction

import (
	"sort"
	"strconv"
	"strings"
)

// Info is the canonical record for one jurisdiction.
type Info struct {
	FIPS int    `json:"fips"`
	Abbr string `json:"abbr"`
	Name string `json:"name"`
	// GranteeCode is set only when the lookup was made through a registry
	// grantee code (city and territory registries share a state abbreviation).
	GranteeCode string `json:"grantee_code,omitempty"`
}

// fipsToName covers the 50 states, DC, and the 5 reporting territories.
var fipsToName = map[int]string{
	1: "Alabama", 2: "Alaska", 4: "Arizona", 5: "Arkansas", 6: "California",
	8: "Colorado", 9: "Connecticut", 10: "Delaware", 11: "District of Columbia",
	12: "Florida", 13: "Georgia", 15: "Hawaii", 16: "Idaho", 17: "Illinois",
	18: "Indiana", 19: "Iowa", 20: "Kansas", 21: "Kentucky", 22: "Louisiana",
	23: "Maine", 24: "Maryland", 25: "Massachusetts", 26: "Michigan",
	27: "Minnesota", 28: "Mississippi", 29: "Missouri", 30: "Montana",
	31: "Nebraska", 32: "Nevada", 33: "New Hampshire", 34: "New Jersey",
	35: "New Mexico", 36: "New York", 37: "North Carolina", 38: "North Dakota",
	39: "Ohio", 40: "Oklahoma", 41: "Oregon", 42: "Pennsylvania",
	44: "Rhode Island", 45: "South Carolina", 46: "South Dakota", 47: "Tennessee",
	48: "Texas", 49: "Utah", 50: "Vermont", 51: "Virginia", 53: "Washington",
	54: "West Virginia", 55: "Wisconsin", 56: "Wyoming",
	60: "American Samoa", 66: "Guam", 69: "Northern Mariana Islands",
	72: "Puerto Rico", 78: "Virgin Islands",
}

var abbrToFIPS = map[string]int{
	"AL": 1, "AK": 2, "AZ": 4, "AR": 5, "CA": 6, "CO": 8, "CT": 9, "DE": 10,
	"DC": 11, "FL": 12, "GA": 13, "HI": 15, "ID": 16, "IL": 17, "IN": 18,
	"IA": 19, "KS": 20, "KY": 21, "LA": 22, "ME": 23, "MD": 24, "MA": 25,
	"MI": 26, "MN": 27, "MS": 28, "MO": 29, "MT": 30, "NE": 31, "NV": 32,
	"NH": 33, "NJ": 34, "NM": 35, "NY": 36, "NC": 37, "ND": 38, "OH": 39,
	"OK": 40, "OR": 41, "PA": 42, "RI": 44, "SC": 45, "SD": 46, "TN": 47,
	"TX": 48, "UT": 49, "VT": 50, "VA": 51, "WA": 53, "WV": 54, "WI": 55,
	"WY": 56,
	"AS": 60, "GU": 66, "MP": 69, "PR": 72, "VI": 78,
}

var fipsToAbbr = func() map[int]string {
	m := make(map[int]string, len(abbrToFIPS))
	for abbr, fips := range abbrToFIPS {
		m[fips] = abbr
	}
	return m
}()

// granteeToAbbr maps IIS grantee codes onto state abbreviations. The mapping
// is many-to-one: city registries (New York City, Chicago, Philadelphia,
// Houston) resolve to their state.
var granteeToAbbr = map[string]string{
	"BAA": "NY", "CAA": "CA", "CBA": "IL", "CCA": "CO", "CDA": "CT", "DEA": "DE",
	"DCA": "DC", "FLA": "FL", "GAA": "GA", "HIA": "HI", "IDA": "ID", "ILA": "IL",
	"INA": "IN", "IAA": "IA", "KSA": "KS", "KYA": "KY", "LAA": "LA", "MEA": "ME",
	"MDA": "MD", "MAA": "MA", "MIA": "MI", "MNA": "MN", "MSA": "MS", "MOA": "MO",
	"MTA": "MT", "NEA": "NE", "NVA": "NV", "NHA": "NH", "NJA": "NJ", "NMA": "NM",
	"NYA": "NY", "NCA": "NC", "NDA": "ND", "OHA": "OH", "OKA": "OK", "ORA": "OR",
	"PAA": "PA", "PBA": "PA", "RIA": "RI", "SCA": "SC", "SDA": "SD", "TNA": "TN",
	"TXA": "TX", "TBA": "TX", "UTA": "UT", "VTA": "VT", "VAA": "VA", "WAA": "WA",
	"WVA": "WV", "WIA": "WI", "WYA": "WY", "ASA": "AS", "GUA": "GU", "MPA": "MP",
	"PRA": "PR", "VIA": "VI",
}

// ByAbbr looks up a jurisdiction by its 2-letter postal abbreviation.
// Matching is case-insensitive.
func ByAbbr(abbr string) (Info, bool) {
	code := strings.ToUpper(strings.TrimSpace(abbr))
	fips, ok := abbrToFIPS[code]
	if !ok {
		return Info{}, false
	}
	return Info{FIPS: fips, Abbr: code, Name: fipsToName[fips]}, true
}

// ByFIPS looks up a jurisdiction by its numeric FIPS code.
func ByFIPS(fips int) (Info, bool) {
	name, ok := fipsToName[fips]
	if !ok {
		return Info{}, false
	}
	return Info{FIPS: fips, Abbr: fipsToAbbr[fips], Name: name}, true
}

// ByGranteeCode looks up a jurisdiction by its 3-letter IIS grantee code.
func ByGranteeCode(code string) (Info, bool) {
	grantee := strings.ToUpper(strings.TrimSpace(code))
	abbr, ok := granteeToAbbr[grantee]
	if !ok {
		return Info{}, false
	}
	info, ok := ByAbbr(abbr)
	if !ok {
		return Info{}, false
	}
	info.GranteeCode = grantee
	return info, true
}

// ByName looks up a jurisdiction by its full name (case-insensitive).
func ByName(name string) (Info, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for fips, n := range fipsToName {
		if strings.ToLower(n) == want {
			return Info{FIPS: fips, Abbr: fipsToAbbr[fips], Name: n}, true
		}
	}
	return Info{}, false
}

// Resolve tries a raw token first as an abbreviation, then as a numeric FIPS
// code. Unresolvable input returns ok == false, never an error.
func Resolve(token string) (Info, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Info{}, false
	}
	if info, ok := ByAbbr(s); ok {
		return info, true
	}
	if fips, err := strconv.Atoi(s); err == nil {
		return ByFIPS(fips)
	}
	return Info{}, false
}

// IsValidAbbr reports whether the token is a known jurisdiction abbreviation.
func IsValidAbbr(abbr string) bool {
	_, ok := ByAbbr(abbr)
	return ok
}

// All returns every jurisdiction ordered by FIPS code.
func All() []Info {
	list := make([]Info, 0, len(fipsToName))
	for fips, name := range fipsToName {
		list = append(list, Info{FIPS: fips, Abbr: fipsToAbbr[fips], Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FIPS < list[j].FIPS })
	return list
}
