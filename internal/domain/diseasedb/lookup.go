// Package diseasedb holds the static disease reference table and its
// lookup/search operations. The table is read-only reference data keyed by
// canonical disease name.
package diseasedb

import (
	"fmt"
	"sort"
	"strings"
)

// Lookup resolves a disease name to its record. Matching runs in three tiers:
// exact name, case-insensitive name, then case-insensitive substring in either
// direction. Unmatched names get a generic fallback record.
func Lookup(name string) Info {
	if info, ok := table[name]; ok {
		return info
	}

	lower := strings.ToLower(name)
	for key, info := range table {
		if strings.ToLower(key) == lower {
			return info
		}
	}
	for key, info := range table {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			return info
		}
	}

	return fallbackInfo(name)
}

// Search returns every entry whose name, crop, or description contains the
// query, case-insensitively. Results are sorted by name for stable output.
func Search(query string) []Entry {
	q := strings.ToLower(query)
	results := make([]Entry, 0)
	for name, info := range table {
		if strings.Contains(strings.ToLower(name), q) ||
			strings.Contains(strings.ToLower(info.Crop), q) ||
			strings.Contains(strings.ToLower(info.Description), q) {
			results = append(results, Entry{Name: name, Info: info})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

// All lists the full table sorted by name.
func All() []Entry {
	entries := make([]Entry, 0, len(table))
	for name, info := range table {
		entries = append(entries, Entry{Name: name, Info: info})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func fallbackInfo(name string) Info {
	return Info{
		Crop:           "Unknown",
		Severity:       "Unknown",
		ScientificName: "Unknown",
		Description:    fmt.Sprintf("Information about %s is not available in our database. Please consult with a local agricultural expert.", name),
		Symptoms:       []string{"Information not available"},
		Treatment:      []string{"Consult with agricultural extension officer or plant pathologist"},
		Prevention:     []string{"Regular monitoring and good agricultural practices"},
		OrganicTreatment: []string{
			"Consult with organic farming specialist",
		},
		CostEstimate: "Unknown",
	}
}
