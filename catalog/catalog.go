// Package catalog builds a categorized, deterministically ordered index
// over the raw voice list returned by the TTS provider.
package catalog

import (
	"sort"
	"strings"
)

// Category is one of the two partitions used to organize voices for
// selection.
type Category string

const (
	CategoryMale   Category = "male"
	CategoryFemale Category = "female"
)

// VoiceRecord is a single voice as reported by the catalog provider.
// Immutable once fetched.
type VoiceRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Gender   string `json:"gender"`
}

// Entry is one selectable voice inside a category bucket.
type Entry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Index is the read-only view of the catalog consumed by menu renderers.
// It is rebuilt in full on every catalog refresh.
type Index struct {
	Categories   map[Category][]Entry `json:"categories"`
	NameByID     map[string]string    `json:"name_by_id"`
	LanguageByID map[string]string    `json:"language_by_id"`
}

// Has reports whether the given voice id exists in the current catalog.
// Consumers use it to validate a stored voice selection before synthesis.
func (ix Index) Has(id string) bool {
	_, ok := ix.NameByID[id]
	return ok
}

// BuildIndex partitions and sorts records into an Index. Records whose
// gender label contains "female" go to the female bucket; everything else,
// including records with an absent or unrecognized gender, goes to the male
// bucket so that no voice is silently lost. Records without an id are
// dropped. Within each bucket entries are ordered by language priority
// (native Russian first, then multilingual, then the rest) with a
// case-insensitive name tie-break.
func BuildIndex(records []VoiceRecord) Index {
	ix := Index{
		Categories:   map[Category][]Entry{CategoryMale: {}, CategoryFemale: {}},
		NameByID:     make(map[string]string, len(records)),
		LanguageByID: make(map[string]string, len(records)),
	}

	buckets := map[Category][]VoiceRecord{}
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		ix.NameByID[r.ID] = r.Name
		ix.LanguageByID[r.ID] = r.Language

		cat := CategoryMale
		if strings.Contains(strings.ToLower(r.Gender), "female") {
			cat = CategoryFemale
		}
		buckets[cat] = append(buckets[cat], r)
	}

	for cat, recs := range buckets {
		sort.SliceStable(recs, func(i, j int) bool {
			pi, pj := languagePriority(recs[i].Language), languagePriority(recs[j].Language)
			if pi != pj {
				return pi < pj
			}
			return strings.ToLower(recs[i].Name) < strings.ToLower(recs[j].Name)
		})
		entries := make([]Entry, 0, len(recs))
		for _, r := range recs {
			entries = append(entries, Entry{Name: r.Name, ID: r.ID})
		}
		ix.Categories[cat] = entries
	}

	return ix
}

// languagePriority orders languages for display: Russian variants first,
// multilingual voices second, everything else last.
func languagePriority(lang string) int {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch l {
	case "ru", "russian", "русский":
		return 0
	}
	if strings.Contains(l, "multi") {
		return 1
	}
	return 2
}

// Flag returns a display emoji for a voice language label. Unrecognized
// languages fall back to the globe.
func Flag(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch {
	case l == "ru" || l == "russian" || l == "русский":
		return "🇷🇺"
	case strings.Contains(l, "multi"):
		return "🌐"
	case l == "en" || l == "english" || l == "английский":
		return "🇬🇧"
	case l == "us" || l == "american":
		return "🇺🇸"
	case l == "de" || l == "german" || l == "немецкий":
		return "🇩🇪"
	case l == "fr" || l == "french" || l == "французский":
		return "🇫🇷"
	case l == "es" || l == "spanish" || l == "испанский":
		return "🇪🇸"
	case l == "it" || l == "italian" || l == "итальянский":
		return "🇮🇹"
	case l == "pt" || l == "portuguese" || l == "португальский":
		return "🇵🇹"
	case l == "tr" || l == "turkish" || l == "турецкий":
		return "🇹🇷"
	case l == "pl" || l == "polish" || l == "польский":
		return "🇵🇱"
	}
	return "🌐"
}
