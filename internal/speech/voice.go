package speech

import "sort"

// Quality is the platform's voice quality tier.
type Quality int

const (
	QualityStandard Quality = iota
	QualityEnhanced
	QualityPremium
)

func (q Quality) String() string {
	switch q {
	case QualityEnhanced:
		return "enhanced"
	case QualityPremium:
		return "premium"
	default:
		return "standard"
	}
}

// Voice references an entry in the platform's voice catalog. The ID is
// opaque and unique; the controller only ever holds the ID of the selected
// voice and revalidates it whenever the language changes.
type Voice struct {
	ID       string
	Name     string
	Language Language
	Quality  Quality
}

// Catalog enumerates the platform's voices. Implementations are queried
// fresh on every language change so stale voice references never survive.
type Catalog interface {
	Voices() ([]Voice, error)
}

// FilterByLanguage returns the voices whose language tag exactly equals
// lang, ordered by (index in the language's preferred-name list, else last;
// then name). Exact match only: dialect variants of the same base language
// are distinct entries in the enum.
func FilterByLanguage(all []Voice, lang Language) []Voice {
	preferred := lang.PreferredVoices()
	rank := func(name string) int {
		for i, p := range preferred {
			if p == name {
				return i
			}
		}
		return len(preferred)
	}

	var out []Voice
	for _, v := range all {
		if v.Language == lang {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i].Name), rank(out[j].Name)
		if ri != rj {
			return ri < rj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DefaultVoice picks the default selection from an already filtered and
// ordered list: the best preferred-name match when one exists, otherwise
// the first entry, otherwise no voice at all (the renderer then falls back
// to the platform default for the language tag).
func DefaultVoice(filtered []Voice) (Voice, bool) {
	if len(filtered) == 0 {
		return Voice{}, false
	}
	return filtered[0], true
}

func containsVoice(list []Voice, id string) bool {
	for _, v := range list {
		if v.ID == id {
			return true
		}
	}
	return false
}
