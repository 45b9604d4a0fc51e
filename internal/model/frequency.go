package model

import (
	"sort"
	"strings"
)

// FrequencyEntry is one row of a frequency table: a category label and the
// number of times it occurs in the source column.
type FrequencyEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FrequencyTable holds occurrence counts for each distinct value of a
// categorical column.
//
// Ordering invariant: entries are sorted by descending count; ties keep the
// order in which the labels first occur in the source column. The ordering is
// established by NewFrequencyTable and never changes afterwards, so two runs
// over the same data always produce the same table.
type FrequencyTable struct {
	// Column is the name of the column the counts were derived from.
	Column string `json:"column"`

	// Entries holds the counts in display order.
	Entries []FrequencyEntry `json:"entries"`
}

// NewFrequencyTable counts occurrences of each distinct value in values.
// Empty and whitespace-only cells are skipped; they represent unanswered
// survey questions, not a category of their own.
func NewFrequencyTable(column string, values []string) *FrequencyTable {
	counts := make(map[string]int)
	firstSeen := make([]string, 0)

	for _, v := range values {
		label := strings.TrimSpace(v)
		if label == "" {
			continue
		}
		if _, ok := counts[label]; !ok {
			firstSeen = append(firstSeen, label)
		}
		counts[label]++
	}

	entries := make([]FrequencyEntry, 0, len(firstSeen))
	for _, label := range firstSeen {
		entries = append(entries, FrequencyEntry{Label: label, Count: counts[label]})
	}

	// Stable sort preserves first-occurrence order among equal counts.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return &FrequencyTable{Column: column, Entries: entries}
}

// Len returns the number of distinct labels in the table.
func (t *FrequencyTable) Len() int {
	return len(t.Entries)
}

// Total returns the sum of all counts. For a fully answered column this
// equals the dataset row count.
func (t *FrequencyTable) Total() int {
	total := 0
	for _, e := range t.Entries {
		total += e.Count
	}
	return total
}

// Count returns the occurrence count for the given label and whether the
// label is present in the table.
func (t *FrequencyTable) Count(label string) (int, bool) {
	for _, e := range t.Entries {
		if e.Label == label {
			return e.Count, true
		}
	}
	return 0, false
}

// Top returns the most frequent label, or false if the table is empty.
func (t *FrequencyTable) Top() (string, bool) {
	if len(t.Entries) == 0 {
		return "", false
	}
	return t.Entries[0].Label, true
}
