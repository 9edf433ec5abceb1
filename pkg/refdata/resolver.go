package refdata

import (
	"sort"
	"time"
)

// isoDateLayout is the date form used throughout the reference data.
// Lexicographic comparison of these strings matches chronological order.
const isoDateLayout = "2006-01-02"

// SubjectKey selects the succession list a resolution runs over. Every
// non-empty field must match the record exactly.
type SubjectKey struct {
	Title         string
	FacilityID    string
	FieldOfficeID string
}

// Matches reports whether a record belongs to this subject.
func (k SubjectKey) Matches(record PositionRecord) bool {
	if k.Title != "" && record.Title != k.Title {
		return false
	}
	if k.FacilityID != "" && record.FacilityID != k.FacilityID {
		return false
	}
	if k.FieldOfficeID != "" && record.FieldOfficeID != k.FieldOfficeID {
		return false
	}
	return true
}

// ResolveCurrent returns the record in effect for the subject on asOf: the
// matching record with the greatest effective date not after asOf. An empty
// asOf means today. Records with identical effective dates are broken by
// input order with the last one winning, so results are reproducible from a
// stable input ordering. Returns nil when no record qualifies; callers
// treat that as an ordinary missing-value outcome, not an error.
func ResolveCurrent(records []PositionRecord, key SubjectKey, asOf string) *PositionRecord {
	if asOf == "" {
		asOf = time.Now().UTC().Format(isoDateLayout)
	}

	var current *PositionRecord
	for i := range records {
		record := &records[i]
		if !key.Matches(*record) {
			continue
		}
		if record.EffectiveDate > asOf {
			continue
		}
		if current == nil || record.EffectiveDate >= current.EffectiveDate {
			current = record
		}
	}
	return current
}

// Succession returns every record for the subject ordered by effective
// date ascending, preserving input order for equal dates. Useful for
// lineage display; the cascade itself only needs ResolveCurrent.
func Succession(records []PositionRecord, key SubjectKey) []PositionRecord {
	var matched []PositionRecord
	for _, record := range records {
		if key.Matches(record) {
			matched = append(matched, record)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].EffectiveDate < matched[j].EffectiveDate
	})
	return matched
}
