package converter

import "sort"

// Merge combines freshly converted records with records recovered from a
// pre-existing weechat file. The combined set is stable-sorted by timestamp,
// so records sharing a second keep their relative input order, then
// consecutive identical records are collapsed. Identical lines separated by a
// different line both survive; only adjacent duplicates (the re-run and
// overlapping-shard case) are removed.
func Merge(converted, existing []Record) []Record {
	all := make([]Record, 0, len(converted)+len(existing))
	all = append(all, converted...)
	all = append(all, existing...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp < all[j].Timestamp
	})

	deduped := make([]Record, 0, len(all))
	for i, rec := range all {
		if i > 0 && rec == all[i-1] {
			continue
		}
		deduped = append(deduped, rec)
	}
	return deduped
}
