package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Courses with no tee times sort after everything else under the tee-time
// ordering.
const lastTeeTimeSentinel = "23:59"

// Recompute derives the filtered, sorted course list from the raw list and
// the active filters/sort. It is a pure, total function: identical inputs
// always yield identical output and the input slice is never mutated.
//
// Player-count and payment-method selections are carried in Filters but
// not applied here: the ERP rows carry no player or payment fields to
// match against, so those selections only affect the filter sheet UI.
func Recompute(courses []Course, filters Filters, sortOption SortOption) []Course {
	processed := make([]Course, len(courses))
	copy(processed, courses)

	if len(filters.Regions) > 0 {
		expanded := expandRegionLabels(filters.Regions)
		processed = keep(processed, func(c Course) bool {
			for _, token := range expanded {
				if strings.Contains(c.Address, token) {
					return true
				}
			}
			return false
		})
	}

	if len(filters.TeeTimes) > 0 {
		processed = keep(processed, func(c Course) bool {
			for _, band := range filters.TeeTimes {
				for _, slot := range c.Slots {
					if teeTimeBandContains(band, slotHour(slot.Time)) {
						return true
					}
				}
			}
			return false
		})
	}

	if len(filters.GreenFees) > 0 {
		processed = keep(processed, func(c Course) bool {
			for _, band := range filters.GreenFees {
				if greenFeeBandContains(band, c.MinSaleFee) {
					return true
				}
			}
			return false
		})
	}

	switch sortOption {
	case SortTeeTime:
		sort.SliceStable(processed, func(i, j int) bool {
			return firstSlotTime(processed[i]) < firstSlotTime(processed[j])
		})
	case SortName:
		coll := collate.New(language.Korean)
		sort.SliceStable(processed, func(i, j int) bool {
			return coll.CompareString(processed[i].Name, processed[j].Name) < 0
		})
	default:
		sort.SliceStable(processed, func(i, j int) bool {
			return processed[i].MinSaleFee < processed[j].MinSaleFee
		})
	}

	return processed
}

func keep(courses []Course, pred func(Course) bool) []Course {
	kept := courses[:0]
	for _, c := range courses {
		if pred(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// expandRegionLabels splits composite labels ("서울 / 경기") into their
// independent sub-tokens.
func expandRegionLabels(labels []string) []string {
	var expanded []string
	for _, label := range labels {
		expanded = append(expanded, strings.Split(label, RegionSeparator)...)
	}
	return expanded
}

// slotHour parses the hour from the first two characters of a tee-time
// string ("0730" or "07:30"). Returns -1 when unparsable so no band
// matches.
func slotHour(t string) int {
	if len(t) < 2 {
		return -1
	}
	hour, err := strconv.Atoi(t[:2])
	if err != nil {
		return -1
	}
	return hour
}

func teeTimeBandContains(band string, hour int) bool {
	if hour < 0 {
		return false
	}
	switch band {
	case TeeTimeDawn:
		return hour < 7
	case TeeTimeMorning:
		return hour >= 7 && hour < 12
	case TeeTimeAfternoon:
		return hour >= 12 && hour < 16
	case TeeTimeEvening:
		return hour >= 16
	}
	return false
}

func greenFeeBandContains(band string, fee int64) bool {
	switch band {
	case GreenFeeUnder50k:
		return fee < 50000
	case GreenFee50kTo100k:
		return fee >= 50000 && fee < 100000
	case GreenFee100kTo150:
		return fee >= 100000 && fee < 150000
	case GreenFeeOver150k:
		return fee >= 150000
	}
	return false
}

func firstSlotTime(c Course) string {
	if len(c.Slots) == 0 || c.Slots[0].Time == "" {
		return lastTeeTimeSentinel
	}
	return c.Slots[0].Time
}
