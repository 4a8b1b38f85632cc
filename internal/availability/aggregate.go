package availability

import "slices"

// aggregate merges identical windows across rooms into counted results sorted by (from, to).
func aggregate(rooms []*roomWindows) []Result {
	var all []window
	for _, room := range rooms {
		all = append(all, room.windows...)
	}
	slices.SortFunc(all, compareWindows)

	results := make([]Result, 0, len(all))
	for i := 0; i < len(all); {
		j := i + 1
		for j < len(all) && compareWindows(all[i], all[j]) == 0 {
			j++
		}
		results = append(results, Result{
			Range: DateRange{Start: all[i].from, End: all[i].to},
			Count: j - i,
		})
		i = j
	}
	return results
}
