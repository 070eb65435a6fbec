package model

// feasible walks the mask once in pool order, which is start-time order, and verifies that no
// two chosen meetings overlap and that no course holds two labs or two discussions at once.
// latestEnd must be the running maximum: a long meeting can cover several later ones that
// start after a shorter meeting has already ended.
func (search *search) feasible() bool {
	if search.stopped {
		return false
	}

	if search.stepBudget > 0 && search.checks == search.stepBudget {
		search.stopped = true
		search.exhausted = true
		return false
	}
	search.checks++

	clear(search.labCounts)
	clear(search.discussionCounts)

	var latestEnd uint64
	first := true
	for i, chosen := range search.mask {
		if !chosen {
			continue
		}
		meeting := search.index.Pool[i]

		if !first && meeting.Start <= latestEnd {
			return false
		}
		first = false
		latestEnd = max(latestEnd, meeting.End)

		owner := search.owners[i]
		if owner < 0 {
			continue
		}

		switch meeting.MeetingType {
		case Lab:
			if search.labCounts[owner]++; search.labCounts[owner] > 1 {
				return false
			}
		case Discussion:
			if search.discussionCounts[owner]++; search.discussionCounts[owner] > 1 {
				return false
			}
		}
	}

	return true
}
