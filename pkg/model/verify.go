package model

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Verify checks a schedule against the index it was composed from, independently of the
// search: meetings must not overlap, and every course not listed in Omitted must have all of
// its lecture meetings, its exam if it has one, and exactly one lab and one discussion when it
// has alternatives for them.
func Verify(schedule Schedule, index PreferenceIndex) bool {
	if len(schedule.Indices) != len(schedule.Meetings) {
		return false
	}

	//** Indices must be unique pool positions matching the meetings
	seen := make(map[int]bool, len(schedule.Indices))
	for i, position := range schedule.Indices {
		if position < 0 || position >= len(index.Pool) || seen[position] || index.Pool[position] != schedule.Meetings[i] {
			return false
		}
		seen[position] = true
	}

	//** No overlaps
	meetings := slices.Clone(schedule.Meetings)
	slices.SortStableFunc(meetings, func(a, b SectionMeeting) int { return cmp.Compare(a.Start, b.Start) })
	var latestEnd uint64
	for i, meeting := range meetings {
		if i > 0 && meeting.Start <= latestEnd {
			return false
		}
		latestEnd = max(latestEnd, meeting.End)
	}

	//** Coverage
	covered := 0
	for course, preference := range index.Courses {
		omitted := slices.Contains(schedule.Omitted, preference.LectureId)
		labs := lo.CountBy(preference.Labs, func(i int) bool { return seen[i] })
		discussions := lo.CountBy(preference.Discussions, func(i int) bool { return seen[i] })
		lectures := lo.CountBy(preference.Lectures, func(i int) bool { return seen[i] })
		exam := preference.Exam != NoExam && seen[preference.Exam]

		if omitted {
			if lectures > 0 || labs > 0 || discussions > 0 || exam {
				return false
			}
			continue
		}

		if lectures != len(preference.Lectures) ||
			exam != (preference.Exam != NoExam) ||
			labs != lo.Ternary(index.HasLabs(course), 1, 0) ||
			discussions != lo.Ternary(index.HasDiscussions(course), 1, 0) {
			return false
		}
		covered += len(preference.Lectures) + labs + discussions + lo.Ternary(exam, 1, 0)
	}

	// Nothing outside the courses' own meetings may be chosen
	return covered == len(schedule.Indices)
}
