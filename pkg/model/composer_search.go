package model

import (
	"slices"

	"github.com/samber/lo"
)

// search is the state of one composer run. The mask is its only mutable shared state: every
// recursion level restores it to the state it had on entry before returning.
type search struct {
	index    PreferenceIndex
	sentinel int
	mask     []bool
	// Course position owning each pool index (-1 for excluded meetings)
	owners []int

	// Per-course counters reused by every feasibility check
	labCounts        []int
	discussionCounts []int

	limit      int
	stepBudget uint64
	checks     uint64
	stopped    bool
	exhausted  bool

	optional bool
	omitted  []uint64
	best     int

	schedules []Schedule
}

func newSearch(index PreferenceIndex, limit int, stepBudget uint64, optional bool) *search {
	owners := make([]int, len(index.Pool))
	for i := range owners {
		owners[i] = -1
	}
	for position, course := range index.Courses {
		for _, i := range slices.Concat(course.Lectures, course.Labs, course.Discussions) {
			if i != index.Sentinel() {
				owners[i] = position
			}
		}
		if course.Exam != NoExam {
			owners[course.Exam] = position
		}
	}

	return &search{
		index:            index,
		sentinel:         index.Sentinel(),
		mask:             make([]bool, len(index.Pool)),
		owners:           owners,
		labCounts:        make([]int, len(index.Courses)),
		discussionCounts: make([]int, len(index.Courses)),
		limit:            limit,
		stepBudget:       stepBudget,
		optional:         optional,
		omitted:          make([]uint64, 0, len(index.Courses)),
		schedules:        make([]Schedule, 0),
	}
}

func (search *search) result() Result {
	return Result{
		Schedules: search.schedules,
		Checks:    search.checks,
		Exhausted: search.exhausted,
	}
}

func (search *search) compose(course int) {
	if search.stopped {
		return
	}

	if course == len(search.index.Courses) {
		search.record()
		return
	}

	// A best-effort branch that cannot reach the best coverage found so far is pointless
	if search.optional && course-len(search.omitted)+(len(search.index.Courses)-course) < search.best {
		return
	}

	preference := search.index.Courses[course]

	//** Take the course: its lecture and exam meetings are fixed
	search.setFixed(preference, true)
	if search.feasible() {
		for _, lab := range preference.Labs {
			if !search.choose(lab) {
				continue
			}

			for _, discussion := range preference.Discussions {
				if !search.choose(discussion) {
					continue
				}

				search.compose(course + 1)

				search.release(discussion)
				if search.stopped {
					break
				}
			}

			search.release(lab)
			if search.stopped {
				break
			}
		}
	}
	search.setFixed(preference, false)

	//** Leave the course out (best-effort only)
	if search.optional && !search.stopped {
		search.omitted = append(search.omitted, preference.LectureId)
		search.compose(course + 1)
		search.omitted = search.omitted[:len(search.omitted)-1]
	}
}

func (search *search) setFixed(preference CoursePreference, value bool) {
	for _, i := range preference.Lectures {
		search.mask[i] = value
	}
	if preference.Exam != NoExam {
		search.mask[preference.Exam] = value
	}
}

// Marks an alternative and keeps it only if the mask stays feasible; the sentinel is always kept
func (search *search) choose(i int) bool {
	if i == search.sentinel {
		return true
	}

	search.mask[i] = true
	if search.feasible() {
		return true
	}
	search.mask[i] = false
	return false
}

func (search *search) release(i int) {
	if i != search.sentinel {
		search.mask[i] = false
	}
}

func (search *search) record() {
	covered := len(search.index.Courses) - len(search.omitted)
	if search.optional {
		if covered < search.best {
			return
		} else if covered > search.best || len(search.schedules) == 0 {
			search.best = covered
			search.schedules = search.schedules[:0]
		}
	}

	indices := make([]int, 0)
	for i, chosen := range search.mask {
		if chosen {
			indices = append(indices, i)
		}
	}

	schedule := Schedule{
		Meetings: lo.Map(indices, func(i int, _ int) SectionMeeting { return search.index.Pool[i] }),
		Indices:  indices,
	}
	if search.optional {
		schedule.Omitted = slices.Clone(search.omitted)
	}
	search.schedules = append(search.schedules, schedule)

	if search.limit > 0 && len(search.schedules) >= search.limit {
		search.stopped = true
	}
}
