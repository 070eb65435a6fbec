package model

type Schedule struct {
	// Chosen meetings in start-time order
	Meetings []SectionMeeting `json:"meetings"`
	// Positions of the chosen meetings in the preference index pool
	Indices []int `json:"indices"`
	// Lecture ids left out of the schedule (best-effort mode only)
	Omitted []uint64 `json:"omitted,omitempty"`
}

type Result struct {
	Schedules []Schedule
	// Number of feasibility checks performed
	Checks uint64
	// Whether the search stopped because the step budget ran out
	Exhausted bool
}

// Composer enumerates conflict-free combinations of lab and discussion alternatives.
// Every method runs a self-contained synchronous search, so a Composer may be reused and
// the same index always yields the same schedules in the same order.
type Composer interface {
	// Enumerates every schedule that includes all desired courses
	Solve(index PreferenceIndex) Result

	// Stops at the first schedule (in search order) that includes all desired courses.
	// The result holds at most one schedule.
	SolveFirst(index PreferenceIndex) Result

	// Treats every course as optional and returns the schedules covering the largest number
	// of courses, each listing the lecture ids it leaves out
	SolveBestEffort(index PreferenceIndex) Result
}

type Option func(composer *composerImplementation)

// Stops the search once n schedules have been recorded (n <= 0 means no limit).
// In best-effort mode the result is truncated instead, since the best coverage is only
// known at the end of the search.
func WithLimit(n int) Option {
	return func(composer *composerImplementation) {
		composer.limit = n
	}
}

// Stops the search after n feasibility checks (n == 0 means no budget)
func WithStepBudget(n uint64) Option {
	return func(composer *composerImplementation) {
		composer.stepBudget = n
	}
}

type composerImplementation struct {
	limit      int
	stepBudget uint64
}

func NewComposer(options ...Option) Composer {
	composer := &composerImplementation{}
	for _, option := range options {
		option(composer)
	}
	return composer
}

func (composer *composerImplementation) Solve(index PreferenceIndex) Result {
	search := newSearch(index, composer.limit, composer.stepBudget, false)
	search.compose(0)
	return search.result()
}

func (composer *composerImplementation) SolveFirst(index PreferenceIndex) Result {
	search := newSearch(index, 1, composer.stepBudget, false)
	search.compose(0)
	return search.result()
}

func (composer *composerImplementation) SolveBestEffort(index PreferenceIndex) Result {
	search := newSearch(index, 0, composer.stepBudget, true)
	search.compose(0)

	result := search.result()
	if composer.limit > 0 && len(result.Schedules) > composer.limit {
		result.Schedules = result.Schedules[:composer.limit]
	}
	return result
}
