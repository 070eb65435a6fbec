package model

import (
	"cmp"
	"fmt"
	"slices"
)

// Exam slot value of a course without an exam meeting
const NoExam = -1

type DiagnosticKind int

const (
	// Meeting whose type is none of the four scheduled roles; it is left out of the search
	UnclassifiedMeeting DiagnosticKind = iota
	// Exam meeting beyond the first one of a course; it is left out of the search
	SurplusExam
	// Meeting whose lecture id was not requested; it is left out of the search
	OrphanMeeting
)

var diagnosticKindNames = map[DiagnosticKind]string{
	UnclassifiedMeeting: "unclassified-meeting",
	SurplusExam:         "surplus-exam",
	OrphanMeeting:       "orphan-meeting",
}

func (kind DiagnosticKind) String() string {
	return diagnosticKindNames[kind]
}

func (kind DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

func (kind *DiagnosticKind) UnmarshalText(text []byte) error {
	for value, name := range diagnosticKindNames {
		if name == string(text) {
			*kind = value
			return nil
		}
	}
	return fmt.Errorf("unknown diagnostic kind %q", text)
}

// Diagnostic is a non-fatal finding produced while indexing the meeting pool
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Meeting SectionMeeting `json:"meeting"`
	Message string         `json:"message"`
}

// CoursePreference holds, for one desired lecture, positions into the shared sorted pool
type CoursePreference struct {
	LectureId   uint64
	Lectures    []int
	Labs        []int
	Discussions []int
	Exam        int
}

type PreferenceIndex struct {
	Pool        []SectionMeeting
	Courses     []CoursePreference
	Diagnostics []Diagnostic
}

// Index one past the last pool position. It stands in an otherwise empty lab or discussion
// list so that "no such requirement" is a single no-op alternative.
func (index PreferenceIndex) Sentinel() int {
	return len(index.Pool)
}

func (index PreferenceIndex) HasLabs(course int) bool {
	return !slices.Equal(index.Courses[course].Labs, []int{index.Sentinel()})
}

func (index PreferenceIndex) HasDiscussions(course int) bool {
	return !slices.Equal(index.Courses[course].Discussions, []int{index.Sentinel()})
}

// BuildPreferenceIndex sorts the pool by start time and partitions it by course and role.
// The given pool is not modified.
func BuildPreferenceIndex(lectureIds []uint64, pool []SectionMeeting) PreferenceIndex {
	sortedPool := slices.Clone(pool)
	slices.SortStableFunc(sortedPool, func(a, b SectionMeeting) int {
		return cmp.Compare(a.Start, b.Start)
	})

	index := PreferenceIndex{
		Pool:        sortedPool,
		Courses:     make([]CoursePreference, len(lectureIds)),
		Diagnostics: make([]Diagnostic, 0),
	}

	positions := make(map[uint64]int, len(lectureIds))
	for position, lectureId := range lectureIds {
		positions[lectureId] = position
		index.Courses[position] = CoursePreference{
			LectureId:   lectureId,
			Lectures:    make([]int, 0),
			Labs:        make([]int, 0),
			Discussions: make([]int, 0),
			Exam:        NoExam,
		}
	}

	for i, meeting := range sortedPool {
		position, ok := positions[meeting.LectureId]
		if !ok {
			index.Diagnostics = append(index.Diagnostics, Diagnostic{
				Kind:    OrphanMeeting,
				Meeting: meeting,
				Message: fmt.Sprintf("meeting of section %d belongs to lecture %d which was not requested", meeting.SectionId, meeting.LectureId),
			})
			continue
		}
		course := &index.Courses[position]

		switch meeting.MeetingType {
		case Lecture:
			course.Lectures = append(course.Lectures, i)
		case Lab:
			course.Labs = append(course.Labs, i)
		case Discussion:
			course.Discussions = append(course.Discussions, i)
		case Exam:
			if course.Exam != NoExam {
				index.Diagnostics = append(index.Diagnostics, Diagnostic{
					Kind:    SurplusExam,
					Meeting: meeting,
					Message: fmt.Sprintf("lecture %d already has an exam meeting; ignoring the one of section %d", meeting.LectureId, meeting.SectionId),
				})
				continue
			}
			course.Exam = i
		default:
			index.Diagnostics = append(index.Diagnostics, Diagnostic{
				Kind:    UnclassifiedMeeting,
				Meeting: meeting,
				Message: fmt.Sprintf("meeting of section %d (%v) has an unscheduled type and is ignored", meeting.SectionId, meeting.DisplayName),
			})
		}
	}

	sentinel := index.Sentinel()
	for i := range index.Courses {
		if len(index.Courses[i].Labs) == 0 {
			index.Courses[i].Labs = append(index.Courses[i].Labs, sentinel)
		}
		if len(index.Courses[i].Discussions) == 0 {
			index.Courses[i].Discussions = append(index.Courses[i].Discussions, sentinel)
		}
	}

	return index
}
