package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SecondsPerDay  uint64 = 24 * 3600
	DaysPerWeek    uint64 = 7
	ExamWeekOffset        = DaysPerWeek * SecondsPerDay
	// Regular week followed by the exam week
	WindowSeconds = 2 * ExamWeekOffset
	// Width of the inSession bitmask, only the first 7 bits are actual days
	WeekdayBits = 8
)

type MeetingType int

const (
	Lecture MeetingType = iota
	Discussion
	Lab
	Exam
	Other
)

var meetingTypeNames = map[MeetingType]string{
	Lecture:    "Lecture",
	Discussion: "Discussion",
	Lab:        "Lab",
	Exam:       "Exam",
	Other:      "Other",
}

// Resolves a meeting-type name as published by the catalog; any unknown name collapses to Other
func MeetingTypeFromName(name string) MeetingType {
	switch name {
	case "Lecture":
		return Lecture
	case "Lab":
		return Lab
	case "Discussion":
		return Discussion
	case "Exam":
		return Exam
	default:
		return Other
	}
}

func (meetingType MeetingType) String() string {
	if name, ok := meetingTypeNames[meetingType]; ok {
		return name
	}
	return fmt.Sprintf("MeetingType(%d)", int(meetingType))
}

func (meetingType MeetingType) MarshalText() ([]byte, error) {
	return []byte(meetingType.String()), nil
}

func (meetingType *MeetingType) UnmarshalText(text []byte) error {
	for value, name := range meetingTypeNames {
		if name == string(text) {
			*meetingType = value
			return nil
		}
	}
	return fmt.Errorf("unknown meeting type %q", text)
}

// SectionMeeting is one scheduled time block. Start and End are seconds since the
// beginning of a 14-day window: days 0-6 are the regular week and days 7-13 are the exam week.
type SectionMeeting struct {
	Start       uint64      `json:"start"`
	End         uint64      `json:"end"`
	SectionId   uint64      `json:"sectionId"`
	LectureId   uint64      `json:"lectureId"`
	DisplayName string      `json:"displayName"`
	MeetingType MeetingType `json:"meetingType"`
}

// Checks whether two meetings share any instant. Touching boundaries count as a conflict.
func (meeting SectionMeeting) Overlaps(other SectionMeeting) bool {
	return meeting.Start <= other.End && other.Start <= meeting.End
}

// Converts an HHMM clock value (e.g. "1130") into seconds since midnight
func parseClock(value string) (uint64, error) {
	digits, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("clock value %q is not an integer: %w", value, err)
	}

	hours, minutes := digits/100, digits%100
	if minutes >= 60 {
		return 0, fmt.Errorf("clock value %q has %d minutes", value, minutes)
	}

	seconds := hours*3600 + minutes*60
	if seconds > SecondsPerDay {
		return 0, fmt.Errorf("clock value %q is past the end of the day", value)
	}
	return seconds, nil
}

// Places a clock interval on the given day of the window; exams are shifted into the exam week
func meetingInterval(day, begin, end uint64, meetingType MeetingType) (start uint64, finish uint64) {
	start = day*SecondsPerDay + begin
	finish = day*SecondsPerDay + end

	if meetingType == Exam {
		start += ExamWeekOffset
		finish += ExamWeekOffset
	}
	return start, finish
}
