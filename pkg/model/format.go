package model

import "fmt"

// Bit i of inSession is day i of the week, starting on Sunday
var dayNames = [DaysPerWeek]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Returns the name of the window day containing the instant, e.g. "TUE" or "EX_FRI" for the exam week
func DayName(instant uint64) string {
	day := instant / SecondsPerDay
	if day >= 2*DaysPerWeek {
		return "INVALID"
	}

	name := dayNames[day%DaysPerWeek]
	if day >= DaysPerWeek {
		return "EX_" + name
	}
	return name
}

// Returns the 12-hour clock time of the instant, e.g. "9:05 AM"
func ClockTime(instant uint64) string {
	seconds := instant % SecondsPerDay
	hour, minute := seconds/3600, seconds%3600/60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	if hour = hour % 12; hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

func FormatMeeting(meeting SectionMeeting) string {
	return fmt.Sprintf("%v %v %v %v - %v",
		meeting.DisplayName,
		meeting.MeetingType,
		DayName(meeting.Start),
		ClockTime(meeting.Start),
		ClockTime(meeting.End),
	)
}
