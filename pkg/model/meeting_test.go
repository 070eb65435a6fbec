package model

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	t.Run("Valid values", func(t *testing.T) {
		scenarios := map[string]uint64{
			"0000":   0,
			"900":    9 * 3600,
			"0900":   9 * 3600,
			"1130":   11*3600 + 30*60,
			" 1745 ": 17*3600 + 45*60,
			"2400":   SecondsPerDay,
		}

		for value, expected := range scenarios {
			seconds, err := parseClock(value)
			require.NoError(t, err, value)
			assert.Equal(t, expected, seconds, value)
		}
	})

	t.Run("Invalid values", func(t *testing.T) {
		for _, value := range []string{"", "11:30", "abc", "-100", "1160", "2401", "9999"} {
			_, err := parseClock(value)
			assert.Error(t, err, value)
		}
	})
}

func TestMeetingIntervalStaysInItsDay(t *testing.T) {
	for range 200 {
		//** Arrange
		day := uint64(rand.Intn(WeekdayBits))
		beginHour, endHour := uint64(rand.Intn(23)), uint64(0)
		endHour = beginHour + 1 + uint64(rand.Intn(int(23-beginHour)))
		begin := beginHour*3600 + uint64(rand.Intn(60))*60
		end := endHour*3600 + uint64(rand.Intn(60))*60

		for _, meetingType := range []MeetingType{Lecture, Lab, Discussion, Exam, Other} {
			//** Act
			start, finish := meetingInterval(day, begin, end, meetingType)

			//** Assert
			offset := day * SecondsPerDay
			if meetingType == Exam {
				offset += ExamWeekOffset
			}
			message := fmt.Sprintf("day %d, %v, [%d, %d)", day, meetingType, begin, end)
			assert.Less(t, start, finish, message)
			assert.GreaterOrEqual(t, start, offset, message)
			assert.Less(t, finish, offset+SecondsPerDay, message)
		}
	}
}

func TestMeetingTypeFromName(t *testing.T) {
	assert.Equal(t, Lecture, MeetingTypeFromName("Lecture"))
	assert.Equal(t, Lab, MeetingTypeFromName("Lab"))
	assert.Equal(t, Discussion, MeetingTypeFromName("Discussion"))
	assert.Equal(t, Exam, MeetingTypeFromName("Exam"))
	assert.Equal(t, Other, MeetingTypeFromName("Orientation"))
	assert.Equal(t, Other, MeetingTypeFromName("lecture"))
}

func TestOverlaps(t *testing.T) {
	a := SectionMeeting{Start: clock(1, 900), End: clock(1, 950)}

	assert.True(t, a.Overlaps(SectionMeeting{Start: clock(1, 930), End: clock(1, 1030)}))
	assert.True(t, a.Overlaps(SectionMeeting{Start: clock(1, 800), End: clock(1, 1100)}))
	assert.True(t, a.Overlaps(SectionMeeting{Start: clock(1, 950), End: clock(1, 1030)}), "touching boundaries conflict")
	assert.False(t, a.Overlaps(SectionMeeting{Start: clock(1, 1000), End: clock(1, 1050)}))
	assert.False(t, a.Overlaps(SectionMeeting{Start: clock(8, 900), End: clock(8, 950)}), "exam week is disjoint")
}

func TestMeetingTypeText(t *testing.T) {
	for _, meetingType := range []MeetingType{Lecture, Discussion, Lab, Exam, Other} {
		text, err := meetingType.MarshalText()
		require.NoError(t, err)

		var decoded MeetingType
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, meetingType, decoded)
	}

	var decoded MeetingType
	assert.Error(t, decoded.UnmarshalText([]byte("Seminar")))
}
