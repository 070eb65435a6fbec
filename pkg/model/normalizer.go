package model

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Normalize expands every meeting of the requested lectures, and of the sections linked to
// them, into discrete SectionMeeting records (one per weekday bit). The meetings keep the
// lecture id they were pulled in for, so results can be grouped back by desired course.
func Normalize(catalog Catalog, lectureIds []uint64) ([]SectionMeeting, error) {
	if catalog.MeetingTypes == nil {
		return nil, newParseError(MalformedInput, "data.meetingTypes", errors.New("meeting-type table is missing"))
	} else if catalog.Sections == nil {
		return nil, newParseError(MalformedInput, "data.classes", errors.New("classes collection is missing"))
	}

	if duplicates := lo.FindDuplicates(lectureIds); len(duplicates) > 0 {
		return nil, newParseError(MalformedInput, "lectureIds", fmt.Errorf("lecture ids must be unique: %v", duplicates))
	}

	meetings := make([]SectionMeeting, 0)
	for _, lectureId := range lectureIds {
		lecture, err := catalog.Section(lectureId)
		if err != nil {
			return nil, err
		}

		//** Lecture section itself
		lectureMeetings, err := sectionMeetings(catalog, lecture, lectureId)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, lectureMeetings...)

		//** Each of its labs and discussions
		linkedSections := lo.Without(lo.Uniq(lecture.LinkedSections), lectureId)
		for _, sectionId := range linkedSections {
			section, err := catalog.Section(sectionId)
			if err != nil {
				return nil, err
			}

			linkedMeetings, err := sectionMeetings(catalog, section, lectureId)
			if err != nil {
				return nil, err
			}
			meetings = append(meetings, linkedMeetings...)
		}
	}

	return meetings, nil
}

func sectionMeetings(catalog Catalog, section SectionRecord, lectureId uint64) ([]SectionMeeting, error) {
	meetings := make([]SectionMeeting, 0, len(section.Meetings))

	for i, entry := range section.Meetings {
		meetingType, ok := catalog.MeetingType(entry.MeetingTypeId)
		if !ok {
			return nil, newSectionError(UnknownReference, section.Id, fmt.Sprintf("meetings[%d].meetingType", i), fmt.Errorf("meeting type %d is not present in the catalog", entry.MeetingTypeId))
		}

		begin, err := parseClock(entry.BeginTime)
		if err != nil {
			return nil, newSectionError(UnparsableTime, section.Id, fmt.Sprintf("meetings[%d].beginTime", i), err)
		}
		end, err := parseClock(entry.EndTime)
		if err != nil {
			return nil, newSectionError(UnparsableTime, section.Id, fmt.Sprintf("meetings[%d].endTime", i), err)
		} else if end <= begin {
			return nil, newSectionError(UnparsableTime, section.Id, fmt.Sprintf("meetings[%d].endTime", i), fmt.Errorf("end %q is not after begin %q", entry.EndTime, entry.BeginTime))
		}

		// The exam week has no eighth day
		if meetingType == Exam && entry.InSession&(1<<DaysPerWeek) != 0 {
			return nil, newSectionError(UnparsableTime, section.Id, fmt.Sprintf("meetings[%d].inSession", i), fmt.Errorf("exam meeting uses day bit %d", DaysPerWeek))
		}

		for day := range uint64(WeekdayBits) {
			if entry.InSession&(1<<day) == 0 {
				continue
			}

			start, finish := meetingInterval(day, begin, end, meetingType)
			meetings = append(meetings, SectionMeeting{
				Start:       start,
				End:         finish,
				SectionId:   section.Id,
				LectureId:   lectureId,
				DisplayName: section.DisplayName,
				MeetingType: meetingType,
			})
		}
	}

	return meetings, nil
}
