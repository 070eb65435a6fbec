package model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const fixtureCatalog = "../../testdata/catalog.json"

// Meeting-type ids used by the test catalogs
const (
	lectureType     uint64 = 1
	labType         uint64 = 2
	discussionType  uint64 = 3
	examType        uint64 = 4
	orientationType uint64 = 5
)

// inSession bits
const (
	sunday    uint64 = 1 << iota
	monday
	tuesday
	wednesday
	thursday
	friday
	saturday
)

type testMeeting struct {
	days        uint64
	meetingType uint64
	begin, end  string
}

type testSection struct {
	id       uint64
	name     string
	linked   []uint64
	meetings []testMeeting
}

func testDocument(sections ...testSection) map[string]any {
	nodes := lo.Map(sections, func(section testSection, _ int) map[string]any {
		return map[string]any{
			"id":           section.id,
			"courseNumber": section.name,
			"linkedSections": lo.Map(section.linked, func(id uint64, _ int) map[string]any {
				return map[string]any{"parent": id}
			}),
			"meetings": lo.Map(section.meetings, func(meeting testMeeting, _ int) map[string]any {
				return map[string]any{
					"inSession":   meeting.days,
					"meetingType": meeting.meetingType,
					"beginTime":   meeting.begin,
					"endTime":     meeting.end,
				}
			}),
		}
	})

	return map[string]any{
		"data": map[string]any{
			"meetingTypes": []map[string]any{
				{"id": lectureType, "name": "Lecture"},
				{"id": labType, "name": "Lab"},
				{"id": discussionType, "name": "Discussion"},
				{"id": examType, "name": "Exam"},
				{"id": orientationType, "name": "Orientation"},
			},
			"classes": map[string]any{"nodes": nodes},
		},
	}
}

func testCatalog(t *testing.T, sections ...testSection) Catalog {
	t.Helper()
	catalog, err := ProcessRawInput(testDocument(sections...))
	require.NoError(t, err)
	return catalog
}

func testIndex(t *testing.T, lectureIds []uint64, sections ...testSection) PreferenceIndex {
	t.Helper()
	pool, err := Normalize(testCatalog(t, sections...), lectureIds)
	require.NoError(t, err)
	return BuildPreferenceIndex(lectureIds, pool)
}

func clock(day uint64, hhmm uint64) uint64 {
	return day*SecondsPerDay + hhmm/100*3600 + hhmm%100*60
}
