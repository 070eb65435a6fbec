package model

import (
	"errors"
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFromJson(t *testing.T) {
	//** Act
	catalog, err := InputFromJson(fixtureCatalog)

	//** Assert
	require.NoError(t, err)
	assert.Len(t, catalog.MeetingTypes, 5)
	assert.Len(t, catalog.Sections, 12)

	lecture, err := catalog.Section(2023337795)
	require.NoError(t, err)
	assert.Equal(t, "CSE-175-01", lecture.DisplayName)
	assert.Equal(t, []uint64{2023337796, 2023337797, 2023337798, 2023337799}, lecture.LinkedSections)
	assert.Equal(t, MeetingEntry{InSession: tuesday, MeetingTypeId: lectureType, BeginTime: "1800", EndTime: "2045"}, lecture.Meetings[0])

	meetingType, ok := catalog.MeetingType(orientationType)
	assert.True(t, ok)
	assert.Equal(t, Other, meetingType)
}

func TestInputFromJsonMissingFile(t *testing.T) {
	_, err := InputFromJson("../../testdata/does-not-exist.json")
	assert.Error(t, err)
}

func TestInputFromBytes(t *testing.T) {
	t.Run("Numeric clock values", func(t *testing.T) {
		//** Arrange
		document := []byte(`{"data": {
			"meetingTypes": [{"id": 1, "name": "Lecture"}],
			"classes": {"nodes": [
				{"id": 10, "courseNumber": "MATH-021-01", "linkedSections": [],
				 "meetings": [{"inSession": 42, "meetingType": 1, "beginTime": 900, "endTime": 950}]}
			]}
		}}`)

		//** Act
		catalog, err := InputFromBytes(document)
		require.NoError(t, err)
		section, err := catalog.Section(10)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, "900", section.Meetings[0].BeginTime)
		assert.Equal(t, "950", section.Meetings[0].EndTime)
		assert.Equal(t, uint64(42), section.Meetings[0].InSession)
	})

	t.Run("Fractional day mask", func(t *testing.T) {
		catalog, err := InputFromBytes([]byte(`{"data": {
			"meetingTypes": [{"id": 1, "name": "Lecture"}],
			"classes": {"nodes": [
				{"id": 10, "linkedSections": [],
				 "meetings": [{"inSession": 2.5, "meetingType": 1, "beginTime": "0900", "endTime": "0950"}]}
			]}
		}}`))
		require.NoError(t, err)

		_, err = catalog.Section(10)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("Not an object", func(t *testing.T) {
		_, err := InputFromBytes([]byte(`[1, 2, 3]`))
		assert.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestProcessRawInputMalformed(t *testing.T) {
	scenarios := []struct {
		name     string
		document map[string]any
		field    string
	}{
		{
			name:     "Missing data",
			document: map[string]any{},
			field:    "data",
		},
		{
			name: "Missing meeting types",
			document: map[string]any{"data": map[string]any{
				"classes": map[string]any{"nodes": []any{}},
			}},
			field: "data.meetingTypes",
		},
		{
			name: "Meeting type without name",
			document: map[string]any{"data": map[string]any{
				"meetingTypes": []any{map[string]any{"id": 1}},
				"classes":      map[string]any{"nodes": []any{}},
			}},
			field: "data.meetingTypes[0].name",
		},
		{
			name: "Meeting types as an object",
			document: map[string]any{"data": map[string]any{
				"meetingTypes": map[string]any{"id": 1, "name": "Lecture"},
				"classes":      map[string]any{"nodes": []any{}},
			}},
			field: "data",
		},
		{
			name: "Nodes as an object",
			document: map[string]any{"data": map[string]any{
				"meetingTypes": []any{},
				"classes":      map[string]any{"nodes": map[string]any{"id": 1}},
			}},
			field: "data",
		},
		{
			name: "Missing classes",
			document: map[string]any{"data": map[string]any{
				"meetingTypes": []any{},
			}},
			field: "data.classes",
		},
		{
			name: "Missing nodes",
			document: map[string]any{"data": map[string]any{
				"meetingTypes": []any{},
				"classes":      map[string]any{},
			}},
			field: "data.classes.nodes",
		},
		{
			name: "Node without id",
			document: map[string]any{"data": map[string]any{
				"meetingTypes": []any{},
				"classes":      map[string]any{"nodes": []any{map[string]any{"courseNumber": "X"}}},
			}},
			field: "data.classes.nodes[0].id",
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			//** Act
			_, err := ProcessRawInput(scenario.document)

			//** Assert
			require.ErrorIs(t, err, ErrMalformedInput)
			var parseError *ParseError
			require.True(t, errors.As(err, &parseError))
			assert.Equal(t, scenario.field, parseError.Field)
			assert.False(t, parseError.HasSection())
		})
	}
}

func TestSection(t *testing.T) {
	g := gomega.NewWithT(t)

	//** Arrange
	catalog, err := ProcessRawInput(map[string]any{"data": map[string]any{
		"meetingTypes": []any{map[string]any{"id": 1, "name": "Lecture"}},
		"classes": map[string]any{"nodes": []any{
			map[string]any{"id": 1, "linkedSections": []any{}},
			map[string]any{"id": 2, "meetings": []any{}},
			map[string]any{"id": 3, "linkedSections": []any{}, "meetings": []any{
				map[string]any{"inSession": 2, "meetingType": 1, "beginTime": "0900"},
			}},
			map[string]any{"id": 4, "linkedSections": []any{map[string]any{}}, "meetings": []any{}},
			map[string]any{"id": 6, "linkedSections": []any{}, "meetings": []any{
				map[string]any{"inSession": -1, "meetingType": 1, "beginTime": "0900", "endTime": "0950"},
			}},
			map[string]any{"id": 7, "linkedSections": "none", "meetings": []any{}},
		}},
	}})
	require.NoError(t, err)

	scenarios := []struct {
		id    uint64
		kind  error
		field string
	}{
		{1, ErrMalformedInput, "meetings"},
		{2, ErrMalformedInput, "linkedSections"},
		{3, ErrMalformedInput, "meetings[0].endTime"},
		{4, ErrMalformedInput, "linkedSections[0].parent"},
		{5, ErrUnknownReference, ""},
		{6, ErrMalformedInput, ""},
		{7, ErrMalformedInput, ""},
	}

	for _, scenario := range scenarios {
		//** Act
		_, err := catalog.Section(scenario.id)

		//** Assert
		g.Expect(err).To(gomega.MatchError(scenario.kind))
		var parseError *ParseError
		g.Expect(errors.As(err, &parseError)).To(gomega.BeTrue())
		g.Expect(parseError.HasSection()).To(gomega.BeTrue())
		g.Expect(parseError.SectionId).To(gomega.Equal(scenario.id))
		g.Expect(parseError.Field).To(gomega.Equal(scenario.field))
	}
}

func TestSectionNumericClockValues(t *testing.T) {
	//** Arrange
	catalog, err := ProcessRawInput(map[string]any{"data": map[string]any{
		"meetingTypes": []any{map[string]any{"id": 1, "name": "Lecture"}},
		"classes": map[string]any{"nodes": []any{
			map[string]any{"id": 1, "courseNumber": "A-01", "linkedSections": []any{}, "meetings": []any{
				map[string]any{"inSession": monday, "meetingType": 1, "beginTime": 900, "endTime": 950.0},
			}},
		}},
	}})
	require.NoError(t, err)

	//** Act
	section, err := catalog.Section(1)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, MeetingEntry{InSession: monday, MeetingTypeId: 1, BeginTime: "900", EndTime: "950"}, section.Meetings[0])
}
