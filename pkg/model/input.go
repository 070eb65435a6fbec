package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

//** Raw shapes of the upstream catalog response

type RawCatalog struct {
	Data *RawCatalogData `mapstructure:"data" validate:"required"`
}

type RawCatalogData struct {
	MeetingTypes []RawMeetingType `mapstructure:"meetingTypes" validate:"required,dive"`
	Classes      *RawClasses      `mapstructure:"classes" validate:"required"`
}

type RawClasses struct {
	Nodes []map[string]any `mapstructure:"nodes" validate:"required"`
}

type RawMeetingType struct {
	Id   *uint64 `mapstructure:"id" validate:"required"`
	Name string  `mapstructure:"name" validate:"required"`
}

type RawLinkedSection struct {
	Parent *uint64 `mapstructure:"parent" validate:"required"`
}

type RawMeetingEntry struct {
	InSession   *uint64 `mapstructure:"inSession" validate:"required"`
	MeetingType *uint64 `mapstructure:"meetingType" validate:"required"`
	BeginTime   string  `mapstructure:"beginTime" validate:"required"`
	EndTime     string  `mapstructure:"endTime" validate:"required"`
}

type RawSectionRecord struct {
	Id             *uint64            `mapstructure:"id" validate:"required"`
	CourseNumber   string             `mapstructure:"courseNumber"`
	LinkedSections []RawLinkedSection `mapstructure:"linkedSections" validate:"required,dive"`
	Meetings       []RawMeetingEntry  `mapstructure:"meetings" validate:"required,dive"`
}

type rawNodeKey struct {
	Id *uint64 `mapstructure:"id"`
}

//** Validated records handed to the normalizer

type MeetingEntry struct {
	InSession     uint64
	MeetingTypeId uint64
	BeginTime     string
	EndTime       string
}

type SectionRecord struct {
	Id             uint64
	DisplayName    string
	LinkedSections []uint64
	Meetings       []MeetingEntry
}

// Catalog is the lookup the composer works on. Section nodes are kept raw and validated
// only when a request actually reaches them, so one broken record elsewhere in the
// catalog does not reject unrelated requests.
type Catalog struct {
	MeetingTypes map[uint64]string
	Sections     map[uint64]map[string]any
}

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	validate := validator.New()
	// Report fields by their catalog name instead of the Go field name
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return validate
}

func InputFromJson(file string) (Catalog, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return Catalog{}, fmt.Errorf("cannot read catalog file: %w", err)
	}
	return InputFromBytes(content)
}

func InputFromBytes(data []byte) (Catalog, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Section ids are large integers

	var document map[string]any
	if err := decoder.Decode(&document); err != nil {
		return Catalog{}, newParseError(MalformedInput, "", fmt.Errorf("catalog is not a JSON object: %w", err))
	}
	return ProcessRawInput(document)
}

func ProcessRawInput(document map[string]any) (Catalog, error) {
	var rawCatalog RawCatalog
	if err := decode(document, &rawCatalog); err != nil {
		return Catalog{}, newParseError(MalformedInput, "data", err)
	}
	if err := recordValidator.Struct(rawCatalog); err != nil {
		return Catalog{}, newParseError(MalformedInput, invalidField(err), err)
	}

	catalog := Catalog{
		MeetingTypes: make(map[uint64]string, len(rawCatalog.Data.MeetingTypes)),
		Sections:     make(map[uint64]map[string]any, len(rawCatalog.Data.Classes.Nodes)),
	}

	for _, meetingType := range rawCatalog.Data.MeetingTypes {
		catalog.MeetingTypes[*meetingType.Id] = meetingType.Name
	}

	for i, node := range rawCatalog.Data.Classes.Nodes {
		var key rawNodeKey
		err := decode(node, &key)
		if err == nil && key.Id == nil {
			err = errors.New("class node has no id")
		}
		if err != nil {
			return Catalog{}, newParseError(MalformedInput, fmt.Sprintf("data.classes.nodes[%d].id", i), err)
		}
		catalog.Sections[*key.Id] = node
	}

	return catalog, nil
}

// Decodes and validates the record of a single section
func (catalog Catalog) Section(id uint64) (SectionRecord, error) {
	node, ok := catalog.Sections[id]
	if !ok {
		return SectionRecord{}, newSectionError(UnknownReference, id, "", errors.New("section is not present in the catalog"))
	}

	var raw RawSectionRecord
	if err := decode(node, &raw); err != nil {
		return SectionRecord{}, newSectionError(MalformedInput, id, "", err)
	}
	if err := recordValidator.Struct(raw); err != nil {
		return SectionRecord{}, newSectionError(MalformedInput, id, invalidField(err), err)
	}

	return SectionRecord{
		Id:          *raw.Id,
		DisplayName: raw.CourseNumber,
		LinkedSections: lo.Map(raw.LinkedSections, func(linked RawLinkedSection, _ int) uint64 {
			return *linked.Parent
		}),
		Meetings: lo.Map(raw.Meetings, func(entry RawMeetingEntry, _ int) MeetingEntry {
			return MeetingEntry{
				InSession:     *entry.InSession,
				MeetingTypeId: *entry.MeetingType,
				BeginTime:     entry.BeginTime,
				EndTime:       entry.EndTime,
			}
		}),
	}, nil
}

func (catalog Catalog) MeetingType(id uint64) (MeetingType, bool) {
	name, ok := catalog.MeetingTypes[id]
	if !ok {
		return Other, false
	}
	return MeetingTypeFromName(name), true
}

func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(numberToString),
		Result:     output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Clock values may arrive as numbers or strings; every other field keeps its exact shape
func numberToString(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}

	switch value := reflect.ValueOf(data); from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(value.Float(), 'f', -1, 64), nil
	default:
		return data, nil
	}
}

// Returns the catalog path of the first field rejected by the validator (e.g. "meetings[0].beginTime")
func invalidField(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return ""
	}
	namespace := validationErrors[0].Namespace()
	if _, field, found := strings.Cut(namespace, "."); found {
		return field
	}
	return namespace
}
