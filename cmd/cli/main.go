package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/classcomposer/pkg/config"
	"github.com/limaJavier/classcomposer/pkg/logger"
	"github.com/limaJavier/classcomposer/pkg/model"
	"github.com/limaJavier/classcomposer/pkg/service"
)

// Exit codes
const (
	found        = 10
	invalid      = 15
	none         = 20
	exhausted    = 25
	rejected     = 30
	unknownInput = 31
)

var (
	validModes   = []string{config.ModeAll, config.ModeFirst, config.ModeBestEffort}
	validFormats = []string{"json", "text"}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the catalog file")
	lecturesPtr := flag.String("lectures", "", "Comma-separated list of the desired lecture section ids")
	modePtr := flag.String("mode", cfg.Composer.Mode, `Search mode. Allowed values are:
- "all" (every schedule that includes all desired courses),
- "first" (the first such schedule found) and
- "besteffort" (every course is optional; the schedules covering the most courses are returned)`)
	limitPtr := flag.Int("limit", cfg.Composer.Limit, "Maximum number of schedules to return, where 0 means no limit")
	budgetPtr := flag.Uint64("budget", cfg.Composer.StepBudget, "Maximum number of feasibility checks, where 0 means no budget")
	formatPtr := flag.String("format", "json", "Output format. Allowed values are: \"json\" and \"text\"")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()
	filePath := *filePathPtr
	mode := strings.ToLower(*modePtr)
	format := strings.ToLower(*formatPtr)
	outFile := *outFilePathPtr

	// Validate arguments
	lectureIds, err := parseLectureIds(*lecturesPtr)
	if err != nil {
		log.Fatalf("invalid lecture list: %v", err)
	} else if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid mode", mode)
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if filePath == "" {
		log.Fatal("a catalog file must be specified")
	} else if *limitPtr < 0 {
		log.Fatalf("limit must not be negative: %v", *limitPtr)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	// Extract input
	catalog, err := model.InputFromJson(filePath)
	if err != nil {
		logr.Error("cannot parse catalog file", zap.String("file", filePath), zap.Error(err))
		os.Exit(exitCodeFor(err))
	}

	// Compose schedules
	schedules := service.NewScheduleService(validator.New(), logr, cfg.Composer)
	result, err := schedules.Compose(catalog, service.ComposeRequest{
		LectureIds: lectureIds,
		Mode:       mode,
		Limit:      *limitPtr,
		StepBudget: *budgetPtr,
	})
	if err != nil {
		logr.Error("cannot compose schedules", zap.Error(err))
		os.Exit(exitCodeFor(err))
	}

	// Verify every schedule against an independently built index
	pool := lo.Must(model.Normalize(catalog, lectureIds))
	index := model.BuildPreferenceIndex(lectureIds, pool)
	if !lo.EveryBy(result.Schedules, func(schedule model.Schedule) bool { return model.Verify(schedule, index) }) {
		logr.Error("a composed schedule failed verification")
		os.Exit(invalid)
	}

	// Build output
	var output []byte
	if format == "text" {
		output = []byte(renderText(result))
	} else if output, err = json.MarshalIndent(result, "", "  "); err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(outFile, output, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	os.Exit(resultCode(result))
}

// An exhausted budget without a schedule says nothing about whether one exists
func resultCode(result *service.ComposeResult) int {
	switch {
	case len(result.Schedules) > 0:
		return found
	case result.Stats.Exhausted:
		return exhausted
	default:
		return none
	}
}

func parseLectureIds(list string) ([]uint64, error) {
	fields := lo.Filter(strings.Split(list, ","), func(field string, _ int) bool { return strings.TrimSpace(field) != "" })
	if len(fields) == 0 {
		return nil, errors.New("at least one lecture id must be specified")
	}

	lectureIds := make([]uint64, 0, len(fields))
	for _, field := range fields {
		id, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a section id", field)
		}
		lectureIds = append(lectureIds, id)
	}
	return lectureIds, nil
}

func exitCodeFor(err error) int {
	if errors.Is(err, model.ErrUnknownReference) {
		return unknownInput
	}
	return rejected
}

func renderText(result *service.ComposeResult) string {
	var builder strings.Builder
	for i, schedule := range result.Schedules {
		fmt.Fprintf(&builder, "Schedule %d\n", i+1)
		for _, meeting := range schedule.Meetings {
			fmt.Fprintf(&builder, "  %v\n", model.FormatMeeting(meeting))
		}
		if len(schedule.Omitted) > 0 {
			fmt.Fprintf(&builder, "  omitted: %v\n", schedule.Omitted)
		}
	}
	for _, diagnostic := range result.Diagnostics {
		fmt.Fprintf(&builder, "warning: %v: %v\n", diagnostic.Kind, diagnostic.Message)
	}
	fmt.Fprintf(&builder, "%d schedule(s), %d checks", len(result.Schedules), result.Stats.Checks)
	if result.Stats.Exhausted {
		builder.WriteString(", step budget exhausted")
	}
	return builder.String()
}
