package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/limaJavier/classcomposer/pkg/config"
	"github.com/limaJavier/classcomposer/pkg/model"

	"github.com/samber/lo"
)

const (
	executablePath   = "../../bin/classcomposer"
	catalogDirectory = "../../testdata/"
	KB               = 1024
)

type ResultType int

const (
	found ResultType = iota
	none
	exhausted
)

var (
	modes       = []string{config.ModeAll, config.ModeFirst, config.ModeBestEffort}
	resultTypes = map[ResultType]string{
		found:     "found",
		none:      "none",
		exhausted: "exhausted",
	}
)

type TestMetadata struct {
	Name     string
	Sections int
	Lectures []uint64
}

type BenchmarkResult struct {
	Mode          string
	Test          TestMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	tests := getTests()
	results := make([]BenchmarkResult, 0, len(tests)*len(modes))

	for _, test := range tests {
		for _, mode := range modes {
			fmt.Printf("Benchmarking catalog \"%v\" (%v lectures) with mode \"%v\"\n", test.Name, len(test.Lectures), mode)

			duration, maxMemory, cpuPercentage, result := measure(mode, test)

			results = append(results, BenchmarkResult{
				Mode:          mode,
				Test:          test,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        result,
			})
		}
	}

	toCsv(results)
}

// Every catalog under testdata is benchmarked with all of its lecture sections requested
func getTests() []TestMetadata {
	files, err := filepath.Glob(filepath.Join(catalogDirectory, "*.json"))
	if err != nil {
		log.Fatalf("cannot list catalog directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(files))
	for _, filename := range files {
		catalog, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse catalog file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:     filename,
			Sections: len(catalog.Sections),
			Lectures: lectureSections(catalog),
		})
	}

	return tests
}

// Returns the ids of the sections holding at least one lecture meeting, in ascending order
func lectureSections(catalog model.Catalog) []uint64 {
	ids := lo.Filter(lo.Keys(catalog.Sections), func(id uint64, _ int) bool {
		section, err := catalog.Section(id)
		if err != nil {
			return false
		}
		return lo.SomeBy(section.Meetings, func(entry model.MeetingEntry) bool {
			meetingType, ok := catalog.MeetingType(entry.MeetingTypeId)
			return ok && meetingType == model.Lecture
		})
	})
	slices.Sort(ids)
	return ids
}

func measure(mode string, test TestMetadata) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	lectures := strings.Join(lo.Map(test.Lectures, func(id uint64, _ int) string { return strconv.FormatUint(id, 10) }), ",")
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-mode", mode, "-file", test.Name, "-lectures", lectures, "-out", os.DevNull)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result = found
	case 20:
		result = none
	case 25:
		result = exhausted
	default:
		log.Fatalf("an error occurred during the execution of \"classcomposer\" at catalog \"%v\" using mode \"%v\": %v\n", test.Name, mode, stdErr.String())
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Mode", "Catalog", "Sections", "Lectures", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Mode,
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Sections),
			fmt.Sprintf("%d", len(result.Test.Lectures)),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseDurationLine(line string) int64 {
	_, durationStr, _ := strings.Cut(line, "(h:mm:ss or m:ss): ")
	return parseDuration(strings.TrimSpace(durationStr))
}

// Parses the "h:mm:ss.cc" or "m:ss.cc" wall clock of /usr/bin/time into milliseconds
func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	seconds, hundredths, _ := strings.Cut(parts[len(parts)-1], ".")

	var total int
	switch len(parts) {
	case 3:
		total = lo.Must(strconv.Atoi(parts[0]))*3600 + lo.Must(strconv.Atoi(parts[1]))*60
	case 2:
		total = lo.Must(strconv.Atoi(parts[0])) * 60
	default:
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	total += lo.Must(strconv.Atoi(seconds))

	return int64(total)*1000 + int64(lo.Must(strconv.Atoi(hundredths))*10)
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / KB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])
	return int64(lo.Must(strconv.Atoi(strings.TrimSuffix(percentageStr, "%"))))
}
