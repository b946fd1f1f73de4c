package parser

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const timeVerboseReport = `	Command being timed: "./tajo_2025 a.txt a.txt.out --bruteforce"
	User time (seconds): 0.01
	Elapsed (wall clock) time (h:mm:ss or m:ss): 0:00.01
	Average resident set size (kbytes): 0
	Maximum resident set size (kbytes): 4096
	Exit status: 0
`

func TestExecutionTimeParser(t *testing.T) {
	Convey("Parsing execution time from solver stdout", t, func() {
		Convey("should accept decimal value", func() {
			elapsed, err := ExecutionTimeFromString("Solving...\nExecution Time: 123.45 ms\n", "stdout")
			So(err, ShouldBeNil)
			So(elapsed, ShouldAlmostEqual, 123.45)
		})

		Convey("should accept zero", func() {
			elapsed, err := ExecutionTimeFromString("Execution Time: 0 ms", "stdout")
			So(err, ShouldBeNil)
			So(elapsed, ShouldEqual, 0)
		})

		Convey("should tolerate CRLF line endings and surrounding whitespace", func() {
			elapsed, err := ExecutionTimeFromString("  Execution Time:   7.5000 ms  \r\n", "stdout")
			So(err, ShouldBeNil)
			So(elapsed, ShouldAlmostEqual, 7.5)
		})

		Convey("should fail with ParseError when line is absent", func() {
			_, err := ExecutionTimeFromString("Mapping cost: 3\n", "stdout")
			So(err, ShouldNotBeNil)
			So(IsParseError(err), ShouldBeTrue)
		})

		Convey("should fail with ParseError on empty output", func() {
			_, err := ExecutionTimeFromString("", "stdout")
			So(IsParseError(err), ShouldBeTrue)
		})

		Convey("should fail with ParseError when value is not a number", func() {
			_, err := ExecutionTimeFromString("Execution Time: fast ms\n", "stdout")
			So(IsParseError(err), ShouldBeTrue)
		})

		Convey("should fail with ParseError when unit is missing", func() {
			_, err := ExecutionTimeFromString("Execution Time: 12\n", "stdout")
			So(IsParseError(err), ShouldBeTrue)
		})
	})

	Convey("Parsing execution time from result file", t, func() {
		Convey("Opening non-existing file should fail without ParseError", func() {
			_, err := FileWithExecutionTime("/non/existing/file.out")
			So(err, ShouldNotBeNil)
			So(IsParseError(err), ShouldBeFalse)
		})

		Convey("Readable result file should provide time", func() {
			path := filepath.Join(t.TempDir(), "instance.txt.out")
			So(os.WriteFile(path, []byte("0 -> 1\n\nExecution Time: 42.0000 ms\n"), 0644), ShouldBeNil)

			elapsed, err := FileWithExecutionTime(path)
			So(err, ShouldBeNil)
			So(elapsed, ShouldAlmostEqual, 42.0)
		})
	})
}

func TestMaxResidentSetSizeParser(t *testing.T) {
	Convey("Parsing peak memory from time -v report", t, func() {
		Convey("should accept full report", func() {
			kbytes, err := MaxResidentSetSizeFromString(timeVerboseReport, "stderr")
			So(err, ShouldBeNil)
			So(kbytes, ShouldEqual, 4096)
		})

		Convey("should accept single line", func() {
			kbytes, err := MaxResidentSetSizeFromString("Maximum resident set size (kbytes): 4096", "stderr")
			So(err, ShouldBeNil)
			So(kbytes, ShouldEqual, 4096)
		})

		Convey("should fail with ParseError on empty stream", func() {
			_, err := MaxResidentSetSizeFromString("", "stderr")
			So(IsParseError(err), ShouldBeTrue)
		})

		Convey("should fail with ParseError when phrase is absent", func() {
			_, err := MaxResidentSetSizeFromString("Average resident set size (kbytes): 0\n", "stderr")
			So(IsParseError(err), ShouldBeTrue)
		})

		Convey("should fail with ParseError on decimal value", func() {
			_, err := MaxResidentSetSizeFromString("Maximum resident set size (kbytes): 40.5\n", "stderr")
			So(IsParseError(err), ShouldBeTrue)
		})
	})
}
