package executor

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	//expectedDirMode is a string equivalent of 0755
	expectedDirMode = "drwxr-xr-x"
)

func TestCreateExecutorOutputFiles(t *testing.T) {
	Convey("I should be able to create files and folders for task output", t, func() {
		outputDir := t.TempDir()
		stdout, stderr, err := createExecutorOutputFiles(outputDir, "/usr/bin/time -v ./solver a.txt a.txt.out", "test")
		So(err, ShouldBeNil)
		So(stdout, ShouldNotBeNil)
		So(stderr, ShouldNotBeNil)
		defer stdout.Close()
		defer stderr.Close()

		Convey("Which should be placed in directory named after the binary", func() {
			parentDir := filepath.Dir(stdout.Name())
			So(filepath.Dir(parentDir), ShouldEqual, outputDir)
			So(filepath.Base(parentDir), ShouldStartWith, "test_time_")
			So(filepath.Dir(stderr.Name()), ShouldEqual, parentDir)

			pDirStat, err := os.Stat(parentDir)
			So(err, ShouldBeNil)
			So(pDirStat.Mode().String(), ShouldEqual, expectedDirMode)
		})
	})

	Convey("Empty command should be rejected", t, func() {
		_, _, err := createExecutorOutputFiles(t.TempDir(), "  ", "test")
		So(err, ShouldNotBeNil)
	})
}
