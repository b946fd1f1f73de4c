package solver

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tajo2025/perfsweep/pkg/executor"
)

const stubCmake = `#!/bin/sh
if [ "$1" = "--build" ]; then
	[ -n "$STUB_NO_ARTIFACT" ] && exit 0
	mkdir -p src && printf '#!/bin/sh\necho built\n' > src/tajo_2025
	exit 0
fi
[ -n "$STUB_CMAKE_FAIL" ] && { echo "CMake Error: The source directory does not exist." >&2; exit 1; }
exit 0
`

func TestBuilder(t *testing.T) {
	ctx := context.Background()

	Convey("While building solver with stub cmake", t, func() {
		env := newStubEnv(t)
		defer env.cleanup()

		binDir := filepath.Join(env.dir, "bin")
		So(os.MkdirAll(binDir, 0755), ShouldBeNil)
		writeScript(t, filepath.Join(binDir, "cmake"), stubCmake)
		oldPath := os.Getenv("PATH")
		So(os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath), ShouldBeNil)
		defer os.Setenv("PATH", oldPath)

		conf := env.config
		conf.Path = filepath.Join(env.dir, "harness", "tajo_2025")
		b := NewBuilder(executor.NewLocal(env.outputDir()), conf)

		Convey("Artifact should be installed as executable", func() {
			So(b.Build(ctx), ShouldBeNil)
			info, err := os.Stat(conf.Path)
			So(err, ShouldBeNil)
			So(info.Mode().Perm()&0100 != 0, ShouldBeTrue)
			content, err := ioutil.ReadFile(conf.Path)
			So(err, ShouldBeNil)
			So(string(content), ShouldContainSubstring, "echo built")
		})

		Convey("Failing configure step should be a BuildFailure", func() {
			defer setEnv(t, "STUB_CMAKE_FAIL")()
			err := b.Build(ctx)
			So(IsBuildFailure(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "configure")
			So(err.Error(), ShouldContainSubstring, "CMake Error")
		})

		Convey("Missing artifact should be a BuildFailure", func() {
			defer setEnv(t, "STUB_NO_ARTIFACT")()
			err := b.Build(ctx)
			So(IsBuildFailure(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "not found")
		})
	})
}
