package solver

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Stub solver mimics the external contract: --gen writes the instance, --gen-suite writes tests/,
// plain run writes result file and prints the execution time unless STUB_QUIET is set.
const stubSolver = `#!/bin/sh
if [ "$1" = "--gen-suite" ]; then
	mkdir -p tests && echo suite > tests/suite_0.txt
	exit 0
fi
if [ "$3" = "--gen" ]; then
	[ -n "$STUB_GEN_FAIL" ] && { echo "cannot allocate graph" >&2; exit 2; }
	[ -n "$STUB_GEN_NOFILE" ] && exit 0
	echo "$4 $5 $6 $7 $8" > "$1"
	exit 0
fi
echo "$3" >> "$1.variants"
[ -n "$STUB_RUN_FAIL" ] && { echo "segmentation fault" >&2; exit 139; }
echo "Execution Time: 12.5 ms" > "$2"
[ -z "$STUB_QUIET" ] && echo "Execution Time: 12.5 ms"
exit 0
`

// Stub wrapper reports fixed peak memory the way GNU time -v does.
const stubTimeWrapper = `#!/bin/sh
"$@"
code=$?
echo "	Maximum resident set size (kbytes): 4096" >&2
exit $code
`

type stubEnv struct {
	dir    string
	config Config
}

func writeScript(t *testing.T, path, body string) {
	require.NoError(t, ioutil.WriteFile(path, []byte(body), 0755))
}

func newStubEnv(t *testing.T) stubEnv {
	dir, err := ioutil.TempDir("", "perfsweep-solver")
	require.NoError(t, err)

	solverPath := filepath.Join(dir, "tajo_2025")
	wrapperPath := filepath.Join(dir, "fake_time")
	writeScript(t, solverPath, stubSolver)
	writeScript(t, wrapperPath, stubTimeWrapper)

	return stubEnv{
		dir: dir,
		config: Config{
			Path:        solverPath,
			TimeWrapper: wrapperPath,
			WorkDir:     filepath.Join(dir, "workdir"),
			Timeout:     10 * time.Second,
			Build: BuildConfig{
				SourceDir: filepath.Join(dir, "src"),
				BuildDir:  filepath.Join(dir, "build"),
				Artifact:  "src/tajo_2025",
				Jobs:      2,
				Timeout:   10 * time.Second,
			},
		},
	}
}

func (e stubEnv) outputDir() string {
	return filepath.Join(e.dir, "output")
}

func (e stubEnv) cleanup() {
	os.RemoveAll(e.dir)
}

func setEnv(t *testing.T, key string) func() {
	require.NoError(t, os.Setenv(key, "1"))
	return func() { os.Unsetenv(key) }
}
