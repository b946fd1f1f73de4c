package errutil

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Check the supplied error, log and exit if non-nil.
func Check(err error) {
	CheckWithContext(err, "")
}

// CheckWithContext checks the error and exit if it is not nil. Logs additional context information.
// Error is reported as a single line; full chain with stack traces is logged at debug level.
func CheckWithContext(err error, context string) {
	if err == nil {
		return
	}
	if context != "" {
		err = errors.WithMessage(err, context)
	}
	logrus.Debugf("%+v", err)
	logrus.Fatal(Line(err))
}

// Line returns error message folded into one line.
func Line(err error) string {
	return strings.Join(strings.Fields(strings.Replace(err.Error(), "\n", " ", -1)), " ")
}
