package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tajo2025/perfsweep/pkg/experiment"
	"github.com/tajo2025/perfsweep/pkg/utils/fs"
)

// Initialize creates logs directory and configures logrus to write both to stderr and to a session log file.
// Returned file must be closed by the caller when the run finishes.
func Initialize(appName string, session experiment.Session, logDir string) (*os.File, error) {
	if err := fs.EnsureDir(logDir); err != nil {
		return nil, errors.Wrap(err, "cannot create logs directory")
	}

	logPath := filepath.Join(logDir, appName+"_"+session.Name+".log")
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create log file %q", logPath)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))

	logrus.Infof("Log file %q", logPath)
	logrus.WithField("run", session.UUID).Infof("Starting %s session %s", appName, session.Name)
	return logFile, nil
}
