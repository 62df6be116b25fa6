package sreg

import "github.com/sirupsen/logrus"

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used for non-fatal diagnostics.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		logger = l
	}
}
