//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2026 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package volatileindex

import "github.com/sirupsen/logrus"

// logBuildComplete emits the single debug-level log line each Build* call
// writes once sealed. It never includes the content of any
// key-build error: those must reach the caller verbatim and unremarked, not
// be narrated by the index itself.
func logBuildComplete(logger logrus.FieldLogger, variant string, elements, distinctKeys, failures int) {
	logger.WithFields(logrus.Fields{
		"variant":       variant,
		"elements":      elements,
		"distinct_keys": distinctKeys,
		"key_failures":  failures,
	}).Debug("volatile index sealed")
}

func defaultLogger() logrus.FieldLogger {
	return logrus.StandardLogger()
}
