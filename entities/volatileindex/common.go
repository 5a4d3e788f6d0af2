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

// BuildConfig carries the ambient concerns every Build* call shares:
// where to log to and where to publish metrics. The zero value is usable —
// a standard logger and a no-op Metrics are substituted in.
type BuildConfig struct {
	Logger  logrus.FieldLogger
	Metrics *Metrics
}

func (c BuildConfig) withDefaults() BuildConfig {
	if c.Logger == nil {
		c.Logger = defaultLogger()
	}
	if c.Metrics == nil {
		c.Metrics = noopMetrics()
	}
	return c
}

// Stats is the read-only introspection surface every sealed index exposes.
type Stats struct {
	Elements     int
	DistinctKeys int
	KeyFailures  int
}
