package metrics

import "time"

const (
	// should always be 1 second
	BPSMeasurementInterval = 1 * time.Second
	// can be adjusted as wished
	CPUUsageMeasurementInterval     = 1 * time.Second
	MemUsageMeasurementInterval     = 1 * time.Second
	DBSizeMeasurementInterval       = 1 * time.Minute
	RelayBacklogMeasurementInterval = 5 * time.Second
)
