package conf

const (
	// MaxBatchJobs defines the limit of jobs in one verification batch file.
	MaxBatchJobs = 100000
	// MaxSeparatorCacheSize defines the limit of cached domain separators.
	MaxSeparatorCacheSize = 4096
	// MaxWorkerCount defines the limit of batch verification goroutines.
	MaxWorkerCount = 1024
)
