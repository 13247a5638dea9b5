package ports

type HarvestMetrics interface {
	RecordExtraction(resourceType string, yield int)
	RecordCapReached(resourceType string)
	RecordCancel()
	RecordFlushFailure()
}
