package ports

type NavMetrics interface {
	RecordCommand(name string)
	RecordRebuild(domain string)
	RecordCacheHit(domain string)
}
