package constants

// DocumentStatus is the outcome of processing one input document.
type DocumentStatus string

const (
	DocumentProcessed DocumentStatus = "PROCESSED" // record written
	DocumentSkipped   DocumentStatus = "SKIPPED"   // read or write failed, batch continued
)
