package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldDomain      = "domain"
	FieldSheet       = "sheet"
	FieldRows        = "rows"
	FieldRowsDropped = "rows_dropped"
	FieldRecords     = "records"
	FieldCategories  = "categories"
	FieldBuckets     = "buckets"
	FieldChart       = "chart"
	FieldGrandTotal  = "grand_total"
	FieldSnapshotID  = "snapshot_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldClientIP    = "client_ip"
	FieldDuration    = "duration_ms"
	FieldBackend     = "backend"
	FieldPort        = "port"
	FieldInterval    = "interval"
)

// Standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentPipeline = "pipeline"
	ComponentCharts   = "charts"
	ComponentWorkbook = "workbook"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
)
