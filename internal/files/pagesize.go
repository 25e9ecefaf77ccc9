package files

// DefaultPageSize is used when the caller does not ask for a page size.
const DefaultPageSize = 50

// Provider page size limits
const (
	DriveMaxPageSize = 1000
	GraphMaxPageSize = 999
)

// ClampPageSize returns n limited to [1, maxSize], or DefaultPageSize when n is not positive.
func ClampPageSize(n, maxSize int) int {
	if n <= 0 {
		n = DefaultPageSize
	}
	return min(n, maxSize)
}
