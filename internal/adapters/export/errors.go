package export

import "errors"

// Sentinel error kinds for this package.
var (
	ErrExport = errors.New("export observation file failed")
)
