package codec

import (
	"fmt"
	"io"

	"topogen/internal/inventory"
)

// Exporter interface for exporting an inventory to various formats
type Exporter interface {
	Export(inv *inventory.Inventory, w io.Writer) error
	Format() string
}

// ForFormat returns the exporter registered for a format identifier
func ForFormat(format string) (Exporter, error) {
	for _, e := range []Exporter{NewAnsibleCodec(), NewJSONCodec()} {
		if e.Format() == format {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
