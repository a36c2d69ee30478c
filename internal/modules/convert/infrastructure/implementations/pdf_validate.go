package implementations

import (
	"bytes"

	pdfProcessingAPI "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfProcessingModel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docgate/docgate/internal/modules/convert/domain/errors"
)

// ValidatePDF runs a structural sanity check over converter output before
// it is returned to the client: a backend that exits 0 but emits a
// truncated or corrupt document should still surface as a conversion
// failure rather than an opaque 200 with unusable bytes.
func ValidatePDF(pdf []byte) error {
	reader := bytes.NewReader(pdf)

	if err := pdfProcessingAPI.Validate(reader, pdfProcessingModel.NewDefaultConfiguration()); err != nil {
		return errors.NewConvertError("produced PDF failed structural validation", map[string]any{"error": err.Error()})
	}
	return nil
}
