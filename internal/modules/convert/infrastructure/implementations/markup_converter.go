package implementations

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
	"github.com/docgate/docgate/internal/modules/convert/domain/errors"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedUtilities "github.com/docgate/docgate/internal/modules/shared/utilities"
)

// MarkupConverter implements definitions.MarkupConverter by
// spawning a per-job Pandoc-style converter process.
type MarkupConverter struct {
	binaryPath string
	health     definitions.HealthAggregator
}

func NewMarkupConverter(health definitions.HealthAggregator) *MarkupConverter {
	env := sharedInfrastructure.GetEnvironment()
	converter := &MarkupConverter{binaryPath: env.MarkupConverterPath, health: health}
	converter.Healthy()
	return converter
}

var _ definitions.MarkupConverter = (*MarkupConverter)(nil)

func (m *MarkupConverter) Configured() bool {
	return m.binaryPath != ""
}

func (m *MarkupConverter) Healthy() bool {
	if !m.Configured() {
		return false
	}
	_, err := exec.LookPath(m.binaryPath)
	healthy := err == nil
	if m.health != nil {
		status := definitions.HealthStatusUnhealthy
		if healthy {
			status = definitions.HealthStatusHealthy
		}
		m.health.Set("pandoc", status)
	}
	return healthy
}

// Convert transcodes input to UTF-8 if
// necessary, spawn the converter with a source-format tag, a PDF engine
// argument and the standalone flag, stream input/output, and enforce
// PDF_RENDER_TIMEOUT.
func (m *MarkupConverter) Convert(sourceFormatTag string, input []byte) ([]byte, error) {
	if !m.Configured() {
		return nil, errors.NewInternalError("markup converter is not configured", nil)
	}

	utf8Input, err := transcodeToUTF8(input)
	if err != nil {
		return nil, errors.NewValidationError("could not determine document character encoding", map[string]any{"error": err.Error()})
	}

	env := sharedInfrastructure.GetEnvironment()
	logger := sharedUtilities.GetLogger().WithField("format", sourceFormatTag)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(env.PDFRenderTimeout)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.binaryPath,
		"--from", sourceFormatTag,
		"--to", "pdf",
		"--pdf-engine", "pdflatex",
		"--standalone",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(utf8Input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, errors.NewConvertTimeoutError("markup conversion timed out", map[string]any{"format": sourceFormatTag})
	}
	if err != nil {
		logger.WithError(err).Warn("markup converter exited with an error")
		return nil, errors.NewConvertError("markup conversion failed", map[string]any{
			"format": sourceFormatTag,
			"stderr": stderr.String(),
		})
	}

	return stdout.Bytes(), nil
}
