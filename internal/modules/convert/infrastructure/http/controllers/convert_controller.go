package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docgate/docgate/internal/modules/convert/application/use_cases"
	"github.com/docgate/docgate/internal/modules/convert/domain/dto"
	convertErrors "github.com/docgate/docgate/internal/modules/convert/domain/errors"
	"github.com/docgate/docgate/internal/modules/convert/infrastructure/http/requests"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
)

// ConvertController handles the single conversion endpoint: a multipart
// upload in, a PDF out.
type ConvertController struct {
	UseCase *use_cases.DispatchConversion
}

// Handle reads the multipart form, resolves the optional type hint,
// collects every uploaded resource besides the main input, and hands the
// assembled request to the dispatcher.
func (controller *ConvertController) Handle(c *gin.Context) {
	env := sharedInfrastructure.GetEnvironment()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, env.MaxFileSize)

	form, err := c.MultipartForm()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.Error(convertErrors.NewUploadTooLargeError("request body exceeds the configured upload size limit"))
			return
		}
		c.Error(convertErrors.NewValidationError("could not parse multipart form", map[string]any{"error": err.Error()}))
		return
	}

	inputFiles := form.File["input"]
	if len(inputFiles) != 1 {
		c.Error(convertErrors.NewValidationError("exactly one input field is required", map[string]any{"field": "input"}))
		return
	}

	typeHint := c.PostForm("type")
	hintRequest := requests.TypeHintRequest{Type: typeHint}
	if err := sharedInfrastructure.GetValidatorInstance().Struct(hintRequest); err != nil {
		c.Error(convertErrors.NewValidationError("type must be an alphabetic format tag", map[string]any{"type": typeHint}))
		return
	}

	inputBytes, inputName, err := readFormFile(inputFiles[0])
	if err != nil {
		c.Error(convertErrors.NewValidationError("could not read uploaded file", map[string]any{"error": err.Error()}))
		return
	}

	resourceFiles := form.File["resources"]
	if len(resourceFiles) > env.MaxResourceCount {
		c.Error(convertErrors.NewValidationError("too many resource files", map[string]any{
			"max":   env.MaxResourceCount,
			"count": len(resourceFiles),
		}))
		return
	}

	resources := make([]dto.Resource, 0, len(resourceFiles))
	for _, header := range resourceFiles {
		body, name, err := readFormFile(header)
		if err != nil {
			c.Error(convertErrors.NewValidationError("could not read resource file", map[string]any{"error": err.Error()}))
			return
		}
		resources = append(resources, dto.Resource{
			Name:        name,
			ContentType: header.Header.Get("Content-Type"),
			Body:        body,
		})
	}

	result, err := controller.UseCase.Execute(use_cases.DispatchConversionInput{
		InputBytes:  inputBytes,
		InputName:   inputName,
		ContentType: inputFiles[0].Header.Get("Content-Type"),
		Resources:   resources,
		TypeHint:    typeHint,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", result)
}

func readFormFile(header *multipart.FileHeader) ([]byte, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	return body, header.Filename, nil
}
