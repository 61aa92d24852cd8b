package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/internal/config"
	"go-inventory-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// FormFieldCSV is the multipart field carrying the upload.
const FormFieldCSV = "csvFile"

type CSVHandler struct {
	service service.IngestService
	upload  config.Upload
}

func NewCSVHandler(s service.IngestService, upload config.Upload) *CSVHandler {
	return &CSVHandler{service: s, upload: upload}
}

// UploadCSV saves the file under the upload dir and ingests it. The saved
// copy is always removed by the ingest service.
// POST /api/v1/csv/upload
func (h *CSVHandler) UploadCSV(c *fiber.Ctx) error {
	fh, err := c.FormFile(FormFieldCSV)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only CSV files are allowed"})
	}
	if fh.Size > h.upload.MaxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File too large"})
	}

	if err := os.MkdirAll(h.upload.Dir, 0o755); err != nil {
		return respondError(c, fmt.Errorf("create upload dir: %w", err), "Server error processing CSV")
	}
	path := filepath.Join(h.upload.Dir, fmt.Sprintf("csv-%d-%s-%s", time.Now().UnixNano(), uuid.NewString(), filepath.Base(fh.Filename)))
	if err := c.SaveFile(fh, path); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			slog.WarnContext(c.UserContext(), "remove partial upload", slog.String("path", path), slog.Any("error", rmErr))
		}
		return respondError(c, fmt.Errorf("save upload: %w", err), "Server error processing CSV")
	}

	report, err := h.service.ImportFile(c.UserContext(), path, principal(c))
	if err != nil {
		if apperr.IsKind(err, apperr.KindBadRequest) {
			return respondError(c, err, "")
		}
		return respondError(c, err, "Server error processing CSV")
	}

	return c.JSON(fiber.Map{
		"message": "CSV processed successfully",
		"data":    report,
	})
}
