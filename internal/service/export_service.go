package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/wayplan-api/internal/dto"
	"github.com/noah-isme/wayplan-api/internal/models"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
	"github.com/noah-isme/wayplan-api/pkg/storage"
)

// Export formats accepted by CreateArtifact.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
	ExportFormatICS = "ics"
)

var exportContentTypes = map[string]string{
	ExportFormatCSV: "text/csv",
	ExportFormatPDF: "application/pdf",
	ExportFormatICS: "text/calendar",
}

// ExportService renders trip exports to disk and hands out signed download
// tokens, so large files are fetched in a second request instead of inline.
type ExportService struct {
	budget   *BudgetService
	calendar *CalendarService
	store    *storage.LocalStorage
	signer   *storage.Signer
	logger   *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(budget *BudgetService, calendar *CalendarService, store *storage.LocalStorage, signer *storage.Signer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{budget: budget, calendar: calendar, store: store, signer: signer, logger: logger}
}

// CreateArtifact renders the trip in the requested format and stores it.
func (s *ExportService) CreateArtifact(trip *models.Trip, format string) (*dto.ExportArtifact, error) {
	var (
		payload []byte
		err     error
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.budget.ExportCSV(trip)
	case ExportFormatPDF:
		payload, err = s.budget.ExportPDF(trip)
	case ExportFormatICS:
		payload, err = s.calendar.RenderICS(trip)
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupported, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("%s/%s.%s", trip.ID, exportID, format)
	if _, err := s.store.Save(filename, payload); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Sign(exportID, filename)
	if err != nil {
		return nil, fmt.Errorf("sign export token: %w", err)
	}

	s.logger.Info("export created",
		zap.String("tripId", trip.ID),
		zap.String("exportId", exportID),
		zap.String("format", format),
		zap.Time("expiresAt", expiresAt))

	return &dto.ExportArtifact{
		ID:        exportID,
		TripID:    trip.ID,
		Format:    format,
		File:      filename,
		Token:     token,
		URL:       "/api/v1/exports/" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// Open validates the token and returns the file plus its content type.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	_, relPath, err := s.signer.Verify(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	contentType := "application/octet-stream"
	for format, ct := range exportContentTypes {
		if strings.HasSuffix(relPath, "."+format) {
			contentType = ct
			break
		}
	}
	return file, contentType, nil
}

// Sweep deletes artifacts older than ttl. Intended for a startup pass or a
// periodic ticker.
func (s *ExportService) Sweep(ttl time.Duration) {
	deleted, err := s.store.Sweep(ttl)
	if err != nil {
		s.logger.Warn("export sweep failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("export sweep", zap.Int("deleted", len(deleted)))
	}
}
