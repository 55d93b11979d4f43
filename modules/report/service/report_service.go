package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tempus/core/errors"
	"tempus/core/storage"
	"tempus/core/utils"
	availabilityService "tempus/modules/availability/service"
	"tempus/modules/report/dto"

	"github.com/google/uuid"
)

// ReportService renders availability grids into JSON documents and stores
// them in object storage.
type ReportService struct {
	analyzer availabilityService.AvailabilityServiceInterface
	store    storage.ObjectStore
	now      func() time.Time
}

// ReportServiceInterface defines the service contract
type ReportServiceInterface interface {
	GenerateAvailabilityReport(ctx context.Context, requesterID uuid.UUID, req *dto.GenerateAvailabilityReportRequest) (*dto.ReportResponse, *errors.AppError)
}

func NewReportService(analyzer availabilityService.AvailabilityServiceInterface, store storage.ObjectStore) ReportServiceInterface {
	return &ReportService{analyzer: analyzer, store: store, now: time.Now}
}

func (s *ReportService) GenerateAvailabilityReport(ctx context.Context, requesterID uuid.UUID, req *dto.GenerateAvailabilityReportRequest) (*dto.ReportResponse, *errors.AppError) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}

	slots, appErr := s.analyzer.AnalyzeGrid(ctx, req.AttendeeEmails, req.StartTime, req.EndTime, req.SlotDurationMinutes)
	if appErr != nil {
		return nil, appErr
	}

	report := dto.AvailabilityReport{
		GeneratedAt:    s.now(),
		RequestedBy:    requesterID.String(),
		AttendeeEmails: req.AttendeeEmails,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Slots:          slots,
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to render report", err)
	}

	key := fmt.Sprintf("reports/availability/%s/%s-%s.json",
		requesterID, report.GeneratedAt.Format("20060102T150405"), utils.GenerateID())
	location, err := s.store.Put(ctx, key, "application/json", body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to store report", err)
	}

	resp := &dto.ReportResponse{
		Location:    location,
		GeneratedAt: report.GeneratedAt,
		SlotCount:   len(slots),
	}
	for i := range slots {
		if slots[i].AllAvailable && slots[i].TotalAttendees > 0 {
			resp.FullyFreeSlot = &slots[i]
			break
		}
	}
	return resp, nil
}
