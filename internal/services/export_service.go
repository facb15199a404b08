package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iotlab-kiit/registration-service/internal/models"
	"github.com/iotlab-kiit/registration-service/internal/repositories"
	"github.com/iotlab-kiit/registration-service/internal/utils"
)

// ExportSheetName is the worksheet the registrant dump lands on.
const ExportSheetName = "Registrations"

var exportHeaders = []string{
	"Roll Number", "Full Name", "Email", "Phone", "University", "Gender",
	"Ticket ID", "Registered At", "Paid", "Role", "Approved At", "Approved By",
}

type exportService struct {
	repo   repositories.RegistrationRepository
	logger utils.Logger
}

func NewExportService(repo repositories.RegistrationRepository, logger utils.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportUsers renders every registrant, newest first, into an xlsx
// workbook and returns the serialized bytes.
func (s *exportService) ExportUsers(ctx context.Context) ([]byte, error) {
	regs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch registrations for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ExportSheetName)
	if err != nil {
		return nil, fmt.Errorf("create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ExportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for row, reg := range regs {
		for col, value := range exportRow(reg) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(ExportSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize export: %w", err)
	}

	s.logger.Info("registrant export generated", "rows", len(regs))
	return buf.Bytes(), nil
}

func exportRow(reg *models.Registration) []interface{} {
	approvedAt := ""
	if reg.ApprovedAt != nil {
		approvedAt = reg.ApprovedAt.Format(time.RFC3339)
	}
	approvedBy := ""
	if reg.ApprovedBy != nil {
		approvedBy = *reg.ApprovedBy
	}
	return []interface{}{
		reg.RollNumber,
		reg.FullName,
		reg.Email,
		reg.Phone,
		reg.University,
		string(reg.Gender),
		reg.UniqueID,
		reg.Timestamp.Format(time.RFC3339),
		reg.IsPaid,
		string(reg.Role),
		approvedAt,
		approvedBy,
	}
}
