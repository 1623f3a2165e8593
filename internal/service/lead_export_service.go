package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"autostream-assistant/internal/dto"
	"autostream-assistant/internal/entity"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/repository/specification"
	"autostream-assistant/internal/repository/unitofwork"

	"github.com/xuri/excelize/v2"
)

const leadSheet = "Leads"

var leadHeader = []interface{}{"Captured At", "Name", "Email", "Platform", "Plan", "Session"}

type ILeadExportService interface {
	Export(ctx context.Context, request dto.ExportLeadsRequest, path string) (*dto.ExportLeadsResponse, error)
}

type leadExportService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewLeadExportService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ILeadExportService {
	return &leadExportService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *leadExportService) Export(ctx context.Context, request dto.ExportLeadsRequest, path string) (*dto.ExportLeadsResponse, error) {
	specs := exportSpecifications(request)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	leads, err := uow.LeadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("load leads: %w", err)
	}

	err = writeFileOrRemove(path, func(w io.Writer) error {
		return WriteLeadsWorkbook(w, leads)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("LeadExport", "Leads exported", map[string]interface{}{"path": path, "count": len(leads)})
	return &dto.ExportLeadsResponse{Path: path, Count: len(leads)}, nil
}

// writeFileOrRemove deletes path again when write or close fails.
func writeFileOrRemove(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return write(f)
}

func exportSpecifications(request dto.ExportLeadsRequest) []specification.Specification {
	specs := []specification.Specification{
		specification.CapturedBetween{From: request.From, To: request.To},
	}
	if request.Plan != "" {
		specs = append(specs, specification.LeadByPlan{Plan: request.Plan})
	}
	if request.Platform != "" {
		specs = append(specs, specification.Filter("platform", request.Platform))
	}
	specs = append(specs,
		specification.OrderBy{Field: "captured_at", Desc: request.Newest},
		specification.Pagination{Limit: request.Limit},
	)
	return specs
}

// WriteLeadsWorkbook writes one header row and one row per lead to a single-sheet workbook.
func WriteLeadsWorkbook(w io.Writer, leads []*entity.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leadSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(leadSheet, "A1", &leadHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetPanes(leadSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, lead := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			lead.CapturedAt.UTC().Format(time.RFC3339),
			lead.Name,
			lead.Email,
			lead.Platform,
			lead.Plan,
			lead.SessionId,
		}
		if err := f.SetSheetRow(leadSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(leadSheet, "A", "F", 24); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}
