package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const memberSheet = "Members"

var memberHeader = []interface{}{
	"ID", "Name", "Email", "Phone", "Status", "Tier", "Join Date",
	"Subscription", "Monthly Rate", "Notes",
}

type Service struct {
	members repository.MemberRepository
}

func NewService(members repository.MemberRepository) *Service {
	return &Service{members: members}
}

// WriteMembers writes an .xlsx workbook of the members matching filter.
func (s *Service) WriteMembers(ctx context.Context, filter *model.MemberFilter, w io.Writer) error {
	members, err := s.members.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", memberSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(memberSheet, "A1", &memberHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, m := range members {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		rate, _ := m.MonthlyRate.Float64()
		row := []interface{}{
			m.ID, m.Name, m.Email, m.Phone, string(m.Status), string(m.Tier),
			m.JoinDate.Format("2006-01-02"), m.SubscriptionType, rate, m.Notes,
		}
		if err := f.SetSheetRow(memberSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write member %d: %w", m.ID, err)
		}
	}

	if err := f.SetPanes(memberSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
