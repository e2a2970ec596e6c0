package command

import (
	"context"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
)

// AttendanceCommand returns the attendance command group.
func AttendanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "attendance",
		Usage: "Attendance records",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List attendance records",
				Flags:   filterFlags(flagStudent, flagClass),
				Action:  attendanceListAction,
			},
		},
	}
}

// TimetableCommand returns the timetable command group.
func TimetableCommand() *cli.Command {
	return &cli.Command{
		Name:  "timetable",
		Usage: "Scheduled lesson slots",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List time table slots",
				Flags: append(filterFlags(flagStudent, flagClass),
					&cli.StringFlag{
						Name:  "day",
						Usage: "Only slots on this day (dd/mm, dd/mm/yyyy or yyyy-mm-dd)",
					},
				),
				Action: timetableListAction,
			},
		},
	}
}

func attendanceListAction(c *cli.Context) error {
	f := filterFrom(c)
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.Attendance] {
		return output.View[[]domain.Attendance]{
			Loading: "Đang tải dữ liệu...",
			Failure: "Không thể tải dữ liệu điểm danh",
			Empty:   "Chưa có dữ liệu điểm danh",
			Fetch: func(ctx context.Context) ([]domain.Attendance, error) {
				return svc.Attendances(ctx, f)
			},
			Table: attendanceTable,
		}
	})
}

func attendanceTable(records []domain.Attendance) *output.Table {
	t := output.NewTable("BÀI HỌC", "LỚP", "HỌC PHẦN", "NGÀY", "TRẠNG THÁI")
	for _, a := range records {
		var lesson, day string
		if a.Lesson != nil {
			lesson, day = a.Lesson.Title(), a.Lesson.CreatedAt
		}
		t.AddRow(lesson, a.ClassRoomName, a.ModuleName, day, a.Status)
	}
	return t
}

func timetableListAction(c *cli.Context) error {
	f := filterFrom(c)
	day := c.String("day")
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.TimeTable] {
		return output.View[[]domain.TimeTable]{
			Loading: "Đang tải lịch học...",
			Failure: "Không thể tải lịch học",
			Empty:   "Chưa có lịch học nào",
			Fetch: func(ctx context.Context) ([]domain.TimeTable, error) {
				slots, err := svc.TimeTables(ctx, f)
				if err != nil || day == "" {
					return slots, err
				}
				return slotsOnDay(slots, day), nil
			},
			Table: func(slots []domain.TimeTable) *output.Table {
				return timetableTable(slots, time.Now())
			},
		}
	})
}

func slotsOnDay(slots []domain.TimeTable, day string) []domain.TimeTable {
	out := make([]domain.TimeTable, 0, len(slots))
	for _, s := range slots {
		if s.OnDay(day) {
			out = append(out, s)
		}
	}
	return out
}

func slotStatusLabel(s domain.SlotStatus) string {
	switch s {
	case domain.SlotUpcoming:
		return "Sắp tới"
	case domain.SlotOngoing:
		return "Đang diễn ra"
	case domain.SlotPast:
		return "Đã qua"
	default:
		return ""
	}
}

func timetableTable(slots []domain.TimeTable, now time.Time) *output.Table {
	t := output.NewTable("NGÀY", "GIỜ", "MÔN HỌC", "GIẢNG VIÊN", "PHÒNG", "TRẠNG THÁI")
	for _, s := range slots {
		t.AddRow(s.Day(), s.Hours(), s.Title(), s.Teaching(), s.Place(), slotStatusLabel(s.Status(now)))
	}
	return t
}
