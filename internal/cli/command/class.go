package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
)

// ClassCommand returns the class command group.
func ClassCommand() *cli.Command {
	return &cli.Command{
		Name:  "class",
		Usage: "Classes and their course modules",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List classes",
				Flags:   filterFlags(flagStudent),
				Action:  classListAction,
			},
			{
				Name:      "get",
				Usage:     "Show a class and its course modules",
				ArgsUsage: "[--student ID] CLASS_ID",
				Flags:     filterFlags(flagStudent),
				Action:    classGetAction,
			},
		},
	}
}

func classListAction(c *cli.Context) error {
	f := filterFrom(c)
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.ClassRoom] {
		return output.View[[]domain.ClassRoom]{
			Loading: "Đang tải danh sách lớp học...",
			Failure: "Không thể tải danh sách lớp học của học viên",
			Empty:   "Chưa có lớp học nào",
			Fetch: func(ctx context.Context) ([]domain.ClassRoom, error) {
				return svc.Classes(ctx, f)
			},
			Table: classTable,
		}
	})
}

func classGetAction(c *cli.Context) error {
	id, err := requireArg(c, "class ID")
	if err != nil {
		return err
	}
	f := filterFrom(c)
	return runView(c, func(svc *service.CatalogService) output.View[*service.ClassDetail] {
		return output.View[*service.ClassDetail]{
			Loading: "Đang tải lớp học...",
			Failure: "Không thể tải thông tin lớp học",
			Fetch: func(ctx context.Context) (*service.ClassDetail, error) {
				return svc.ClassRoom(ctx, id, f)
			},
			Table: classDetail,
		}
	})
}

func classTable(classes []domain.ClassRoom) *output.Table {
	t := output.NewTable("ID", "LỚP", "GIÁO VIÊN", "BẮT ĐẦU", "KẾT THÚC", "LỊCH HỌC")
	for _, cr := range classes {
		t.AddRow(cr.ID.String(), cr.Name, cr.Label(), cr.StartDate, cr.EndDate, cr.ScheduleText())
	}
	return t
}

func classDetail(d *service.ClassDetail) *output.Table {
	cr := d.Class
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("ID", cr.ID.String())
	t.AddRow("Lớp", cr.Name)
	t.AddRow("Giáo viên", cr.Label())
	t.AddRow("Sĩ số tối đa", strconv.Itoa(cr.MaxStudents))
	t.AddRow("Thời gian", cr.StartDate+" - "+cr.EndDate)
	t.AddRow("Lịch học", cr.ScheduleText())
	for i, m := range d.Modules {
		t.AddRow(fmt.Sprintf("Học phần %d", i+1), fmt.Sprintf("%s (%s)", m.Name, moduleStatus(m)))
	}
	return t
}
