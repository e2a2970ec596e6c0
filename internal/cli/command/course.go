package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
)

// CourseCommand returns the course command group.
func CourseCommand() *cli.Command {
	return &cli.Command{
		Name:  "course",
		Usage: "Course catalog",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List courses",
				Action:  courseListAction,
			},
			{
				Name:      "get",
				Usage:     "Show one course",
				ArgsUsage: "COURSE_ID",
				Action:    courseGetAction,
			},
			{
				Name:   "modules",
				Usage:  "List the course modules of a student or class",
				Flags:  filterFlags(flagStudent, flagClass),
				Action: courseModulesAction,
			},
		},
	}
}

func courseListAction(c *cli.Context) error {
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.Course] {
		return output.View[[]domain.Course]{
			Loading: "Đang tải khóa học...",
			Failure: "Không thể tải danh sách khóa học",
			Empty:   "Chưa có khóa học nào",
			Fetch:   svc.Courses,
			Table:   courseTable,
		}
	})
}

func courseGetAction(c *cli.Context) error {
	id, err := requireArg(c, "course ID")
	if err != nil {
		return err
	}
	return runView(c, func(svc *service.CatalogService) output.View[*domain.Course] {
		return output.View[*domain.Course]{
			Loading: "Đang tải khóa học...",
			Failure: "Không thể tải khóa học",
			Fetch: func(ctx context.Context) (*domain.Course, error) {
				return svc.Course(ctx, id)
			},
			Table: courseDetail,
		}
	})
}

func courseModulesAction(c *cli.Context) error {
	f := filterFrom(c)
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.CourseModule] {
		return output.View[[]domain.CourseModule]{
			Loading: "Đang tải học phần...",
			Failure: "Không thể tải danh sách học phần",
			Empty:   "Chưa có học phần nào",
			Fetch: func(ctx context.Context) ([]domain.CourseModule, error) {
				return svc.CourseModules(ctx, f)
			},
			Table: moduleTable,
		}
	})
}

func courseTable(courses []domain.Course) *output.Table {
	t := output.NewTable("ID", "TÊN KHÓA HỌC", "THỜI LƯỢNG", "HỌC PHÍ", "ĐANG MỞ")
	for _, c := range courses {
		t.AddRow(c.ID.String(), c.Name, output.FormatDuration(c.Duration.Int()),
			output.FormatPrice(c.Price), output.YesNo(c.IsActive))
	}
	return t
}

func courseDetail(c *domain.Course) *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("ID", c.ID.String())
	t.AddRow("Tên", c.Name)
	t.AddRow("Mô tả", c.Description)
	t.AddRow("Thời lượng", output.FormatDuration(c.Duration.Int()))
	t.AddRow("Học phí", output.FormatPrice(c.Price))
	t.AddRow("Đang mở", output.YesNo(c.IsActive))
	t.AddRow("Ảnh", c.ThumbnailURL)
	return t
}

func moduleStatus(m domain.CourseModule) string {
	if m.Active() {
		return "Đang hoạt động"
	}
	return "Tạm dừng"
}

func moduleTable(modules []domain.CourseModule) *output.Table {
	t := output.NewTable("ID", "HỌC PHẦN", "THỜI LƯỢNG", "CẤP ĐỘ", "GIẢNG VIÊN", "TRẠNG THÁI")
	for _, m := range modules {
		t.AddRow(m.ID.String(), m.Name, output.FormatDurationShort(m.Duration.Int()),
			m.Level, m.Instructor, moduleStatus(m))
	}
	return t
}
