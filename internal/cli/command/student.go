package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
)

// StudentCommand returns the student command group.
func StudentCommand() *cli.Command {
	return &cli.Command{
		Name:  "student",
		Usage: "Students registered by the current user",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List registered students",
				Action:  studentListAction,
			},
			{
				Name:  "register",
				Usage: "Register a new student",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "First name", Required: true},
					&cli.StringFlag{Name: "last-name", Usage: "Last name", Required: true},
					&cli.StringFlag{Name: "dob", Usage: "Date of birth (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "id-number", Usage: "Identification number (9-12 digits)", Required: true},
				},
				Action: studentRegisterAction,
			},
			{
				Name:   "profile",
				Usage:  "Show the current user's profile",
				Action: studentProfileAction,
			},
		},
	}
}

func studentListAction(c *cli.Context) error {
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.Student] {
		return output.View[[]domain.Student]{
			Loading: "Đang tải danh sách học viên...",
			Failure: "Không thể tải danh sách học viên",
			Empty:   "Chưa có học viên nào",
			Fetch:   svc.Students,
			Table:   studentTable,
		}
	})
}

func studentProfileAction(c *cli.Context) error {
	return runView(c, func(svc *service.CatalogService) output.View[*domain.AppUser] {
		return output.View[*domain.AppUser]{
			Loading: "Đang tải thông tin...",
			Failure: "Không thể tải thông tin tài khoản",
			Fetch:   svc.Profile,
			Table: func(u *domain.AppUser) *output.Table {
				t := output.NewTable("FIELD", "VALUE")
				t.AddRow("ID", u.ID.String())
				t.AddRow("Họ tên", u.Name)
				t.AddRow("Điện thoại", u.Phone)
				t.AddRow("Ảnh đại diện", u.AvatarURL)
				return t
			},
		}
	})
}

func studentRegisterAction(c *cli.Context) error {
	in := domain.NewRegistration{
		FirstName:            strings.TrimSpace(c.String("first-name")),
		LastName:             strings.TrimSpace(c.String("last-name")),
		DateOfBirth:          strings.TrimSpace(c.String("dob")),
		IdentificationNumber: strings.TrimSpace(c.String("id-number")),
	}
	rt := GetRuntime(c)

	// Validate before connecting so bad input never costs a bootstrap.
	if err := service.ValidateStruct(in); err != nil {
		return registrationFailure(rt.Printer, err)
	}

	conn, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, stop := commandContext(c)
	defer stop()

	reg, err := catalog(rt, conn, nil).CreateStudentRegistration(ctx, in)
	if err != nil {
		return registrationFailure(rt.Printer, err)
	}

	if rt.Printer.Format != output.FormatTable {
		return rt.Printer.Print(reg)
	}
	name := strings.TrimSpace(in.FirstName + " " + in.LastName)
	if reg != nil && reg.Student != nil {
		name = reg.Student.FullName()
	}
	rt.Printer.Printf("✓ Đã đăng ký học viên %s\n", name)
	return nil
}

// registrationFailure reports err, listing each invalid field.
func registrationFailure(p *output.Printer, err error) error {
	reported := p.Failure("Không thể đăng ký học viên", err)
	var de *domain.DomainError
	if errors.Is(err, domain.ErrValidation) && errors.As(err, &de) && de.Details != "" {
		for _, msg := range strings.Split(de.Details, "; ") {
			fmt.Fprintf(p.Err, "  - %s\n", msg)
		}
	}
	return reported
}

func studentTable(students []domain.Student) *output.Table {
	t := output.NewTable("ID", "HỌ TÊN", "NGÀY SINH", "SỐ ĐỊNH DANH")
	for _, s := range students {
		t.AddRow(s.ID.String(), s.FullName(), s.DateOfBirth, s.IdentificationNumber)
	}
	return t
}
