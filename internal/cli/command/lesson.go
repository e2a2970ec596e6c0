package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
	"github.com/bdu-steam/steam-cli/pkg/imageurl"
)

// LessonCommand returns the lesson command group.
func LessonCommand() *cli.Command {
	return &cli.Command{
		Name:  "lesson",
		Usage: "Lessons of a class or module",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List lessons",
				Flags:   filterFlags(flagStudent, flagClass, flagModule),
				Action:  lessonListAction,
			},
			{
				Name:      "get",
				Usage:     "Show one lesson",
				ArgsUsage: "LESSON_ID",
				Action:    lessonGetAction,
			},
		},
	}
}

// GalleryCommand returns the gallery command group.
func GalleryCommand() *cli.Command {
	return &cli.Command{
		Name:  "gallery",
		Usage: "Lesson photo galleries",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List galleries with their lesson names and image links",
				Flags:   filterFlags(flagStudent, flagClass, flagModule, flagLesson),
				Action:  galleryListAction,
			},
		},
	}
}

// EvaluationCommand returns the evaluation command group.
func EvaluationCommand() *cli.Command {
	return &cli.Command{
		Name:  "evaluation",
		Usage: "Teacher evaluations of students",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List evaluations",
				Flags:   filterFlags(flagStudent, flagClass, flagModule, flagLesson),
				Action:  evaluationListAction,
			},
		},
	}
}

func lessonListAction(c *cli.Context) error {
	f := filterFrom(c)
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.Lesson] {
		return output.View[[]domain.Lesson]{
			Loading: "Đang tải bài học...",
			Failure: "Không thể tải danh sách bài học",
			Empty:   "Chưa có bài học nào",
			Fetch: func(ctx context.Context) ([]domain.Lesson, error) {
				return svc.Lessons(ctx, f)
			},
			Table: lessonTable,
		}
	})
}

func lessonGetAction(c *cli.Context) error {
	id, err := requireArg(c, "lesson ID")
	if err != nil {
		return err
	}
	return runView(c, func(svc *service.CatalogService) output.View[*domain.Lesson] {
		return output.View[*domain.Lesson]{
			Loading: "Đang tải bài học...",
			Failure: "Không thể tải bài học",
			Fetch: func(ctx context.Context) (*domain.Lesson, error) {
				return svc.Lesson(ctx, id)
			},
			Table: func(l *domain.Lesson) *output.Table {
				t := output.NewTable("FIELD", "VALUE")
				t.AddRow("ID", l.ID.String())
				t.AddRow("Bài học", l.Title())
				t.AddRow("Thứ tự", strconv.Itoa(l.SequenceNumber))
				t.AddRow("Học phần", l.Module.String())
				t.AddRow("Lớp", l.ClassRoom.String())
				t.AddRow("Ngày tạo", l.CreatedAt)
				return t
			},
		}
	})
}

func galleryListAction(c *cli.Context) error {
	conn, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	rt := GetRuntime(c)
	f := filterFrom(c)
	norm := imageurl.Normalizer{Width: rt.Config.Image.Width}
	fallback := rt.Config.Image.Fallback

	ctx, stop := commandContext(c)
	defer stop()

	update, finish := rt.Printer.Progress("Đang tải hình ảnh...")
	svc := catalog(rt, conn, update)

	view := output.View[[]service.GalleryEntry]{
		Loading: "Đang tải hình ảnh...",
		Failure: "Không thể tải hình ảnh học viên",
		Empty:   "Chưa có hình ảnh nào",
		Fetch: func(ctx context.Context) ([]service.GalleryEntry, error) {
			entries, err := svc.Gallery(ctx, f)
			if err != nil {
				return nil, err
			}
			return normalizeGallery(entries, norm, fallback), nil
		},
		Table: galleryTable(rt.Printer.Wide),
	}

	// The lesson lookups draw a progress bar instead of the spinner.
	res := service.Fetch(ctx, view.Fetch)
	finish()
	return output.Show(rt.Printer, view, res)
}

// normalizeGallery rewrites every image link into a displayable URL.
// Links that cannot be shown are dropped unless a fallback is configured.
func normalizeGallery(entries []service.GalleryEntry, norm imageurl.Normalizer, fallback string) []service.GalleryEntry {
	out := make([]service.GalleryEntry, len(entries))
	for i, e := range entries {
		e.Gallery.ImageURLs = resolveImages(e.Gallery.ImageURLs, norm, fallback)
		out[i] = e
	}
	return out
}

func galleryTable(wide bool) func([]service.GalleryEntry) *output.Table {
	return func(entries []service.GalleryEntry) *output.Table {
		t := output.NewTable("ID", "BÀI HỌC", "SỐ ẢNH", "ẢNH")
		for _, e := range entries {
			lesson := e.LessonName()
			if e.Lesson != nil {
				lesson = e.Lesson.Title()
			}
			images := ""
			if n := len(e.Gallery.ImageURLs); n > 0 {
				images = e.Gallery.ImageURLs[0]
				if wide {
					images = strings.Join(e.Gallery.ImageURLs, " ")
				}
			}
			t.AddRow(e.Gallery.ID.String(), lesson, strconv.Itoa(len(e.Gallery.ImageURLs)), images)
		}
		return t
	}
}

func evaluationListAction(c *cli.Context) error {
	f := filterFrom(c)
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.LessonEvaluation] {
		return output.View[[]domain.LessonEvaluation]{
			Loading: "Đang tải đánh giá...",
			Failure: "Không thể tải đánh giá học viên",
			Empty:   "Chưa có đánh giá nào",
			Fetch: func(ctx context.Context) ([]domain.LessonEvaluation, error) {
				return svc.LessonEvaluations(ctx, f)
			},
			Table: evaluationTable,
		}
	})
}

func evaluationTable(evals []domain.LessonEvaluation) *output.Table {
	t := output.NewTable("BÀI HỌC", "LỚP", "HỌC PHẦN", "ĐÁNH GIÁ", "NHẬN XÉT")
	for _, e := range evals {
		lesson := ""
		if e.Lesson != nil {
			lesson = e.Lesson.Title()
		}
		scores := make([]string, 0, len(e.SemanticScores))
		for _, s := range e.Scores() {
			scores = append(scores, s.Name+": "+s.Label)
		}
		t.AddRow(lesson, e.ClassRoomName, e.ModuleName, strings.Join(scores, ", "), e.Comment)
	}
	return t
}

func lessonTable(lessons []domain.Lesson) *output.Table {
	t := output.NewTable("ID", "BÀI HỌC", "NGÀY TẠO")
	for _, l := range lessons {
		t.AddRow(l.ID.String(), l.Title(), l.CreatedAt)
	}
	return t
}
