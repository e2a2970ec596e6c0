package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/browser"
	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
	"github.com/bdu-steam/steam-cli/pkg/imageurl"
)

// openURL opens a link in the system browser.
var openURL = browser.OpenURL

// FacilityCommand returns the facility command group.
func FacilityCommand() *cli.Command {
	return &cli.Command{
		Name:  "facility",
		Usage: "Facilities of the center",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List facilities",
				Action:  facilityListAction,
			},
		},
	}
}

// NewsCommand returns the news command group.
func NewsCommand() *cli.Command {
	return &cli.Command{
		Name:  "news",
		Usage: "Center news",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List news articles",
				Action:  newsListAction,
			},
			{
				Name:      "open",
				Usage:     "Open an article in the browser",
				ArgsUsage: "[--print] NEWS_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "print",
						Usage: "Only print the link",
					},
				},
				Action: newsOpenAction,
			},
		},
	}
}

func facilityListAction(c *cli.Context) error {
	rt := GetRuntime(c)
	norm := imageurl.Normalizer{Width: rt.Config.Image.Width}
	fallback := rt.Config.Image.Fallback

	return runView(c, func(svc *service.CatalogService) output.View[[]domain.Facility] {
		return output.View[[]domain.Facility]{
			Loading: "Đang tải cơ sở vật chất...",
			Failure: "Không thể tải cơ sở vật chất",
			Empty:   "Chưa có cơ sở vật chất nào",
			Fetch: func(ctx context.Context) ([]domain.Facility, error) {
				items, err := svc.Facilities(ctx)
				if err != nil {
					return nil, err
				}
				for i := range items {
					items[i].Images = resolveImages(items[i].Images, norm, fallback)
				}
				return items, nil
			},
			Table: facilityTable,
		}
	})
}

func resolveImages(raw []string, norm imageurl.Normalizer, fallback string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if u := norm.Resolve(r, fallback); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func facilityTable(items []domain.Facility) *output.Table {
	t := output.NewTable("ID", "TÊN", "MÔ TẢ", "SỐ ẢNH", "ẢNH")
	for _, f := range items {
		first := ""
		if len(f.Images) > 0 {
			first = f.Images[0]
		}
		t.AddRow(f.ID.String(), f.Name, f.Description, strconv.Itoa(len(f.Images)), first)
	}
	return t
}

func newsListAction(c *cli.Context) error {
	return runView(c, func(svc *service.CatalogService) output.View[[]domain.News] {
		return output.View[[]domain.News]{
			Loading: "Đang tải tin tức...",
			Failure: "Không thể tải tin tức",
			Empty:   "Chưa có tin tức nào",
			Fetch:   svc.News,
			Table:   newsTable,
		}
	})
}

func newsTable(items []domain.News) *output.Table {
	t := output.NewTable("ID", "TIÊU ĐỀ", "CHUYÊN MỤC", "NGÀY", "THỜI GIAN ĐỌC", "TÓM TẮT")
	for _, n := range items {
		t.AddRow(n.ID.String(), n.Title, n.Category, n.PublishedAt(), n.ReadTime, n.Abstract())
	}
	return t
}

func newsOpenAction(c *cli.Context) error {
	id, err := requireArg(c, "news ID")
	if err != nil {
		return err
	}
	conn, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	rt := GetRuntime(c)

	ctx, stop := commandContext(c)
	defer stop()

	item, err := catalog(rt, conn, nil).NewsItem(ctx, id)
	if err != nil {
		return rt.Printer.Failure("Không thể tải tin tức", err)
	}
	if item.Link == "" {
		return fmt.Errorf("news %s has no link", id)
	}

	rt.Printer.Println(item.Link)
	if c.Bool("print") {
		return nil
	}
	// The link is already printed; a missing browser is not a failure.
	if err := openURL(item.Link); err != nil {
		rt.Log.Warn("could not open browser", "url", item.Link, "error", err)
	}
	return nil
}
