package services

import (
	"fmt"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
)

// Ensure Renderer implements the interface.
var _ driving.Renderer = (*Renderer)(nil)

// Display text.
const (
	categoryListTitle   = "カテゴリ一覧"
	serviceListTitleFmt = "%s のサービス"
	loadErrorTitle      = "読み込みエラー"
	categoryBadgeFmt    = "%d サービス"
	flipHint            = "クリックで詳細表示"
	linkLabel           = "公式サイトを見る"
	fallbackLink        = "#"

	noCategoriesMessage = "表示できるカテゴリがありません。"
	noServicesMessage   = "このカテゴリには表示できるサービスがありません。"
	loadErrorMessageFmt = "%sサービス情報を読み込めませんでした。ページを再読み込みしてもう一度お試しください。"
)

// Renderer turns view state into domain.Screen values. It holds no state.
type Renderer struct{}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Categories renders the category grid.
func (r *Renderer) Categories(categories []domain.Category) domain.Screen {
	screen := domain.Screen{
		View:        domain.ViewCategoryList,
		Title:       categoryListTitle,
		BackVisible: false,
	}

	if len(categories) == 0 {
		screen.Placeholder = noCategoriesMessage
		return screen
	}

	screen.CategoryTiles = make([]domain.CategoryTile, len(categories))
	for i := range categories {
		c := &categories[i]
		screen.CategoryTiles[i] = domain.CategoryTile{
			Index:        i,
			Key:          c.Key(),
			Name:         c.Name,
			Description:  c.Description,
			ServiceCount: c.ServiceCount(),
			Badge:        fmt.Sprintf(categoryBadgeFmt, c.ServiceCount()),
		}
	}
	return screen
}

// Services renders a category's service grid. A nil groups slice renders
// one flat section in dataset order. Positions run across all sections.
func (r *Renderer) Services(
	category domain.Category,
	groups []domain.ResolvedGroup,
	flipped int,
) domain.Screen {
	screen := domain.Screen{
		View:        domain.ViewServiceList,
		Title:       fmt.Sprintf(serviceListTitleFmt, category.Name),
		BackVisible: true,
	}

	if len(category.Services) == 0 {
		screen.Placeholder = noServicesMessage
		return screen
	}

	if groups == nil {
		groups = []domain.ResolvedGroup{{Services: category.Services}}
	} else {
		screen.Grouped = true
	}

	position := 0
	screen.Sections = make([]domain.Section, 0, len(groups))
	for _, group := range groups {
		section := domain.Section{
			Title:       group.Title,
			Description: group.Description,
			Tiles:       make([]domain.ServiceTile, 0, len(group.Services)),
		}
		for i := range group.Services {
			section.Tiles = append(section.Tiles, serviceTile(&group.Services[i], position, position == flipped))
			position++
		}
		screen.Sections = append(screen.Sections, section)
	}
	return screen
}

// LoadFailed renders the terminal load-error screen.
func (r *Renderer) LoadFailed(providerName string) domain.Screen {
	prefix := ""
	if providerName != "" {
		prefix = providerName + "の"
	}
	return domain.Screen{
		View:        domain.ViewCategoryList,
		Title:       loadErrorTitle,
		BackVisible: false,
		Failed:      true,
		Placeholder: fmt.Sprintf(loadErrorMessageFmt, prefix),
	}
}

func serviceTile(svc *domain.Service, position int, flipped bool) domain.ServiceTile {
	link := svc.Link
	if link == "" {
		link = fallbackLink
	}
	var features []string
	if len(svc.Features) > 0 {
		features = append(features, svc.Features...)
	}
	return domain.ServiceTile{
		Position:  position,
		Name:      svc.Name,
		Summary:   svc.Summary,
		Hint:      flipHint,
		Details:   svc.Details,
		Features:  features,
		Link:      link,
		LinkLabel: linkLabel,
		Flipped:   flipped,
	}
}
