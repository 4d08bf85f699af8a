package domain

// ViewKind identifies which of the two views is active.
type ViewKind int

const (
	// ViewCategoryList is the default grid of categories.
	ViewCategoryList ViewKind = iota
	// ViewServiceList is the grid of services for one category.
	ViewServiceList
)

// String returns the string representation of the view kind.
func (k ViewKind) String() string {
	switch k {
	case ViewCategoryList:
		return "category_list"
	case ViewServiceList:
		return "service_list"
	default:
		return "unknown"
	}
}

// ViewState is the tagged union of the two views. Category is set only
// for ViewServiceList.
type ViewState struct {
	Kind     ViewKind
	Category *Category
}

// CategoryListState returns the default view state.
func CategoryListState() ViewState {
	return ViewState{Kind: ViewCategoryList}
}

// ServiceListState returns the view state for a selected category.
func ServiceListState(category Category) ViewState {
	return ViewState{Kind: ViewServiceList, Category: &category}
}

// Screen is a toolkit-independent description of what to display.
// Adapters (TUI, CLI, MCP) consume it; they never decide content themselves.
type Screen struct {
	// View is the state this screen was rendered from.
	View ViewKind

	// Title is the heading above the grid.
	Title string

	// BackVisible reports whether the back control is shown.
	BackVisible bool

	// Placeholder, when non-empty, replaces the grid with a single message.
	Placeholder string

	// Failed marks the terminal load-error screen.
	Failed bool

	// CategoryTiles is populated for ViewCategoryList.
	CategoryTiles []CategoryTile

	// Sections is populated for ViewServiceList. A flat grid is a single
	// section with an empty title.
	Sections []Section

	// Grouped reports whether Sections came from a resolved grouping.
	Grouped bool
}

// TileCount returns the number of tiles on the screen.
func (s Screen) TileCount() int {
	if s.View == ViewCategoryList {
		return len(s.CategoryTiles)
	}
	n := 0
	for i := range s.Sections {
		n += len(s.Sections[i].Tiles)
	}
	return n
}

// ServiceTile returns the service tile at a grid position.
func (s Screen) ServiceTile(position int) (*ServiceTile, bool) {
	for i := range s.Sections {
		for j := range s.Sections[i].Tiles {
			if s.Sections[i].Tiles[j].Position == position {
				return &s.Sections[i].Tiles[j], true
			}
		}
	}
	return nil, false
}

// FlippedCount returns how many service tiles show their back face.
func (s Screen) FlippedCount() int {
	n := 0
	for i := range s.Sections {
		for j := range s.Sections[i].Tiles {
			if s.Sections[i].Tiles[j].Flipped {
				n++
			}
		}
	}
	return n
}

// CategoryTile is one tile of the category grid.
type CategoryTile struct {
	Index        int    `json:"index"`
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ServiceCount int    `json:"serviceCount"`
	Badge        string `json:"badge"`
}

// Section is a labelled run of service tiles. Title and Description are
// shown only when non-empty.
type Section struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Tiles       []ServiceTile `json:"tiles"`
}

// ServiceTile is one flippable service tile.
type ServiceTile struct {
	// Position is the tile's index across the whole visible grid.
	Position int `json:"position"`

	// Front face.
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
	Hint    string `json:"hint"`

	// Back face.
	Details   string   `json:"details,omitempty"`
	Features  []string `json:"features,omitempty"`
	Link      string   `json:"link"`
	LinkLabel string   `json:"linkLabel"`

	// Flipped reports whether the back face is showing.
	Flipped bool `json:"flipped"`
}
