package dashboard

import (
	"fmt"

	"launchdash/internal/display"
	"launchdash/internal/launch"
)

// Component ids shared by the layout, the callbacks and the browser client.
const (
	SiteDropdownID  = "site-dropdown"
	PieChartID      = "success-pie-chart"
	PayloadSliderID = "payload-slider"
	ScatterChartID  = "success-payload-scatter-chart"
)

// DefaultTitle is the page heading when none is configured.
const DefaultTitle = "SpaceX Launch Records Dashboard"

// DefaultSites is the dropdown enumeration of the published dataset.
var DefaultSites = []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}

// Component types.
const (
	TypeDiv         = "Div"
	TypeH1          = "H1"
	TypeBr          = "Br"
	TypeP           = "P"
	TypeDropdown    = "Dropdown"
	TypeRangeSlider = "RangeSlider"
	TypeGraph       = "Graph"
)

// Component is one node of the declarative page tree.
type Component struct {
	Type     string            `json:"type"`
	ID       string            `json:"id,omitempty"`
	Text     string            `json:"text,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Props    any               `json:"props,omitempty"`
	Children []Component       `json:"children,omitempty"`
}

// Option is a dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DropdownProps configures a Dropdown component.
type DropdownProps struct {
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Mark is a labelled slider tick.
type Mark struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// SliderProps configures a RangeSlider component.
type SliderProps struct {
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []Mark     `json:"marks"`
	Value [2]float64 `json:"value"`
}

// LayoutOptions parameterizes BuildLayout.
type LayoutOptions struct {
	Title string
	// Sites is the dropdown enumeration. Empty means the table's own sites.
	Sites      []string
	SliderStep float64
}

// BuildLayout returns the page tree for t. The slider spans the table's
// payload range and starts fully open; the dropdown starts on AllSites.
func BuildLayout(t *launch.Table, opts LayoutOptions) Component {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	step := opts.SliderStep
	if step <= 0 {
		step = 1000
	}
	sites := opts.Sites
	if len(sites) == 0 {
		sites = t.Sites()
	}

	options := []Option{{Label: display.Site(launch.AllSites), Value: launch.AllSites}}
	for _, s := range sites {
		options = append(options, Option{Label: display.Site(s), Value: s})
	}

	lo, hi := t.PayloadRange()

	return Component{
		Type: TypeDiv,
		Children: []Component{
			{
				Type:  TypeH1,
				Text:  title,
				Style: map[string]string{"textAlign": "center", "color": "#503D36", "font-size": "40px"},
			},
			{Type: TypeBr},
			{
				Type: TypeDropdown,
				ID:   SiteDropdownID,
				Props: DropdownProps{
					Options:     options,
					Value:       launch.AllSites,
					Placeholder: "Select a Launch Site",
					Searchable:  true,
				},
			},
			{Type: TypeBr},
			{Type: TypeDiv, Children: []Component{{Type: TypeGraph, ID: PieChartID}}},
			{Type: TypeBr},
			{Type: TypeP, Text: "Payload range (Kg):"},
			{
				Type: TypeRangeSlider,
				ID:   PayloadSliderID,
				Props: SliderProps{
					Min:   lo,
					Max:   hi,
					Step:  step,
					Marks: sliderMarks(lo, hi, int(step)),
					Value: [2]float64{lo, hi},
				},
			},
			{Type: TypeBr},
			{Type: TypeDiv, Children: []Component{{Type: TypeGraph, ID: ScatterChartID}}},
		},
	}
}

func sliderMarks(lo, hi float64, step int) []Mark {
	if step <= 0 {
		step = 1
	}
	var marks []Mark
	for i := int(lo); i <= int(hi); i += step {
		marks = append(marks, Mark{Value: i, Label: fmt.Sprintf("%d kg", i)})
	}
	return marks
}

// Find returns the first component with the given id, depth first.
func (c *Component) Find(id string) *Component {
	if c.ID == id {
		return c
	}
	for i := range c.Children {
		if found := c.Children[i].Find(id); found != nil {
			return found
		}
	}
	return nil
}

// DefaultFilter is the selection the page loads with.
func DefaultFilter(t *launch.Table) Filter {
	lo, hi := t.PayloadRange()
	return Filter{Site: launch.AllSites, Low: lo, High: hi}
}
