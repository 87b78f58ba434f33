package models

// Chart is a Plotly-compatible figure: the browser hands Data and Layout
// straight to Plotly.newPlot.
type Chart struct {
	Name   string  `json:"name"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. Only the attributes the dashboard uses are modeled.
type Trace struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Orientation string `json:"orientation,omitempty"`

	X      []any     `json:"x,omitempty"`
	Y      []any     `json:"y,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`

	Hole         float64  `json:"hole,omitempty"`
	TextInfo     string   `json:"textinfo,omitempty"`
	TextPosition string   `json:"textposition,omitempty"`
	TextFont     *Font    `json:"textfont,omitempty"`
	HoverText    []string `json:"hovertext,omitempty"`
	Mode         string   `json:"mode,omitempty"`

	BoxPoints any  `json:"boxpoints,omitempty"`
	Notched   bool `json:"notched,omitempty"`

	Marker *Marker `json:"marker,omitempty"`
}

// Marker carries per-point colour and size.
type Marker struct {
	Color      any       `json:"color,omitempty"`
	Size       []float64 `json:"size,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	SizeRef    float64   `json:"sizeref,omitempty"`
	ColorScale any       `json:"colorscale,omitempty"`
	ShowScale  *bool     `json:"showscale,omitempty"`
}

// Font sets the text size of a trace.
type Font struct {
	Size int `json:"size,omitempty"`
}

// Layout is the subset of the Plotly layout the dashboard sets.
type Layout struct {
	Title      *Title `json:"title,omitempty"`
	XAxis      *Axis  `json:"xaxis,omitempty"`
	YAxis      *Axis  `json:"yaxis,omitempty"`
	BarMode    string `json:"barmode,omitempty"`
	ShowLegend *bool  `json:"showlegend,omitempty"`
}

// Title is a layout or axis title.
type Title struct {
	Text string `json:"text"`
}

// Axis configures one axis. Type "log" switches to a logarithmic scale.
type Axis struct {
	Title         *Title `json:"title,omitempty"`
	Type          string `json:"type,omitempty"`
	CategoryOrder string `json:"categoryorder,omitempty"`
}
