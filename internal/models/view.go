package models

// KPI is one formatted metric tile.
type KPI struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type ProductImage struct {
	Src       string `json:"src"`
	Caption   string `json:"caption"`
	Available bool   `json:"available"`
}

type TrendChart struct {
	Points      []MonthlyPoint `json:"points"`
	Placeholder string         `json:"placeholder,omitempty"`
}

type TopModelsChart struct {
	Models []ModelUnits `json:"models"`
	Scope  string       `json:"scope"`
	Note   string       `json:"note"`
}

// DonutChart is a proportion chart drawn as a ring. HoleRadius is the blank
// centre as a fraction of the outer radius.
type DonutChart struct {
	Slices      []RegionShare `json:"slices"`
	HoleRadius  float64       `json:"hole_radius"`
	StartAngle  float64       `json:"start_angle"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// DashboardView is everything one render pass needs. It is derived from a
// FilterSelection and the loaded dataset and never stored.
type DashboardView struct {
	Selection FilterSelection `json:"selection"`
	Options   FilterOptions   `json:"options"`
	Summary   Summary         `json:"summary"`
	KPIs      []KPI           `json:"kpis"`
	Image     ProductImage    `json:"image"`
	LogoSrc   string          `json:"logo_src"`
	Trend     TrendChart      `json:"trend"`
	TopModels TopModelsChart  `json:"top_models"`
	Regions   DonutChart      `json:"regions"`
	Records   int             `json:"records"`
}
