package templates

import (
	"context"
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"testing"

	"sales-dashboard/internal/models"
)

func testView() models.DashboardView {
	return models.DashboardView{
		Selection: models.FilterSelection{City: "Mumbai", Year: "All", Region: "All", Model: "Nexon"},
		Options: models.FilterOptions{
			Cities:  []string{"All", "Delhi", "Mumbai"},
			Years:   []string{"All", "2023"},
			Regions: []string{"All", "West"},
			Models:  []string{"All", "Tiago", "Nexon"},
		},
		KPIs: []models.KPI{
			{ID: "kpi-total-units", Label: "Total Units Sold", Value: "1,500"},
			{ID: "kpi-total-revenue", Label: "Total Revenue", Value: "₹1.20 Cr"},
		},
		Image:     models.ProductImage{Src: "/assets/Nexon.jpeg", Caption: "Nexon", Available: true},
		LogoSrc:   "/assets/Tata_Motors_logo.png",
		Trend:     models.TrendChart{Points: []models.MonthlyPoint{{Month: "2023-01", Units: 1500}}},
		TopModels: models.TopModelsChart{Models: []models.ModelUnits{{Model: "Nexon", Units: 1500}}, Scope: "full", Note: "All records, sidebar filters not applied"},
		Regions:   models.DonutChart{Slices: []models.RegionShare{{Region: "West", Units: 1500, Percent: 100, Label: "100.0%"}}, HoleRadius: 0.7, StartAngle: 140},
	}
}

func renderString(t *testing.T, view models.DashboardView) string {
	t.Helper()
	var b strings.Builder
	if err := Dashboard(view).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestDashboard_Page(t *testing.T) {
	body := renderString(t, testView())

	expected := []string{
		"<title>Tata Motors Sales Dashboard</title>",
		`<h1 class="page-title">Tata Motors Sales Dashboard</h1>`,
		`id="kpis"`,
		"Total Units Sold",
		"1,500",
		`<img src="/assets/Nexon.jpeg" alt="Nexon">`,
		`<img class="logo" src="/assets/Tata_Motors_logo.png" alt="Tata Motors">`,
		"<figcaption>Nexon</figcaption>",
		"Monthly Sales Trend",
		"Top 10 Models by Sales",
		"Regional Share",
		"All records, sidebar filters not applied",
		`<option value="Mumbai" selected>Mumbai</option>`,
		`<option value="Nexon" selected>Nexon</option>`,
		`data-bind="city"`,
		`data-on-change="@get('/sse/dashboard')"`,
		`</label> <select id="city"`,
		`id="trend-chart"`,
		`id="top-models-chart"`,
		`id="regions-chart"`,
	}
	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Errorf("page should contain %q", want)
		}
	}
}

func TestDashboard_Document(t *testing.T) {
	body := renderString(t, testView())

	if !strings.HasPrefix(body, "<!doctype html><html lang=\"en\">") {
		t.Errorf("unexpected document start: %.60s", body)
	}
	if !strings.HasSuffix(body, "</script></body></html>") {
		t.Errorf("chart script should close the body: %s", body[len(body)-60:])
	}
	if !strings.Contains(body, "<style>"+pageCSS+"</style>") {
		t.Error("page styles should be inlined verbatim")
	}
	if !strings.Contains(body, "window.salesCharts &&") {
		t.Error("data-effect should be written unescaped")
	}
}

func TestChartScript_RegionsCounterClockwise(t *testing.T) {
	if !strings.Contains(chartJS, "const ccw = regions.slice().reverse();") {
		t.Fatal("regions should be reversed before drawing the doughnut")
	}
	if !strings.Contains(chartJS, "labels: ccw.map(") || !strings.Contains(chartJS, "data: ccw.map(r => r.units)") {
		t.Error("doughnut labels and data should both use the reversed order")
	}
	if strings.Contains(chartJS, "regions.map(") {
		t.Error("doughnut should not draw regions in payload order")
	}
}

func TestDashboard_SignalsAttribute(t *testing.T) {
	body := renderString(t, testView())

	m := regexp.MustCompile(`data-signals="([^"]*)"`).FindStringSubmatch(body)
	if m == nil {
		t.Fatal("data-signals attribute missing")
	}

	var signals map[string]any
	if err := json.Unmarshal([]byte(html.UnescapeString(m[1])), &signals); err != nil {
		t.Fatalf("signals should be JSON: %v", err)
	}
	for _, key := range []string{"city", "year", "region", "model", "trend", "topModels", "regions", "donutHole", "donutStart"} {
		if _, ok := signals[key]; !ok {
			t.Errorf("signals missing %q", key)
		}
	}
	if signals["city"] != "Mumbai" {
		t.Errorf("city signal = %v", signals["city"])
	}
	if signals["donutHole"] != 0.7 {
		t.Errorf("donutHole signal = %v", signals["donutHole"])
	}
}

func TestDashboard_EscapesValues(t *testing.T) {
	view := testView()
	view.Options.Cities = append(view.Options.Cities, `<script>alert(1)</script>`)

	body := renderString(t, view)
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("option values must be escaped")
	}
}

func TestPlaceholder(t *testing.T) {
	var b strings.Builder
	if err := Placeholder(TrendPlaceholderID, "No data for selected filters.").Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	want := `<p class="placeholder" id="trend-placeholder">No data for selected filters.</p>`
	if b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func TestTopModelsNote(t *testing.T) {
	var b strings.Builder
	chart := models.TopModelsChart{Scope: "full", Note: "All records, sidebar filters not applied"}
	if err := TopModelsNote(chart).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	want := `<p id="top-models-note" class="note" data-scope="full">All records, sidebar filters not applied</p>`
	if b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func TestSelectControl_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	err := selectControl("City", "city", []string{"All"}, "All").Render(ctx, &b)
	if err != context.Canceled {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if b.Len() != 0 {
		t.Errorf("nothing should be written after cancellation, got %q", b.String())
	}
}

func TestProductImage_Missing(t *testing.T) {
	var b strings.Builder
	img := models.ProductImage{Src: "/assets/Curvv.jpeg", Caption: "Curvv", Available: false}
	if err := ProductImage(img).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if strings.Contains(out, "<img") {
		t.Error("missing image should not render an img tag")
	}
	if !strings.Contains(out, "<figcaption>Curvv</figcaption>") {
		t.Errorf("caption missing: %s", out)
	}
}

func TestKPIs(t *testing.T) {
	var b strings.Builder
	if err := KPIs(testView().KPIs).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.HasPrefix(out, `<div id="kpis" class="kpis"><div class="metric" id="kpi-total-units">`) {
		t.Errorf("KPIs should be wrapped in #kpis: %s", out)
	}
	if strings.Count(out, `class="metric"`) != 2 {
		t.Errorf("expected 2 metric tiles: %s", out)
	}
}
