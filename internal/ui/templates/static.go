package templates

import "github.com/a-h/templ"

var (
	pageStyle   = templ.Raw("<style>" + pageCSS + "</style>")
	chartScript = templ.Raw("<script>" + chartJS + "</script>")
)

const pageCSS = `
*{box-sizing:border-box}
body{margin:0;display:flex;font-family:system-ui,-apple-system,sans-serif;background:#f5f7fa;color:#1f2933}
.sidebar{width:240px;min-height:100vh;padding:1.5rem 1rem;background:#fff;border-right:1px solid #e4e7eb}
.sidebar .logo{width:100%;margin-bottom:1rem}
.sidebar label{display:block;margin:.75rem 0 .25rem;font-size:.85rem;color:#52606d}
.sidebar select{width:100%;padding:.4rem;border:1px solid #cbd2d9;border-radius:4px}
main{flex:1;padding:1.5rem 2rem}
.page-title{font-size:2.6rem;margin:0 0 1.5rem}
.kpi-row{display:grid;grid-template-columns:4.8fr 2fr;gap:1rem;align-items:center}
.kpis{display:grid;grid-template-columns:repeat(4,1fr);gap:1rem}
.metric{background:#fff;border-radius:8px;padding:1rem;box-shadow:0 1px 2px rgba(0,0,0,.06)}
.metric-label{font-size:.85rem;color:#52606d}
.metric-value{font-size:1.6rem;font-weight:600;margin-top:.25rem}
.product{margin:0;text-align:center}
.product img{max-width:100%;border-radius:8px}
.image-missing{padding:3rem 1rem;background:#e4e7eb;border-radius:8px;color:#7b8794}
.chart-row{display:grid;grid-template-columns:2fr 2fr 1.5fr;gap:1rem;margin-top:2rem}
.panel{background:#fff;border-radius:8px;padding:1rem;box-shadow:0 1px 2px rgba(0,0,0,.06)}
.panel h3{margin:0 0 .5rem}
.note{margin:0 0 .5rem;font-size:.8rem;color:#7b8794}
.placeholder:empty{display:none}
`

// chartJS draws the three charts from the current signal values. It keeps
// one Chart.js instance per canvas and replaces it on every update.
// Chart.js lays doughnut slices clockwise, so the regions are drawn in
// reverse to keep the counter-clockwise order of the server payload.
const chartJS = `
(function(){
  const charts = {};
  function draw(id, config, visible){
    if (charts[id]) { charts[id].destroy(); delete charts[id]; }
    const canvas = document.getElementById(id);
    if (!canvas) return;
    canvas.style.display = visible ? "" : "none";
    if (visible) charts[id] = new Chart(canvas, config);
  }
  window.salesCharts = {
    render(trend, topModels, regions, hole, start){
      trend = trend || []; topModels = topModels || []; regions = regions || [];
      draw("trend-chart", {
        type: "line",
        data: {labels: trend.map(p => p.month), datasets: [{label: "Units Sold", data: trend.map(p => p.units), pointRadius: 4, borderWidth: 2}]},
        options: {plugins: {legend: {display: false}}, scales: {x: {title: {display: true, text: "Month"}}, y: {title: {display: true, text: "Units Sold"}}}}
      }, trend.length > 0);
      draw("top-models-chart", {
        type: "bar",
        data: {labels: topModels.map(m => m.model), datasets: [{label: "Units Sold", data: topModels.map(m => m.units), backgroundColor: "skyblue"}]},
        options: {indexAxis: "y", plugins: {legend: {display: false}}, scales: {x: {title: {display: true, text: "Units Sold"}}, y: {reverse: true}}}
      }, topModels.length > 0);
      const ccw = regions.slice().reverse();
      draw("regions-chart", {
        type: "doughnut",
        data: {labels: ccw.map(r => r.region + " " + r.label), datasets: [{data: ccw.map(r => r.units)}]},
        options: {cutout: Math.round((hole || 0) * 100) + "%", rotation: 90 - (start || 0)}
      }, regions.length > 0);
    }
  };
})();
`
