package plots

import (
	"path/filepath"

	"github.com/nfvri/ris-simulator/pkg/manager"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveCurves renders one curve per user result against the power sweep and
// saves it as a PNG file.
func SaveCurves(results map[string]manager.UserResult, metric, title, yLabel, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Transmit power (dBm)"
	p.Y.Label.Text = yLabel

	for name, result := range results {
		values := result.MeanRate
		if metric == "outage" {
			values = result.Outage
		}
		xys := make(plotter.XYs, len(result.PowersDbm))
		for i := range xys {
			xys[i].X = result.PowersDbm[i]
			xys[i].Y = values[i]
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		p.Add(line, points)
		p.Legend.Add(name, line, points)
	}

	if err := p.Save(15*vg.Inch, 10*vg.Inch, filename); err != nil {
		return err
	}
	log.Infof("Plot saved to %s", filename)
	return nil
}

// ExportRun writes the rate and outage figures of a finished run into outDir.
func ExportRun(results *manager.Results, outDir string) error {
	if err := SaveCurves(results.Users, "rate", "Achievable rate", "Rate (bps/Hz)",
		filepath.Join(outDir, results.Scenario+"_rate.png")); err != nil {
		return err
	}
	if err := SaveCurves(results.Users, "outage", "Outage probability", "Outage",
		filepath.Join(outDir, results.Scenario+"_outage.png")); err != nil {
		return err
	}
	if results.Noma != nil {
		if err := SaveCurves(results.Noma, "outage", "NOMA outage probability", "Outage",
			filepath.Join(outDir, results.Scenario+"_noma_outage.png")); err != nil {
			return err
		}
	}
	return nil
}
