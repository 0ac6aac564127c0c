package dashboard

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/report"
)

var teamPageTemplate = template.Must(template.New("team").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.TeamName}} Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2em; }
section { margin-bottom: 3em; }
img { max-width: 100%; border: 1px solid #ccc; margin: 0.5em 0; }
</style>
</head>
<body>
<h1>{{.TeamName}} Dashboard</h1>
{{range .Sections}}<section>
<h2>{{.Title}}</h2>
{{range .Images}}<img src="/assets/images/{{.}}" alt="{{.}}">
{{end}}{{if not .Images}}<p>No charts generated yet. Run the report batch first.</p>{{end}}
</section>
{{end}}</body>
</html>
`))

type chartSection struct {
	Title  string
	Prefix string
	Images []string
}

// TeamServer builds the team dashboard: the season's aggregate charts
// grouped by kind.
func TeamServer(cfg *config.Config, log *logrus.Logger) *Server {
	entry := log.WithField("component", "team-dashboard")
	router := mux.NewRouter()
	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.HandleFunc("/", teamPage(cfg, entry)).Methods("GET")
	assetRoutes(router, cfg.ReportsDir)
	return newServer(cfg.TeamDashPort, router, entry)
}

func teamPage(cfg *config.Config, log *logrus.Entry) http.HandlerFunc {
	sections := []chartSection{
		{Title: "Wins and Losses", Prefix: "team_wl_"},
		{Title: "Scoring", Prefix: "team_points_"},
		{Title: "Home vs Away", Prefix: "team_venue_"},
		{Title: "Tail Probabilities", Prefix: "gumbel_"},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := struct {
			TeamName string
			Sections []chartSection
		}{TeamName: cfg.TeamName}
		for _, s := range sections {
			s.Images = imagesWithPrefix(cfg.ReportsDir, s.Prefix)
			data.Sections = append(data.Sections, s)
		}
		if err := teamPageTemplate.Execute(w, data); err != nil {
			log.WithError(err).Error("rendering team page")
		}
	}
}

// imagesWithPrefix scans the generated image directory for artifacts of
// one chart group, sorted by name.
func imagesWithPrefix(reportsDir, prefix string) []string {
	matches, err := filepath.Glob(filepath.Join(reportsDir, report.ImageDir, prefix+"*.png"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			names = append(names, filepath.Base(m))
		}
	}
	return names
}
