package dashboard

import (
	"html/template"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/report"
)

var playerPageTemplate = template.Must(template.New("players").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Player Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2em; }
section { margin-bottom: 3em; }
img { max-width: 100%; border: 1px solid #ccc; margin: 0.5em 0; }
ul { columns: 2; }
</style>
</head>
<body>
<h1>Player Dashboard</h1>
{{range .Players}}<section>
<h2>{{.Name}}</h2>
{{range .Images}}<img src="/assets/images/{{.}}" alt="{{.}}">
{{end}}{{if not .Images}}<p>No distribution charts for this player yet.</p>{{end}}
</section>
{{end}}<section>
<h2>Generated Tables</h2>
<ul>
{{range .Tables}}<li><a href="/assets/csv/{{.}}">{{.}}</a></li>
{{end}}</ul>
</section>
</body>
</html>
`))

// PlayerServer builds the per-player dashboard: distribution and box
// charts per tracked player plus an index of every generated CSV.
func PlayerServer(cfg *config.Config, log *logrus.Logger) *Server {
	entry := log.WithField("component", "player-dashboard")
	router := mux.NewRouter()
	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.HandleFunc("/", playerPage(cfg, entry)).Methods("GET")
	assetRoutes(router, cfg.ReportsDir)
	return newServer(cfg.PlayerDashPort, router, entry)
}

func playerPage(cfg *config.Config, log *logrus.Entry) http.HandlerFunc {
	type playerView struct {
		Name   string
		Images []string
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := struct {
			Players []playerView
			Tables  []string
		}{}
		for _, p := range cfg.Players {
			slug := playerSlug(p.Name)
			var images []string
			images = append(images, imagesWithPrefix(cfg.ReportsDir, "player_hist_")...)
			images = append(images, imagesWithPrefix(cfg.ReportsDir, "player_box_"+slug)...)
			images = append(images, imagesWithPrefix(cfg.ReportsDir, "gam_fit_")...)
			data.Players = append(data.Players, playerView{
				Name:   p.Name,
				Images: filterSlug(images, slug),
			})
		}
		data.Tables = csvArtifacts(cfg.ReportsDir)
		if err := playerPageTemplate.Execute(w, data); err != nil {
			log.WithError(err).Error("rendering player page")
		}
	}
}

// filterSlug keeps only images belonging to one player.
func filterSlug(images []string, slug string) []string {
	var out []string
	seen := map[string]bool{}
	for _, img := range images {
		if seen[img] {
			continue
		}
		if filepath.Ext(img) == ".png" && containsSlug(img, slug) {
			out = append(out, img)
			seen[img] = true
		}
	}
	sort.Strings(out)
	return out
}

func containsSlug(name, slug string) bool {
	base := name[:len(name)-len(filepath.Ext(name))]
	return len(base) >= len(slug) && base[len(base)-len(slug):] == slug
}

// csvArtifacts lists every generated CSV, sorted.
func csvArtifacts(reportsDir string) []string {
	matches, err := filepath.Glob(filepath.Join(reportsDir, report.CSVDir, "*.csv"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names
}

// playerSlug mirrors the report job naming so the dashboard finds the
// artifacts the batch wrote.
func playerSlug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	return string(out)
}
