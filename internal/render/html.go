package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/JakeFAU/quantum-job-console/internal/jobs"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
)

// Default form values shown on a fresh page.
const (
	DefaultJobType = "sampler"
	DefaultPayload = `{"shots": 100}`
)

// Page is everything the console page shows. Submission is nil until the
// user has submitted something.
type Page struct {
	Base       string
	Status     probe.Result
	Jobs       JobsView
	Submission *jobs.Outcome
	JobType    string
	Payload    string
}

// HTML renders the console page.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the page template.
func NewHTML(previewLen int) (*HTML, error) {
	funcs := template.FuncMap{
		"statusLine":  StatusLine,
		"statusClass": StatusClass,
		"submissionText": func(o *jobs.Outcome) string {
			if o == nil {
				return ""
			}
			return SubmissionText(*o, previewLen)
		},
	}
	tmpl, err := template.New("page").Funcs(funcs).Parse(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &HTML{tmpl: tmpl}, nil
}

// Render writes the page for p.
func (h *HTML) Render(w io.Writer, p Page) error {
	if p.JobType == "" {
		p.JobType = DefaultJobType
	}
	if p.Payload == "" {
		p.Payload = DefaultPayload
	}
	if err := h.tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Quantum Job Console</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 24px; color: #18181b; }
  .api-status { padding: 8px 12px; border-radius: 6px; }
  .api-online { background: #dcfce7; }
  .api-offline { background: #fee2e2; }
  pre { background: #f4f4f5; padding: 12px; border-radius: 6px; white-space: pre-wrap; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #e4e4e7; }
  .status-queued { color: #a16207; }
  .status-running { color: #1d4ed8; }
  .status-completed { color: #15803d; }
  .status-failed { color: #b91c1c; }
  .message { font-style: italic; }
</style>
</head>
<body>
<h1>Quantum Job Console</h1>
<p class="base">API base: <code>{{.Base}}</code></p>

<section id="status">
  <p class="api-status {{if .Status.OK}}api-online{{else}}api-offline{{end}}">{{statusLine .Status}}</p>
  {{with .Status.BodyPreview}}<pre class="probe-preview">{{.}}</pre>{{end}}
</section>

<section id="submit">
  <h2>Submit job</h2>
  <form method="post" action="/submit">
    <p><label>API key <input type="password" name="api_key" autocomplete="off"></label></p>
    <p><label>Job type <input type="text" name="job_type" value="{{.JobType}}"></label></p>
    <p><label>Payload (JSON)<br><textarea name="payload" rows="8" cols="60">{{.Payload}}</textarea></label></p>
    <p><button type="submit">Submit</button></p>
  </form>
  {{with .Submission}}<pre class="submission submission-{{.Kind}}">{{submissionText .}}</pre>{{end}}
</section>

<section id="jobs">
  <h2>Jobs</h2>
  {{if .Jobs.Failed}}
  <p class="message jobs-failed">Failed to load jobs.</p>
  {{else if not .Jobs.Jobs}}
  <p class="message jobs-empty">No jobs yet.</p>
  {{else}}
  <table>
    <thead><tr><th>ID</th><th>Type</th><th>Status</th><th>Created</th></tr></thead>
    <tbody>
    {{range .Jobs.Jobs}}
      <tr>
        <td>{{.ID}}</td>
        <td>{{.JobType}}</td>
        <td class="{{statusClass .Status}}">{{.Status}}{{with .ErrorMessage}} ({{.}}){{end}}</td>
        <td>{{.CreatedAt}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>
  {{end}}
</section>
</body>
</html>
`
