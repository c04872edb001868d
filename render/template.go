package render

import "html/template"

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
        font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
        background: #0a0a0a;
        color: #e0e0e0;
        padding: 2rem;
    }
    h1 {
        text-align: center;
        margin-bottom: 0.5rem;
        font-size: 1.8rem;
        color: #fff;
    }
    .subtitle {
        text-align: center;
        color: #888;
        margin-bottom: 2rem;
        font-size: 0.9rem;
        line-height: 1.6;
    }
    section {
        margin-bottom: 2.5rem;
    }
    h2 {
        font-size: 1.3rem;
        color: #aaa;
        border-bottom: 1px solid #333;
        padding-bottom: 0.5rem;
        margin-bottom: 1rem;
    }
    .grid {
        display: grid;
        grid-template-columns: repeat(auto-fill, minmax(380px, 1fr));
        gap: 1.5rem;
    }
    .card {
        background: #1a1a1a;
        border: 1px solid #333;
        border-radius: 8px;
        overflow: hidden;
    }
    .card-header {
        display: flex;
        justify-content: space-between;
        align-items: center;
        padding: 0.75rem 1rem;
        background: #222;
        border-bottom: 1px solid #333;
    }
    .card-header h3 {
        font-size: 0.95rem;
        color: #fff;
    }
    .release {
        font-size: 0.75rem;
        color: #666;
    }
    .time {
        font-size: 0.8rem;
        color: #888;
        background: #2a2a2a;
        padding: 2px 8px;
        border-radius: 4px;
        white-space: nowrap;
    }
    .svg-container {
        padding: 1rem;
        display: flex;
        justify-content: center;
        align-items: center;
        min-height: 350px;
        background: #fff;
    }
    .svg-container svg {
        max-width: 100%;
        max-height: 400px;
    }
    .error {
        padding: 1.5rem;
        color: #f44;
        font-size: 0.85rem;
        min-height: 200px;
        display: flex;
        align-items: center;
        justify-content: center;
        text-align: center;
    }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">
    Same prompt sent to {{.Total}} models via OpenRouter ({{.Succeeded}} returned valid SVG)<br>
    Generated {{.GeneratedAt}}
</p>
{{range .Sections}}
<section>
    <h2>{{.Title}}</h2>
    <div class="grid">
    {{- range .Cards}}
        <div class="card">
            <div class="card-header">
                <div>
                    <h3>{{.Name}}</h3>
                    {{if .Released}}<span class="release">Released: {{.Released}}</span>{{end}}
                </div>
                {{if .SVG}}<span class="time">{{.Seconds}}</span>{{end}}
            </div>
            {{if .Err}}<div class="error">Error: {{.Err}}</div>{{else}}<div class="svg-container">{{.SVG}}</div>{{end}}
        </div>
    {{- end}}
    </div>
</section>
{{end}}
</body>
</html>
`))
