package site

const postTemplate = `<!DOCTYPE html>
<html lang="cs">
<head>
  <meta charset="UTF-8" />
  <title>{{.Title}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; max-width: 840px; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; }
    h1 { line-height: 1.2; }
    h2 { margin-top: 1.5rem; }
    .meta { color:#666; font-size: 0.9rem; margin-bottom: 1rem; }
    .back { margin-top: 2rem; }
    ul { padding-left: 1.2rem; }
    .pill { display:inline-block; padding:.15rem .5rem; border:1px solid #ccc; border-radius:999px; font-size:.8rem; color:#333; }
    hr { border:none; border-top:1px solid #eee; margin:1.5rem 0; }
    a { color:#0b57d0; text-decoration:none; }
    a:hover { text-decoration:underline; }
  </style>
</head>
<body>
  <a class="pill" href="../index.html">← Přehled</a>
  <h1>{{.Title}}</h1>
  <div class="meta">
    Poutavost: <strong>{{.Appeal}}/5</strong> &nbsp;|&nbsp; Zdroj: <a href="{{.SourceURL}}" target="_blank" rel="noopener">odkaz</a> &nbsp;|&nbsp; Publikováno: {{.Published}}
  </div>
  {{.Article}}

  <hr />
  <h2>Tipy na příspěvky na LinkedIn</h2>
  <ul>
{{- range .SocialPosts}}
    <li>{{.}}</li>
{{- end}}
  </ul>

  <p class="back"><a href="../index.html">← Zpět na přehled</a></p>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html lang="cs">
<head>
  <meta charset="UTF-8" />
  <title>{{.Title}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; max-width: 900px; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; }
    h1 { line-height: 1.2; }
    .meta { color:#666; font-size: 0.9rem; }
    ul.posts { list-style: none; padding-left: 0; }
    ul.posts > li { margin: 1rem 0 1.25rem; }
    a { color:#0b57d0; text-decoration:none; }
    a:hover { text-decoration:underline; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>Tento web automaticky sbírá české právní novinky (posledních {{.LookbackDays}} dní), hodnotí jejich poutavost (1–5) a pro relevantní témata (3–5) generuje stručné články a 3 tipy na příspěvky na LinkedIn. Bez reklamy, pouze informativní publicita.</p>
  <p class="meta">Poslední aktualizace: {{.Updated}}</p>

  <h2>Seznam článků</h2>
  <ul class="posts">
{{- range .Items}}
    <li>
      <a href="{{.Href}}">{{.Title}}</a>
      <div class="meta">Poutavost: <strong>{{.Appeal}}/5</strong> &nbsp;|&nbsp; Zdroj: {{.Source}} &nbsp;|&nbsp; Publikováno: {{.Published}}</div>
    </li>
{{- else}}
    <li>Zatím nic k zobrazení.</li>
{{- end}}
  </ul>
</body>
</html>
`
