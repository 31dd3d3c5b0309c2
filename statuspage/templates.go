package statuspage

// statusPageHTML is the default HTML status page template.
const statusPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Code}} {{.Text}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif; background: #fafafa; color: #333; margin: 0; }
main { max-width: 36em; margin: 18vh auto 0; padding: 0 1.5em; }
h1 { font-size: 1.5em; font-weight: 600; }
h1 span { color: #999; font-weight: 400; margin-right: 0.5em; }
p { color: #666; line-height: 1.5; }
</style>
</head>
<body>
<main>
<h1><span>{{.Code}}</span>{{.Text}}</h1>
<p>{{.Message}}</p>
</main>
</body>
</html>
`

// statusPageText is the default plain-text status page template.
const statusPageText = `{{.Code}} {{.Text}}

{{.Message}}
`
