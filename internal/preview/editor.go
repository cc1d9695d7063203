package preview

import "html/template"

// The page posts the textarea to /render on input and swaps the returned
// fragment into the preview pane.
var editorTemplate = template.Must(template.New("editor").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
main { display: flex; gap: 1em; height: 95vh; }
#source { flex: 1; font-family: monospace; font-size: 14px; }
#preview { flex: 1; overflow: auto; }
#status { color: #b00; font-family: monospace; }
{{.CSS}}</style>
</head>
<body>
<main>
<textarea id="source" spellcheck="false" autofocus></textarea>
<div id="preview" class="wikihtml" data-theme="{{.Theme}}"></div>
</main>
<div id="status"></div>
<script>
(function () {
  var source = document.getElementById("source");
  var preview = document.getElementById("preview");
  var status = document.getElementById("status");
  var pending = null;
  function render() {
    fetch("/render", {method: "POST", body: source.value})
      .then(function (res) {
        return res.text().then(function (body) { return {ok: res.ok, body: body}; });
      })
      .then(function (r) {
        if (r.ok) {
          preview.innerHTML = r.body;
          status.textContent = "";
        } else {
          status.textContent = r.body;
        }
      })
      .catch(function (err) { status.textContent = String(err); });
  }
  source.addEventListener("input", function () {
    clearTimeout(pending);
    pending = setTimeout(render, 50);
  });
})();
</script>
</body>
</html>
`))
