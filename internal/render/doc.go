// Package render evaluates a template file against a metadata document.
//
// Templates use Django/Jinja syntax ({{ var }}, {% if %}, {% for %}) and are
// loaded from a root directory, so they may include or extend other
// templates below it:
//
//	r, err := render.New(render.WithRoot("."))
//	text, err := r.Render("composer.json.j2", doc)
//
// Every top-level metadata key is bound as a variable. Variables missing
// from the metadata render as the empty string. Output is not autoescaped.
package render
