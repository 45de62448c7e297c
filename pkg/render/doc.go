// Package render draws a form.View as an HTML fragment or a plain text
// summary. Both renderers execute pongo2 templates; the HTML renderer also
// applies go-theme tokens as CSS custom properties.
package render
