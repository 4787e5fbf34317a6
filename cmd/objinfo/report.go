package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/pkg/mesh"
	"github.com/Faultbox/objview/pkg/objfile"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	dimFg     = lipgloss.Color("#8B949E")
	okFg      = lipgloss.Color("#3FB950")
	errFg     = lipgloss.Color("#F85149")
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(dimFg).Width(12)
	okStyle    = lipgloss.NewStyle().Foreground(okFg).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(errFg)
)

type row struct {
	label string
	value string
}

func section(title string, rows []row) string {
	lines := []string{titleStyle.Render(title)}
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), r.value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func vec3(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v[0], v[1], v[2])
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// renderReport describes the parsed file and the indexed mesh built from it.
func renderReport(g *objfile.Geometry, b *mesh.Buffer) string {
	source := section("Source "+g.Path, []row{
		{"positions", fmt.Sprint(len(g.Positions))},
		{"normals", fmt.Sprint(len(g.Normals))},
		{"texcoords", fmt.Sprint(len(g.TexCoords))},
		{"faces", fmt.Sprint(len(g.Faces))},
		{"corners", fmt.Sprint(g.CornerCount())},
	})

	reuse := 0.0
	if n := g.CornerCount(); n > 0 {
		reuse = float64(n) / float64(b.VertexCount())
	}
	indexed := section("Indexed mesh", []row{
		{"vertices", fmt.Sprint(b.VertexCount())},
		{"triangles", fmt.Sprint(len(b.Triangles))},
		{"indices", fmt.Sprint(b.IndexCount())},
		{"reuse", fmt.Sprintf("%.2f corners/vertex", reuse)},
		{"normals", yesNo(b.HasNormals())},
		{"texcoords", yesNo(b.HasTexCoords())},
	})

	bounds := section("Bounds", []row{
		{"min", vec3(b.Bounds.Min)},
		{"max", vec3(b.Bounds.Max)},
		{"center", vec3(b.Bounds.Center())},
		{"size", vec3(b.Bounds.Size())},
	})

	parts := []string{source, "", indexed, "", bounds}
	if len(g.Skipped) > 0 {
		parts = append(parts, "", section("Ignored records", skippedRows(g.Skipped)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func skippedRows(skipped map[string]int) []row {
	keys := make([]string, 0, len(skipped))
	for k := range skipped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, row{k, fmt.Sprint(skipped[k])})
	}
	return rows
}

// renderCheck returns one status line for a validated file.
func renderCheck(path string, err error) string {
	if err == nil {
		return okStyle.Render("ok   ") + " " + path
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, path) {
		msg = path + ": " + msg
	}
	return errorStyle.Render(fmt.Sprintf("%-5s", errorKind(err))) + " " + msg
}
