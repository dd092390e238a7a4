package dfrs

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultNullMarker is how Null cells are rendered unless configured.
const DefaultNullMarker = "None"

// DisplayConfig controls how DataFrames and Series are formatted. It is
// passed to every rendering call; there is no process-wide display state.
type DisplayConfig struct {
	// MaxRows is the maximum number of rows to display; 0 shows every row.
	// If there are more rows, head and tail rows are shown with "…" in between.
	// Default: 0
	MaxRows int `yaml:"max_rows"`

	// MaxCols is the maximum number of columns to display.
	// If the DataFrame has more columns, middle columns are replaced with "…".
	// Default: 10
	MaxCols int `yaml:"max_cols"`

	// MaxColWidth is the maximum width for column content.
	// Values longer than this are truncated with "...".
	// Default: 25
	MaxColWidth int `yaml:"max_col_width"`

	// MinColWidth is the minimum column width for alignment.
	// Default: 8
	MinColWidth int `yaml:"min_col_width"`

	// FloatPrecision is the number of decimal places for float values,
	// -1 for the shortest exact form.
	// Default: 4
	FloatPrecision int `yaml:"float_precision"`

	// ShowDTypes controls whether to display data types under column names.
	// Default: true
	ShowDTypes bool `yaml:"show_dtypes"`

	// ShowShape controls whether to display the shape (rows, columns) header.
	// Default: true
	ShowShape bool `yaml:"show_shape"`

	// ShowIndex controls whether row labels are rendered as a first column.
	// Default: true
	ShowIndex bool `yaml:"show_index"`

	// NullMarker is the text rendered for Null cells.
	// Default: "None"
	NullMarker string `yaml:"null_marker"`

	// TableStyle controls the table border style.
	// Options: "rounded", "sharp", "ascii", "minimal"
	// Default: "rounded"
	TableStyle string `yaml:"table_style"`
}

// Table style characters
type tableChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topT, bottomT, leftT, rightT, cross        string
}

var tableStyles = map[string]tableChars{
	"rounded": {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topT: "┬", bottomT: "┴", leftT: "├", rightT: "┤", cross: "┼",
	},
	"sharp": {
		topLeft: "┌", topRight: "┐", bottomLeft: "└", bottomRight: "┘",
		horizontal: "─", vertical: "│",
		topT: "┬", bottomT: "┴", leftT: "├", rightT: "┤", cross: "┼",
	},
	"ascii": {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topT: "+", bottomT: "+", leftT: "+", rightT: "+", cross: "+",
	},
	"minimal": {
		topLeft: " ", topRight: " ", bottomLeft: " ", bottomRight: " ",
		horizontal: "─", vertical: " ",
		topT: " ", bottomT: " ", leftT: " ", rightT: " ", cross: " ",
	},
}

// TableStyles returns the names of the supported table styles.
func TableStyles() []string {
	return []string{"rounded", "sharp", "ascii", "minimal"}
}

// DefaultDisplayConfig returns the default display configuration.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		MaxRows:        0,
		MaxCols:        10,
		MaxColWidth:    25,
		MinColWidth:    8,
		FloatPrecision: 4,
		ShowDTypes:     true,
		ShowShape:      true,
		ShowIndex:      true,
		NullMarker:     DefaultNullMarker,
		TableStyle:     "rounded",
	}
}

// chars returns the border characters, falling back to "rounded".
func (cfg DisplayConfig) chars() tableChars {
	chars, ok := tableStyles[cfg.TableStyle]
	if !ok {
		chars = tableStyles["rounded"]
	}
	return chars
}

// formatDisplayValue formats a value for display with the given configuration.
func formatDisplayValue(v Value, cfg DisplayConfig) string {
	return truncate(v.format(cfg.NullMarker, cfg.FloatPrecision), cfg.MaxColWidth)
}

func truncate(s string, width int) string {
	if width < 4 || utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// pad right-aligns (or left-aligns) s in a field of the given width.
func pad(s string, width int, left bool) string {
	gap := width - textWidth(s)
	if gap <= 0 {
		return s
	}
	if left {
		return s + strings.Repeat(" ", gap)
	}
	return strings.Repeat(" ", gap) + s
}

// visibleIndices picks which of n positions to show, with -1 marking the
// elided middle.
func visibleIndices(n, max int) []int {
	if max <= 0 || n <= max {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	head := max / 2
	tail := max - head
	out := make([]int, 0, max+1)
	for i := 0; i < head; i++ {
		out = append(out, i)
	}
	out = append(out, -1)
	for i := n - tail; i < n; i++ {
		out = append(out, i)
	}
	return out
}

// filterPositive returns only positive indices (filters out -1 markers).
func filterPositive(indices []int) []int {
	result := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 {
			result = append(result, idx)
		}
	}
	return result
}

// displayColumn is one rendered column: a header, an optional dtype line
// and the cell text for each visible row.
type displayColumn struct {
	header string
	dtype  string
	cells  map[int]string
	width  int
	left   bool
}

func (df *DataFrame) displayColumns(cfg DisplayConfig, rows []int) []displayColumn {
	var cols []displayColumn

	if cfg.ShowIndex {
		ic := displayColumn{cells: make(map[int]string, len(rows)), left: true}
		for _, r := range rows {
			label, _ := df.index.Label(r)
			ic.cells[r] = formatDisplayValue(label, cfg)
		}
		cols = append(cols, ic)
	}

	for _, colIdx := range visibleIndices(len(df.columns), cfg.MaxCols) {
		if colIdx == -1 {
			cols = append(cols, displayColumn{header: "…", dtype: "---", width: 3})
			continue
		}
		col := df.columns[colIdx]
		dc := displayColumn{
			header: truncate(col.Name(), cfg.MaxColWidth),
			dtype:  col.DType().String(),
			cells:  make(map[int]string, len(rows)),
			left:   col.DType() == String,
		}
		for _, r := range rows {
			dc.cells[r] = formatDisplayValue(col.at(r), cfg)
		}
		cols = append(cols, dc)
	}

	for i := range cols {
		c := &cols[i]
		if c.cells == nil {
			continue
		}
		w := textWidth(c.header)
		if cfg.ShowDTypes && textWidth(c.dtype) > w {
			w = textWidth(c.dtype)
		}
		for _, s := range c.cells {
			if textWidth(s) > w {
				w = textWidth(s)
			}
		}
		if w < cfg.MinColWidth {
			w = cfg.MinColWidth
		}
		c.width = w
	}
	return cols
}

// StringWithConfig formats the DataFrame using the provided configuration.
// Output depends only on the frame contents and cfg.
func (df *DataFrame) StringWithConfig(cfg DisplayConfig) string {
	if len(df.columns) == 0 {
		return "DataFrame(empty)"
	}

	chars := cfg.chars()
	var sb strings.Builder

	if cfg.ShowShape {
		fmt.Fprintf(&sb, "shape: (%d, %d)\n", df.Height(), len(df.columns))
	}

	rowIndices := visibleIndices(df.Height(), cfg.MaxRows)
	cols := df.displayColumns(cfg, filterPositive(rowIndices))

	border := func(left, mid, right string) {
		sb.WriteString(left)
		for i, c := range cols {
			if i > 0 {
				sb.WriteString(mid)
			}
			sb.WriteString(strings.Repeat(chars.horizontal, c.width+2))
		}
		sb.WriteString(right)
		sb.WriteString("\n")
	}
	line := func(text func(c displayColumn) string) {
		sb.WriteString(chars.vertical)
		for _, c := range cols {
			sb.WriteString(" ")
			sb.WriteString(text(c))
			sb.WriteString(" ")
			sb.WriteString(chars.vertical)
		}
		sb.WriteString("\n")
	}

	border(chars.topLeft, chars.topT, chars.topRight)
	line(func(c displayColumn) string { return pad(c.header, c.width, true) })
	if cfg.ShowDTypes {
		line(func(c displayColumn) string { return pad(c.dtype, c.width, true) })
	}
	border(chars.leftT, chars.cross, chars.rightT)

	for _, r := range rowIndices {
		line(func(c displayColumn) string {
			if r == -1 || c.cells == nil {
				return pad("…", c.width, false)
			}
			return pad(c.cells[r], c.width, c.left)
		})
	}

	sb.WriteString(chars.bottomLeft)
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(chars.bottomT)
		}
		sb.WriteString(strings.Repeat(chars.horizontal, c.width+2))
	}
	sb.WriteString(chars.bottomRight)

	return sb.String()
}

// SeriesStringWithConfig formats the Series using the provided
// configuration: one line per element (label, value) and a summary footer.
func SeriesStringWithConfig(s *Series, cfg DisplayConfig) string {
	footer := fmt.Sprintf("Name: %s, Length: %d, dtype: %s", s.Name(), s.Len(), s.DType())
	if s.Len() == 0 {
		return "[]\n" + footer
	}

	chars := cfg.chars()
	var sb strings.Builder

	rowIndices := visibleIndices(s.Len(), cfg.MaxRows)

	labels := make(map[int]string, len(rowIndices))
	values := make(map[int]string, len(rowIndices))
	indexWidth := 3
	valueWidth := cfg.MinColWidth
	for _, idx := range filterPositive(rowIndices) {
		label, _ := s.index.Label(idx)
		labels[idx] = formatDisplayValue(label, cfg)
		values[idx] = formatDisplayValue(s.col.at(idx), cfg)
		if w := textWidth(labels[idx]); w > indexWidth {
			indexWidth = w
		}
		if w := textWidth(values[idx]); w > valueWidth {
			valueWidth = w
		}
	}
	leftValues := s.DType() == String

	sb.WriteString(chars.topLeft)
	sb.WriteString(strings.Repeat(chars.horizontal, indexWidth+2))
	sb.WriteString(chars.topT)
	sb.WriteString(strings.Repeat(chars.horizontal, valueWidth+2))
	sb.WriteString(chars.topRight)
	sb.WriteString("\n")

	for _, idx := range rowIndices {
		sb.WriteString(chars.vertical)
		if idx == -1 {
			fmt.Fprintf(&sb, " %s ", pad("…", indexWidth, true))
			sb.WriteString(chars.vertical)
			fmt.Fprintf(&sb, " %s ", pad("…", valueWidth, false))
		} else {
			fmt.Fprintf(&sb, " %s ", pad(labels[idx], indexWidth, true))
			sb.WriteString(chars.vertical)
			fmt.Fprintf(&sb, " %s ", pad(values[idx], valueWidth, leftValues))
		}
		sb.WriteString(chars.vertical)
		sb.WriteString("\n")
	}

	sb.WriteString(chars.bottomLeft)
	sb.WriteString(strings.Repeat(chars.horizontal, indexWidth+2))
	sb.WriteString(chars.bottomT)
	sb.WriteString(strings.Repeat(chars.horizontal, valueWidth+2))
	sb.WriteString(chars.bottomRight)
	sb.WriteString("\n")
	sb.WriteString(footer)

	return sb.String()
}
