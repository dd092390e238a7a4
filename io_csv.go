package dfrs

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// CSVReadOptions configures CSV reading behavior
type CSVReadOptions struct {
	Delimiter     rune             // Field delimiter (default ',')
	HasHeader     bool             // First row is header (default true)
	ColumnNames   []string         // Override column names
	ColumnTypes   map[string]DType // Force column types
	InferTypes    bool             // Auto-detect types (default true)
	NullValues    []string         // Strings to treat as null (default "")
	SkipRows      int              // Skip first N non-blank lines
	MaxRows       int              // Max rows to read (0 = unlimited)
	TrimSpace     bool             // Trim whitespace from values
	Comment       rune             // Comment character (skip lines starting with this)
	SkipMalformed bool             // Drop rows with the wrong field count instead of failing
	TrimTrailing  bool             // Ignore one trailing delimiter per line (default true)
	Logger        *slog.Logger     // Receives a warning per skipped row; nil is silent
}

// DefaultCSVReadOptions returns default CSV reading options
func DefaultCSVReadOptions() CSVReadOptions {
	return CSVReadOptions{
		Delimiter:    ',',
		HasHeader:    true,
		InferTypes:   true,
		NullValues:   []string{""},
		TrimSpace:    true,
		TrimTrailing: true,
	}
}

// ReadCSV reads a CSV file into a DataFrame
func ReadCSV(path string, opts ...CSVReadOptions) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadCSVFromReader(f, opts...)
}

// ReadCSVFromReader reads CSV data from an io.Reader into a DataFrame
func ReadCSVFromReader(r io.Reader, opts ...CSVReadOptions) (*DataFrame, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return ReadCSVLines(lines, opts...)
}

// ReadCSVLines parses already split lines into a DataFrame. The first line
// is the header unless HasHeader is false. Every row must have as many
// fields as the header; a row that does not aborts the load with a
// MalformedRowError unless SkipMalformed is set. Fields containing the
// delimiter must be wrapped in double quotes, and quoted fields are always
// read as text. Quoted fields spanning several lines are not supported.
// With TrimTrailing, a trailing delimiter on the first line is ignored, and
// so is one on a row that would otherwise have one field too many.
func ReadCSVLines(lines []string, opts ...CSVReadOptions) (*DataFrame, error) {
	opt := DefaultCSVReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Delimiter == 0 {
		opt.Delimiter = ','
	}

	var headers []string
	var records [][]string
	skipped := 0

	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if opt.Comment != 0 && strings.HasPrefix(strings.TrimLeft(line, " \t"), string(opt.Comment)) {
			continue
		}
		if skipped < opt.SkipRows {
			skipped++
			continue
		}

		fields := splitFields(line, opt.Delimiter)
		if opt.TrimTrailing && (headers == nil || len(fields) == len(headers)+1) {
			fields = trimTrailingEmpty(fields)
		}

		if headers == nil {
			if opt.HasHeader {
				headers = headerNames(fields, opt.ColumnNames)
				continue
			}
			headers = headerNames(make([]string, len(fields)), opt.ColumnNames)
		}

		if opt.MaxRows > 0 && len(records) >= opt.MaxRows {
			break
		}

		if len(fields) != len(headers) {
			rowErr := &MalformedRowError{Line: lineNo, Got: len(fields), Want: len(headers)}
			if !opt.SkipMalformed {
				return nil, rowErr
			}
			if opt.Logger != nil {
				opt.Logger.Warn("skipping malformed csv row", "line", lineNo, "fields", len(fields), "expected", len(headers))
			}
			continue
		}

		if opt.TrimSpace {
			for j := range fields {
				fields[j] = strings.TrimSpace(fields[j])
			}
		}
		records = append(records, fields)
	}

	if headers == nil {
		if opt.HasHeader {
			return nil, &MalformedRowError{Line: 1, Reason: "missing header"}
		}
		headers = headerNames(nil, opt.ColumnNames)
	}

	return recordsToDataFrame(headers, records, opt)
}

// headerNames resolves column names from the header fields, an explicit
// override and generated column_N names for blanks.
func headerNames(fields []string, override []string) []string {
	if len(override) > 0 {
		return append([]string{}, override...)
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		name, _ := unquote(strings.TrimSpace(f))
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		names[i] = name
	}
	return names
}

// recordsToDataFrame transposes rows into columns and builds them.
func recordsToDataFrame(headers []string, records [][]string, opt CSVReadOptions) (*DataFrame, error) {
	type built struct {
		col *Column
		err error
	}

	results := ParallelMap(len(headers), len(records), func(j int) built {
		fields := make([]string, len(records))
		for i, record := range records {
			fields[i] = record[j]
		}

		var col *Column
		if opt.InferTypes {
			col = NewColumnFromStrings(headers[j], fields, opt.NullValues)
		} else {
			col = textColumn(headers[j], fields, opt.NullValues)
		}

		if dtype, ok := opt.ColumnTypes[headers[j]]; ok && dtype != col.DType() {
			cast, err := col.Cast(dtype)
			if err != nil {
				return built{err: err}
			}
			col = cast
		}
		return built{col: col}
	})

	df := emptyDataFrame()
	for j, b := range results {
		if b.err != nil {
			return nil, fmt.Errorf("failed to build column '%s': %w", headers[j], b.err)
		}
		if err := df.appendColumn(b.col); err != nil {
			return nil, err
		}
	}
	df.index = NewRangeIndex(len(records))
	return df, nil
}

// textColumn keeps every field as text, only honoring null markers.
func textColumn(name string, fields []string, nullValues []string) *Column {
	cells := make([]cell, len(fields))
	for i, f := range fields {
		if isNull(strings.TrimSpace(f), nullValues) {
			cells[i] = cell{v: NullValue()}
			continue
		}
		text, _ := unquote(f)
		cells[i] = cell{v: Str(text), text: text}
	}
	return buildColumn(name, String, cells)
}

// CSVWriteOptions configures CSV writing behavior
type CSVWriteOptions struct {
	Delimiter   rune   // Field delimiter (default ',')
	WriteHeader bool   // Write header row (default true)
	NullString  string // String to write for null values (default "")
	QuoteText   bool   // Quote every String cell so it reads back as text (default true)
}

// DefaultCSVWriteOptions returns default CSV writing options
func DefaultCSVWriteOptions() CSVWriteOptions {
	return CSVWriteOptions{
		Delimiter:   ',',
		WriteHeader: true,
		NullString:  "",
		QuoteText:   true,
	}
}

// WriteCSV writes a DataFrame to a CSV file
func (df *DataFrame) WriteCSV(path string, opts ...CSVWriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := df.WriteCSVToWriter(f, opts...); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSVToWriter writes a DataFrame to an io.Writer
func (df *DataFrame) WriteCSVToWriter(w io.Writer, opts ...CSVWriteOptions) error {
	opt := DefaultCSVWriteOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Delimiter == 0 {
		opt.Delimiter = ','
	}

	bw := bufio.NewWriter(w)
	row := make([]string, df.Width())
	sep := string(opt.Delimiter)

	if opt.WriteHeader {
		for j, name := range df.Columns() {
			row[j] = quoteField(name, opt.Delimiter, false)
		}
		if _, err := bw.WriteString(strings.Join(row, sep) + "\n"); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i := 0; i < df.Height(); i++ {
		for j, col := range df.columns {
			v := col.at(i)
			switch {
			case v.IsNull():
				row[j] = opt.NullString
			case v.Kind() == String:
				s, _ := v.Text()
				row[j] = quoteField(s, opt.Delimiter, opt.QuoteText)
			default:
				row[j] = v.format("", -1)
			}
		}
		if _, err := bw.WriteString(strings.Join(row, sep) + "\n"); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return bw.Flush()
}
