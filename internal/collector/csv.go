package collector

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"ChipSentinel/internal/model"
)

// CSVFetcher implements Fetcher over local daily-bar exports such as those
// written by Chinese brokerage terminals. Path may contain "{symbol}".
type CSVFetcher struct {
	Path     string
	Encoding string // "utf-8" (default) or "gbk"
}

// NewCSVFetcher creates a new CSV file fetcher.
func NewCSVFetcher(path, encoding string) *CSVFetcher {
	return &CSVFetcher{Path: path, Encoding: encoding}
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchDailyBars(symbol string, days int) ([]model.Bar, error) {
	path := strings.ReplaceAll(f.Path, "{symbol}", symbol)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	bars, err := ParseCSV(file, f.Encoding)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// column aliases, English and Chinese headers.
var csvColumns = map[string][]string{
	"date":     {"date", "日期", "交易日期", "时间"},
	"open":     {"open", "开盘", "开盘价"},
	"high":     {"high", "最高", "最高价"},
	"low":      {"low", "最低", "最低价"},
	"close":    {"close", "收盘", "收盘价"},
	"volume":   {"volume", "vol", "成交量"},
	"turnover": {"turnover", "turnover_rate", "换手率", "换手率%", "换手"},
}

var requiredColumns = []string{"date", "open", "high", "low", "close", "turnover"}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "20060102", "2006-01-02 15:04:05"}

// ParseCSV reads daily bars from r. Lines before the header row and rows
// whose date does not parse (titles, footers) are skipped.
func ParseCSV(r io.Reader, encoding string) ([]model.Bar, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "gbk", "gb18030":
		r = transform.NewReader(r, simplifiedchinese.GB18030.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	header, body, err := splitHeader(data)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = headerDelimiter(header)
	reader.TrimLeadingSpace = reader.Comma == ','

	cols, err := mapColumns(header, reader.Comma)
	if err != nil {
		return nil, err
	}

	var bars []model.Bar
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		bar, ok := parseRow(rec, cols)
		if !ok {
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars found")
	}
	sortBars(bars)
	return bars, nil
}

// splitHeader finds the first delimited line naming a date column and
// returns it with the bytes that follow it.
func splitHeader(data []byte) (string, []byte, error) {
	rest := data
	for len(rest) > 0 {
		line, next := rest, rest[len(rest):]
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, next = rest[:i], rest[i+1:]
		}
		header := strings.TrimRight(string(line), "\r")
		if isHeader(header) {
			return header, next, nil
		}
		rest = next
	}
	return "", nil, fmt.Errorf("no header row with a date column")
}

// isHeader reports whether one of the delimited fields of line is a date
// column name. Fields are compared whole, so a title such as "updated,..."
// is not taken for the header.
func isHeader(line string) bool {
	if !strings.ContainsAny(line, ",\t") {
		return false
	}
	for _, field := range strings.Split(line, string(headerDelimiter(line))) {
		if matchesAlias(columnName(field), csvColumns["date"]) {
			return true
		}
	}
	return false
}

// headerDelimiter picks tab for terminal exports and comma otherwise.
func headerDelimiter(header string) rune {
	if strings.Contains(header, "\t") {
		return '\t'
	}
	return ','
}

func columnName(field string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(field), `"`))
}

func matchesAlias(name string, aliases []string) bool {
	for _, alias := range aliases {
		if name == alias || strings.TrimSuffix(name, "(%)") == alias {
			return true
		}
	}
	return false
}

func mapColumns(header string, comma rune) (map[string]int, error) {
	fields := strings.Split(header, string(comma))
	cols := make(map[string]int)
	for i, field := range fields {
		name := columnName(field)
		for key, aliases := range csvColumns {
			if _, seen := cols[key]; seen {
				continue
			}
			if matchesAlias(name, aliases) {
				cols[key] = i
			}
		}
	}
	for _, key := range requiredColumns {
		if _, ok := cols[key]; !ok {
			return nil, fmt.Errorf("missing %s column in header %q", key, header)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (model.Bar, bool) {
	get := func(key string) (string, bool) {
		i, ok := cols[key]
		if !ok || i >= len(rec) {
			return "", false
		}
		return strings.TrimSpace(rec[i]), true
	}

	raw, ok := get("date")
	if !ok {
		return model.Bar{}, false
	}
	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		if date, err = time.Parse(layout, raw); err == nil {
			break
		}
	}
	if err != nil {
		return model.Bar{}, false
	}

	bar := model.Bar{Date: date}
	fields := []struct {
		key string
		dst *float64
	}{
		{"open", &bar.Open}, {"high", &bar.High}, {"low", &bar.Low},
		{"close", &bar.Close}, {"volume", &bar.Volume}, {"turnover", &bar.Turnover},
	}
	for _, fld := range fields {
		s, ok := get(fld.key)
		if !ok {
			continue
		}
		s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%")
		if s == "" || s == "-" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Bar{}, false
		}
		*fld.dst = v
	}
	return bar, true
}
