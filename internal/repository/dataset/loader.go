// Package dataset loads the furniture catalog from its CSV export and
// normalizes rows into domain products. Malformed rows are logged and
// skipped; they never abort a load.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/furnidex/internal/domain/product"
)

// ctxCheckEvery bounds how many rows are read between cancellation checks.
const ctxCheckEvery = 1024

var imageURLPattern = regexp.MustCompile(`https?://[^\s'"]+`)

// Loader streams products out of a CSV file.
type Loader struct {
	path    string
	maxRows int // 0 means no limit
	logger  *zap.Logger
}

// NewLoader creates a loader for the dataset at path. maxRows caps the
// number of accepted products for development runs; 0 loads everything.
func NewLoader(path string, maxRows int, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, maxRows: maxRows, logger: logger}
}

// Load reads the whole file and returns cleaned products in row order.
//
// Duplicate identifiers keep the first occurrence; the id stays consumed
// even when that first row is later rejected, matching a
// dedup-then-clean pipeline.
func (l *Loader) Load(ctx context.Context) ([]product.Product, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled per field

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols["uniq_id"]; !ok {
		return nil, fmt.Errorf("dataset %s has no uniq_id column", l.path)
	}

	var (
		products  []product.Product
		seen      = make(map[string]struct{})
		rowNum    = 1 // header consumed
		duplicate int
		rejected  int
	)
	for {
		if rowNum%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rejected++
			l.logger.Warn("Skipping malformed dataset row",
				zap.Int("row", rowNum),
				zap.Error(err),
			)
			continue
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		id := strings.TrimSpace(field("uniq_id"))
		if id == "" {
			rejected++
			l.logger.Warn("Skipping dataset row without uniq_id", zap.Int("row", rowNum))
			continue
		}
		if _, dup := seen[id]; dup {
			duplicate++
			continue
		}
		seen[id] = struct{}{}

		p, err := cleanRow(id, field)
		if err != nil {
			rejected++
			l.logger.Debug("Skipping dataset row",
				zap.Int("row", rowNum),
				zap.String("uniq_id", id),
				zap.Error(err),
			)
			continue
		}
		products = append(products, p)

		if l.maxRows > 0 && len(products) >= l.maxRows {
			l.logger.Info("Dataset row cap reached", zap.Int("max_rows", l.maxRows))
			break
		}
	}

	if duplicate > 0 {
		l.logger.Info("Removed duplicate products", zap.Int("duplicates", duplicate))
	}
	if rejected > 0 {
		l.logger.Info("Rejected dataset rows", zap.Int("rejected", rejected))
	}
	l.logger.Info("Loaded unique products", zap.Int("count", len(products)))
	return products, nil
}

// cleanRow normalizes one CSV record into a product.
func cleanRow(id string, field func(string) string) (product.Product, error) {
	price, err := parsePrice(field("price"))
	if err != nil {
		return product.Product{}, err
	}

	rawCategories := field("categories")
	return product.New(product.Params{
		ID:           id,
		Title:        strings.TrimSpace(field("title")),
		Brand:        field("brand"),
		Description:  field("description"),
		CategoryText: rawCategories,
		Categories:   ParseCategories(rawCategories),
		Material:     field("material"),
		Color:        field("color"),
		Price:        price,
		Images:       ExtractImages(field("images")),
	})
}

// parsePrice strips currency formatting ("$1,299.99") and parses the
// remainder. Unparsable prices reject the row.
func parsePrice(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("price is empty")
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return price, nil
}

// ParseCategories turns the dataset's bracketed category cell, e.g.
// ["Furniture", "Kitchen & Dining", "Tables"], into a cleaned list.
// Empty segments are dropped before the cut, so a stray comma cannot eat
// one of the kept slots.
func ParseCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	cleaned := strings.NewReplacer("[", "", "]", "", "'", "", `"`, "").Replace(raw)
	var out []string
	for _, part := range strings.Split(cleaned, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == product.MaxCategories {
			break
		}
	}
	return out
}

// ExtractImages pulls image URLs out of the dataset's images cell. The
// cell is either a bracketed list of quoted URLs or a single bare URL.
func ExtractImages(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		matches := imageURLPattern.FindAllString(raw, -1)
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			m = strings.TrimRight(strings.TrimSpace(m), ",")
			if m != "" {
				out = append(out, m)
			}
		}
		return out
	}
	if strings.HasPrefix(raw, "http") {
		return []string{raw}
	}
	return nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return cols
}
