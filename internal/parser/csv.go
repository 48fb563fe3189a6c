package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/docpage/internal/doctree"
)

// CSVParser handles CSV files. The first row is the header; data rows are
// split into tables of batchSize rows, each under its own heading.
type CSVParser struct{}

const batchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	if len(records) == 0 {
		return newDocument(stem(filename), nil, nil), nil
	}

	headers := records[0]
	headRow := make([]*doctree.Node, 0, len(headers))
	for _, h := range headers {
		headRow = append(headRow, doctree.Element("th", nil, doctree.Text(h)))
	}

	var body []*doctree.Node
	dataRows := records[1:]
	for i := 0; i < len(dataRows); i += batchSize {
		end := min(i+batchSize, len(dataRows))

		rows := make([]*doctree.Node, 0, end-i)
		for _, row := range dataRows[i:end] {
			cells := make([]*doctree.Node, 0, len(row))
			for _, cell := range row {
				cells = append(cells, doctree.Element("td", nil, doctree.Text(cell)))
			}
			rows = append(rows, doctree.Element("tr", nil, cells...))
		}

		body = append(body,
			doctree.Element("h2", nil, doctree.Text(fmt.Sprintf("Rows %d-%d", i+2, end+1))), // 1-indexed, skip header
			doctree.Element("table", nil,
				doctree.Element("thead", nil, doctree.Element("tr", nil, headRow...)),
				doctree.Element("tbody", nil, rows...),
			),
		)
	}
	if len(dataRows) == 0 {
		body = append(body, doctree.Element("table", nil,
			doctree.Element("thead", nil, doctree.Element("tr", nil, headRow...))))
	}

	return newDocument(stem(filename), nil, body), nil
}
