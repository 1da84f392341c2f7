// ec2search/report
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package report turns matched instances into a CSV table.
package report

import (
    "encoding/csv"
    "errors"
    "fmt"
    "io"
    "sort"

    "github.com/hshimamoto/ec2search/match"
)

const (
    ColInstanceID  = "search_instance_id"
    ColPublicIPv4  = "search_public_ipv4"
    ColPrivateIPv4 = "search_private_ipv4"
    ColName        = "Name"
)

// FixedColumns always lead the header in this order.
var FixedColumns = []string{ColInstanceID, ColPublicIPv4, ColPrivateIPv4, ColName}

// IsReserved reports whether key is filled from the instance identity
// instead of from its attributes.
func IsReserved(key string) bool {
    switch key {
    case ColInstanceID, ColPublicIPv4, ColPrivateIPv4:
	return true
    }
    return false
}

func isFixed(key string) bool {
    return IsReserved(key) || key == ColName
}

type Report struct {
    Columns []string
    Rows    [][]string
}

// Columns returns the fixed columns followed by every other attribute key
// of records in lexical order.
func Columns(records []match.MatchedRecord) []string {
    seen := map[string]bool{}
    extra := []string{}
    for _, rec := range records {
	for k := range rec.Attrs {
	    if isFixed(k) || seen[k] {
		continue
	    }
	    seen[k] = true
	    extra = append(extra, k)
	}
    }
    sort.Strings(extra)
    cols := make([]string, 0, len(FixedColumns)+len(extra))
    cols = append(cols, FixedColumns...)
    return append(cols, extra...)
}

// value of column col for rec; the identity fields win over same-named tags
func value(rec match.MatchedRecord, col string) string {
    switch col {
    case ColInstanceID:
	return rec.InstanceID
    case ColPublicIPv4:
	return rec.PublicIPv4
    case ColPrivateIPv4:
	return rec.PrivateIPv4
    }
    return rec.Attrs[col]
}

// Build lays out one row per record, keeping record order.
func Build(records []match.MatchedRecord) Report {
    cols := Columns(records)
    rows := make([][]string, 0, len(records))
    for _, rec := range records {
	row := make([]string, len(cols))
	for i, col := range cols {
	    row[i] = value(rec, col)
	}
	rows = append(rows, row)
    }
    return Report{Columns: cols, Rows: rows}
}

// Write emits the header and all rows as CSV.
func Write(w io.Writer, r Report) error {
    cw := csv.NewWriter(w)
    cw.UseCRLF = true
    if err := cw.Write(r.Columns); err != nil {
	return fmt.Errorf("write header: %w", err)
    }
    if err := cw.WriteAll(r.Rows); err != nil {
	return fmt.Errorf("write rows: %w", err)
    }
    return nil
}

var ErrNoHeader = errors.New("report has no header")

// Parse reads a report written by Write.
func Parse(rd io.Reader) (Report, error) {
    all, err := csv.NewReader(rd).ReadAll()
    if err != nil {
	return Report{}, fmt.Errorf("parse report: %w", err)
    }
    if len(all) == 0 {
	return Report{}, ErrNoHeader
    }
    return Report{Columns: all[0], Rows: all[1:]}, nil
}

// Cell returns the value of column col in row i.
func (r Report) Cell(i int, col string) (string, bool) {
    if i < 0 || i >= len(r.Rows) {
	return "", false
    }
    for c, name := range r.Columns {
	if name == col && c < len(r.Rows[i]) {
	    return r.Rows[i][c], true
	}
    }
    return "", false
}

// Identity returns instance id, private and public IPv4 of row i.
func (r Report) Identity(i int) (id, private, public string) {
    id, _ = r.Cell(i, ColInstanceID)
    private, _ = r.Cell(i, ColPrivateIPv4)
    public, _ = r.Cell(i, ColPublicIPv4)
    return
}
