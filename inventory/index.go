// ec2search/inventory
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

package inventory

import (
    "errors"
    "fmt"
)

var ErrMissingInstanceID = errors.New("instance without id")

// Index is built once and never modified.
// records own the data, the maps hold positions into records.
type Index struct {
    records   []Record
    byID      map[string]int
    byPrivate map[string]int
    byPublic  map[string]int
}

// Build indexes records. When two instances share an IP the later one wins.
func Build(records []Record) (*Index, error) {
    idx := &Index{
	records:   make([]Record, 0, len(records)),
	byID:      make(map[string]int, len(records)),
	byPrivate: make(map[string]int, len(records)),
	byPublic:  make(map[string]int),
    }
    for i, r := range records {
	if r.InstanceID == "" {
	    return nil, fmt.Errorf("record %d: %w", i, ErrMissingInstanceID)
	}
	tags := make(map[string]string, len(r.Tags))
	for k, v := range r.Tags {
	    tags[k] = v
	}
	r.Tags = tags
	h := len(idx.records)
	idx.records = append(idx.records, r)
	idx.byID[r.InstanceID] = h
	if r.HasPrivateIPv4() {
	    idx.byPrivate[r.PrivateIPv4] = h
	}
	if r.HasPublicIPv4() {
	    idx.byPublic[r.PublicIPv4] = h
	}
    }
    return idx, nil
}

// Len returns the number of indexed instances.
func (idx *Index) Len() int {
    return len(idx.records)
}

func (idx *Index) lookup(m map[string]int, key string) (Record, bool) {
    h, ok := m[key]
    if !ok {
	return Record{}, false
    }
    return idx.records[h], true
}

func (idx *Index) LookupByID(id string) (Record, bool) {
    return idx.lookup(idx.byID, id)
}

func (idx *Index) LookupByPrivateIP(ip string) (Record, bool) {
    return idx.lookup(idx.byPrivate, ip)
}

func (idx *Index) LookupByPublicIP(ip string) (Record, bool) {
    return idx.lookup(idx.byPublic, ip)
}
