// ec2search/match
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package match resolves search tokens against the instance index.
package match

import (
    "github.com/hshimamoto/ec2search/input"
    "github.com/hshimamoto/ec2search/inventory"
)

// Resolver is satisfied by *inventory.Index.
type Resolver interface {
    LookupByID(id string) (inventory.Record, bool)
    LookupByPrivateIP(ip string) (inventory.Record, bool)
    LookupByPublicIP(ip string) (inventory.Record, bool)
}

// MatchedRecord is one report row.
// The identity fields always come from the resolved instance, Attrs holds
// its tags and any extra attributes.
type MatchedRecord struct {
    InstanceID  string
    PrivateIPv4 string
    PublicIPv4  string
    Attrs       map[string]string
}

func newMatched(r inventory.Record) MatchedRecord {
    attrs := make(map[string]string, len(r.Tags))
    for k, v := range r.Tags {
	attrs[k] = v
    }
    return MatchedRecord{
	InstanceID:  r.InstanceID,
	PrivateIPv4: r.PrivateIPv4,
	PublicIPv4:  r.PublicIPv4,
	Attrs:       attrs,
    }
}

// With returns a copy of m with extra merged into Attrs.
// Keys m already has, like real tags, are kept.
func (m MatchedRecord) With(extra map[string]string) MatchedRecord {
    attrs := make(map[string]string, len(m.Attrs)+len(extra))
    for k, v := range m.Attrs {
	attrs[k] = v
    }
    for k, v := range extra {
	if _, ok := attrs[k]; ok {
	    continue
	}
	attrs[k] = v
    }
    m.Attrs = attrs
    return m
}

// Summary counts what happened to the tokens.
type Summary struct {
    IDTokens  int
    IPTokens  int
    IDMatches int
    IPMatches int
}

func (s Summary) Tokens() int {
    return s.IDTokens + s.IPTokens
}

func (s Summary) Matches() int {
    return s.IDMatches + s.IPMatches
}

// Match resolves id tokens first, then IP tokens (private before public).
// Unresolved tokens are skipped, matches are not deduplicated.
func Match(tokens input.Tokens, res Resolver) []MatchedRecord {
    out, _ := MatchWithSummary(tokens, res)
    return out
}

func MatchWithSummary(tokens input.Tokens, res Resolver) ([]MatchedRecord, Summary) {
    sum := Summary{IDTokens: len(tokens.IDs), IPTokens: len(tokens.IPs)}
    out := []MatchedRecord{}
    for _, id := range tokens.IDs {
	if r, ok := res.LookupByID(id); ok {
	    out = append(out, newMatched(r))
	    sum.IDMatches++
	}
    }
    for _, ip := range tokens.IPs {
	r, ok := res.LookupByPrivateIP(ip)
	if !ok {
	    r, ok = res.LookupByPublicIP(ip)
	}
	if ok {
	    out = append(out, newMatched(r))
	    sum.IPMatches++
	}
    }
    return out, sum
}
