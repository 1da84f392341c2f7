// ec2search/input
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package input reads the search list, one instance id or IPv4 address per line.
package input

import (
    "bufio"
    "fmt"
    "io"
    "net/netip"
    "os"
    "strings"
)

// Tokens keeps both kinds of search tokens in file order.
type Tokens struct {
    IPs []string
    IDs []string
}

// Len returns the number of tokens of both kinds.
func (t Tokens) Len() int {
    return len(t.IPs) + len(t.IDs)
}

// IsIPv4 reports whether s is a dotted-quad IPv4 address.
// leading zeros are rejected
func IsIPv4(s string) bool {
    addr, err := netip.ParseAddr(s)
    if err != nil {
	return false
    }
    return addr.Is4()
}

// Classify splits lines into IP tokens and id tokens.
// Blank lines are dropped, duplicates are kept.
func Classify(lines []string) Tokens {
    t := Tokens{}
    for _, line := range lines {
	tok := strings.TrimSpace(line)
	if tok == "" {
	    continue
	}
	if IsIPv4(tok) {
	    t.IPs = append(t.IPs, tok)
	} else {
	    t.IDs = append(t.IDs, tok)
	}
    }
    return t
}

// Read classifies every line of r.
func Read(r io.Reader) (Tokens, error) {
    lines := []string{}
    scanner := bufio.NewScanner(r)
    for scanner.Scan() {
	lines = append(lines, scanner.Text())
    }
    if err := scanner.Err(); err != nil {
	return Tokens{}, err
    }
    return Classify(lines), nil
}

// ReadFile opens path and classifies its lines.
func ReadFile(path string) (Tokens, error) {
    f, err := os.Open(path)
    if err != nil {
	return Tokens{}, fmt.Errorf("open input: %w", err)
    }
    defer f.Close()
    t, err := Read(f)
    if err != nil {
	return Tokens{}, fmt.Errorf("read input %s: %w", path, err)
    }
    return t, nil
}
