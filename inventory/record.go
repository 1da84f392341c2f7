// ec2search/inventory
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package inventory holds the EC2 instances of one region and looks them up
// by instance id, private IPv4 or public IPv4.
package inventory

// Record is the normalized view of one instance.
// An empty PrivateIPv4 or PublicIPv4 means the instance has no such address.
type Record struct {
    InstanceID  string
    PrivateIPv4 string
    PublicIPv4  string
    Tags        map[string]string
}

func (r Record) HasPrivateIPv4() bool {
    return r.PrivateIPv4 != ""
}

func (r Record) HasPublicIPv4() bool {
    return r.PublicIPv4 != ""
}
