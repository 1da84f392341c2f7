// ec2search/search
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package search runs the whole pipeline: fetch the inventory, match the
// tokens and lay out the report.
package search

import (
    "bytes"
    "context"
    "fmt"

    "github.com/aws/aws-sdk-go-v2/service/ec2"
    "github.com/aws/aws-sdk-go-v2/service/ssm"
    "github.com/sirupsen/logrus"

    "github.com/hshimamoto/ec2search/input"
    "github.com/hshimamoto/ec2search/inventory"
    "github.com/hshimamoto/ec2search/match"
    "github.com/hshimamoto/ec2search/report"
    "github.com/hshimamoto/ec2search/ssminfo"
)

// Clients used by Run. SSM may be nil when enrichment is off.
type Clients struct {
    EC2 ec2.DescribeInstancesAPIClient
    SSM ssm.DescribeInstanceInformationAPIClient
}

type Options struct {
    States []string
    SSM    bool
}

// Run builds the report for tokens.
func Run(ctx context.Context, tokens input.Tokens, c Clients, opt Options, log logrus.FieldLogger) (report.Report, error) {
    log.Info("retrieving ec2 info...")
    records, err := inventory.Fetch(ctx, c.EC2, opt.States...)
    if err != nil {
	return report.Report{}, err
    }
    log.Info("processing...")
    idx, err := inventory.Build(records)
    if err != nil {
	return report.Report{}, err
    }
    matched, sum := match.MatchWithSummary(tokens, idx)
    log.WithFields(logrus.Fields{
	"instances": idx.Len(),
	"tokens":    sum.Tokens(),
	"matches":   sum.Matches(),
    }).Debug("matched")
    if opt.SSM {
	if c.SSM == nil {
	    return report.Report{}, fmt.Errorf("ssm enrichment requested without client")
	}
	matched, err = ssminfo.Enrich(ctx, c.SSM, matched)
	if err != nil {
	    return report.Report{}, err
	}
    }
    return report.Build(matched), nil
}

// Render returns the CSV bytes of r.
func Render(r report.Report) ([]byte, error) {
    var buf bytes.Buffer
    if err := report.Write(&buf, r); err != nil {
	return nil, err
    }
    return buf.Bytes(), nil
}
