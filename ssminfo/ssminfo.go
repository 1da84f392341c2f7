// ec2search/ssminfo
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package ssminfo adds Systems Manager agent details to matched instances.
package ssminfo

import (
    "context"
    "fmt"

    "github.com/aws/aws-sdk-go-v2/aws"
    "github.com/aws/aws-sdk-go-v2/service/ssm"
    "github.com/aws/aws-sdk-go-v2/service/ssm/types"

    "github.com/hshimamoto/ec2search/match"
)

const (
    AttrPingStatus   = "ssm_ping_status"
    AttrPlatformName = "ssm_platform_name"
    AttrAgentVersion = "ssm_agent_version"
)

// the InstanceIds filter accepts at most 50 values
const batchSize = 50

func attrs(info types.InstanceInformation) map[string]string {
    return map[string]string{
	AttrPingStatus:   string(info.PingStatus),
	AttrPlatformName: aws.ToString(info.PlatformName),
	AttrAgentVersion: aws.ToString(info.AgentVersion),
    }
}

// Lookup returns SSM attributes keyed by instance id.
// Instances not managed by SSM are absent from the result.
func Lookup(ctx context.Context, client ssm.DescribeInstanceInformationAPIClient, ids []string) (map[string]map[string]string, error) {
    found := map[string]map[string]string{}
    for start := 0; start < len(ids); start += batchSize {
	end := start + batchSize
	if end > len(ids) {
	    end = len(ids)
	}
	input := &ssm.DescribeInstanceInformationInput{
	    Filters: []types.InstanceInformationStringFilter{
		{
		    Key:    aws.String("InstanceIds"),
		    Values: ids[start:end],
		},
	    },
	}
	pages := ssm.NewDescribeInstanceInformationPaginator(client, input)
	for pages.HasMorePages() {
	    res, err := pages.NextPage(ctx)
	    if err != nil {
		return nil, fmt.Errorf("DescribeInstanceInformation: %w", err)
	    }
	    for _, info := range res.InstanceInformationList {
		id := aws.ToString(info.InstanceId)
		if id == "" {
		    continue
		}
		found[id] = attrs(info)
	    }
	}
    }
    return found, nil
}

// Enrich returns copies of records carrying SSM attributes where known.
func Enrich(ctx context.Context, client ssm.DescribeInstanceInformationAPIClient, records []match.MatchedRecord) ([]match.MatchedRecord, error) {
    ids := []string{}
    seen := map[string]bool{}
    for _, r := range records {
	if seen[r.InstanceID] {
	    continue
	}
	seen[r.InstanceID] = true
	ids = append(ids, r.InstanceID)
    }
    found, err := Lookup(ctx, client, ids)
    if err != nil {
	return nil, err
    }
    out := make([]match.MatchedRecord, 0, len(records))
    for _, r := range records {
	if extra, ok := found[r.InstanceID]; ok {
	    r = r.With(extra)
	}
	out = append(out, r)
    }
    return out, nil
}
