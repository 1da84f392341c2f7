// ec2search/ssminfo
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

package ssminfo

import (
    "context"
    "errors"
    "fmt"
    "testing"

    "github.com/aws/aws-sdk-go-v2/aws"
    "github.com/aws/aws-sdk-go-v2/service/ssm"
    "github.com/aws/aws-sdk-go-v2/service/ssm/types"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/hshimamoto/ec2search/match"
)

// fakeSSM answers with the known instances named in the InstanceIds filter.
type fakeSSM struct {
    known map[string]types.InstanceInformation
    err   error
    calls int
}

func (f *fakeSSM) DescribeInstanceInformation(ctx context.Context, params *ssm.DescribeInstanceInformationInput, optFns ...func(*ssm.Options)) (*ssm.DescribeInstanceInformationOutput, error) {
    f.calls++
    if f.err != nil {
	return nil, f.err
    }
    out := &ssm.DescribeInstanceInformationOutput{}
    for _, filter := range params.Filters {
	if aws.ToString(filter.Key) != "InstanceIds" {
	    continue
	}
	if len(filter.Values) > batchSize {
	    return nil, fmt.Errorf("too many ids: %d", len(filter.Values))
	}
	for _, id := range filter.Values {
	    if info, ok := f.known[id]; ok {
		out.InstanceInformationList = append(out.InstanceInformationList, info)
	    }
	}
    }
    return out, nil
}

func info(id string) types.InstanceInformation {
    return types.InstanceInformation{
	InstanceId:   aws.String(id),
	PingStatus:   types.PingStatusOnline,
	PlatformName: aws.String("Amazon Linux"),
	AgentVersion: aws.String("3.2.582.0"),
    }
}

func TestEnrich(t *testing.T) {
    client := &fakeSSM{known: map[string]types.InstanceInformation{"i-1": info("i-1")}}
    recs := []match.MatchedRecord{
	{InstanceID: "i-1", Attrs: map[string]string{"Name": "web"}},
	{InstanceID: "i-2", Attrs: map[string]string{"Name": "db"}},
	{InstanceID: "i-1", Attrs: map[string]string{"Name": "web"}},
    }

    out, err := Enrich(context.Background(), client, recs)

    require.NoError(t, err)
    require.Len(t, out, 3)
    assert.Equal(t, "Online", out[0].Attrs[AttrPingStatus])
    assert.Equal(t, "Amazon Linux", out[0].Attrs[AttrPlatformName])
    assert.Equal(t, "3.2.582.0", out[2].Attrs[AttrAgentVersion])
    assert.NotContains(t, out[1].Attrs, AttrPingStatus)
    assert.NotContains(t, recs[0].Attrs, AttrPingStatus)
    assert.Equal(t, 1, client.calls)
}

func TestEnrich_TagWins(t *testing.T) {
    client := &fakeSSM{known: map[string]types.InstanceInformation{"i-1": info("i-1")}}
    recs := []match.MatchedRecord{
	{InstanceID: "i-1", Attrs: map[string]string{AttrPingStatus: "pinned"}},
    }

    out, err := Enrich(context.Background(), client, recs)

    require.NoError(t, err)
    assert.Equal(t, "pinned", out[0].Attrs[AttrPingStatus])
    assert.Equal(t, "Amazon Linux", out[0].Attrs[AttrPlatformName])
}

func TestLookup_Batches(t *testing.T) {
    client := &fakeSSM{known: map[string]types.InstanceInformation{}}
    ids := []string{}
    for i := 0; i < 120; i++ {
	id := fmt.Sprintf("i-%03d", i)
	ids = append(ids, id)
	client.known[id] = info(id)
    }

    found, err := Lookup(context.Background(), client, ids)

    require.NoError(t, err)
    assert.Len(t, found, 120)
    assert.Equal(t, 3, client.calls)
}

func TestLookup_NoIDs(t *testing.T) {
    client := &fakeSSM{}

    found, err := Lookup(context.Background(), client, nil)

    require.NoError(t, err)
    assert.Empty(t, found)
    assert.Equal(t, 0, client.calls)
}

func TestEnrich_Error(t *testing.T) {
    client := &fakeSSM{err: errors.New("AccessDeniedException")}

    _, err := Enrich(context.Background(), client, []match.MatchedRecord{{InstanceID: "i-1"}})

    require.Error(t, err)
    assert.Contains(t, err.Error(), "DescribeInstanceInformation")
}
