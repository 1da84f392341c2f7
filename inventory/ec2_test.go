// ec2search/inventory
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

package inventory

import (
    "context"
    "errors"
    "testing"

    "github.com/aws/aws-sdk-go-v2/aws"
    "github.com/aws/aws-sdk-go-v2/service/ec2"
    "github.com/aws/aws-sdk-go-v2/service/ec2/types"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

// fakeEC2 serves pages keyed by NextToken, "" being the first page.
type fakeEC2 struct {
    pages  map[string]*ec2.DescribeInstancesOutput
    err    error
    inputs []*ec2.DescribeInstancesInput
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
    f.inputs = append(f.inputs, params)
    if f.err != nil {
	return nil, f.err
    }
    page, ok := f.pages[aws.ToString(params.NextToken)]
    if !ok {
	return &ec2.DescribeInstancesOutput{}, nil
    }
    return page, nil
}

func instance(id, private, public string, tags ...string) types.Instance {
    i := types.Instance{InstanceId: aws.String(id)}
    if private != "" {
	i.PrivateIpAddress = aws.String(private)
    }
    if public != "" {
	i.PublicIpAddress = aws.String(public)
    }
    for n := 0; n+1 < len(tags); n += 2 {
	i.Tags = append(i.Tags, types.Tag{Key: aws.String(tags[n]), Value: aws.String(tags[n+1])})
    }
    return i
}

func TestFromEC2(t *testing.T) {
    r, err := FromEC2(instance("i-1", "10.0.0.1", "54.1.1.1", "Name", "web", "env", "prod"))

    require.NoError(t, err)
    assert.Equal(t, "i-1", r.InstanceID)
    assert.Equal(t, "10.0.0.1", r.PrivateIPv4)
    assert.Equal(t, "54.1.1.1", r.PublicIPv4)
    assert.Equal(t, map[string]string{"Name": "web", "env": "prod"}, r.Tags)
}

func TestFromEC2_NoAddressesNoTags(t *testing.T) {
    r, err := FromEC2(instance("i-2", "", ""))

    require.NoError(t, err)
    assert.False(t, r.HasPrivateIPv4())
    assert.False(t, r.HasPublicIPv4())
    assert.Empty(t, r.Tags)
}

func TestFromEC2_NilTagFields(t *testing.T) {
    i := instance("i-3", "10.0.0.3", "")
    i.Tags = []types.Tag{{Key: nil, Value: aws.String("x")}, {Key: aws.String("empty"), Value: nil}}

    r, err := FromEC2(i)

    require.NoError(t, err)
    assert.Equal(t, map[string]string{"empty": ""}, r.Tags)
}

func TestFromEC2_MissingID(t *testing.T) {
    _, err := FromEC2(types.Instance{PrivateIpAddress: aws.String("10.0.0.1")})

    assert.ErrorIs(t, err, ErrMissingInstanceID)
}

func TestFetch_WalksAllPages(t *testing.T) {
    client := &fakeEC2{pages: map[string]*ec2.DescribeInstancesOutput{
	"": {
	    Reservations: []types.Reservation{
		{Instances: []types.Instance{instance("i-1", "10.0.0.1", "54.1.1.1")}},
		{Instances: []types.Instance{instance("i-2", "10.0.0.2", "")}},
	    },
	    NextToken: aws.String("page2"),
	},
	"page2": {
	    Reservations: []types.Reservation{
		{Instances: []types.Instance{instance("i-3", "10.0.0.3", "", "Name", "db")}},
	    },
	},
    }}

    recs, err := Fetch(context.Background(), client)

    require.NoError(t, err)
    require.Len(t, recs, 3)
    assert.Equal(t, "i-1", recs[0].InstanceID)
    assert.Equal(t, "i-3", recs[2].InstanceID)
    assert.Equal(t, "db", recs[2].Tags["Name"])
    require.Len(t, client.inputs, 2)
    assert.Empty(t, client.inputs[0].Filters)
}

func TestFetch_StateFilter(t *testing.T) {
    client := &fakeEC2{}

    _, err := Fetch(context.Background(), client, "running", "stopped")

    require.NoError(t, err)
    require.Len(t, client.inputs, 1)
    require.Len(t, client.inputs[0].Filters, 1)
    assert.Equal(t, "instance-state-name", aws.ToString(client.inputs[0].Filters[0].Name))
    assert.Equal(t, []string{"running", "stopped"}, client.inputs[0].Filters[0].Values)
}

func TestFetch_Error(t *testing.T) {
    client := &fakeEC2{err: errors.New("UnauthorizedOperation")}

    _, err := Fetch(context.Background(), client)

    require.Error(t, err)
    assert.Contains(t, err.Error(), "DescribeInstances")
    assert.Contains(t, err.Error(), "UnauthorizedOperation")
}

func TestFetch_MalformedInstance(t *testing.T) {
    client := &fakeEC2{pages: map[string]*ec2.DescribeInstancesOutput{
	"": {Reservations: []types.Reservation{{
	    ReservationId: aws.String("r-1"),
	    Instances:     []types.Instance{{}},
	}}},
    }}

    _, err := Fetch(context.Background(), client)

    assert.ErrorIs(t, err, ErrMissingInstanceID)
}
