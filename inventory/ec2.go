// ec2search/inventory
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

package inventory

import (
    "context"
    "fmt"

    "github.com/aws/aws-sdk-go-v2/aws"
    "github.com/aws/aws-sdk-go-v2/service/ec2"
    "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// FromEC2 converts an instance of a DescribeInstances response.
func FromEC2(i types.Instance) (Record, error) {
    id := aws.ToString(i.InstanceId)
    if id == "" {
	return Record{}, ErrMissingInstanceID
    }
    tags := map[string]string{}
    for _, tag := range i.Tags {
	if tag.Key == nil {
	    continue
	}
	tags[*tag.Key] = aws.ToString(tag.Value)
    }
    return Record{
	InstanceID:  id,
	PrivateIPv4: aws.ToString(i.PrivateIpAddress),
	PublicIPv4:  aws.ToString(i.PublicIpAddress),
	Tags:        tags,
    }, nil
}

// Fetch lists every instance visible to client.
// states limits the result to those instance-state-name values, none means all.
func Fetch(ctx context.Context, client ec2.DescribeInstancesAPIClient, states ...string) ([]Record, error) {
    input := &ec2.DescribeInstancesInput{}
    if len(states) > 0 {
	input.Filters = []types.Filter{
	    {
		Name:   aws.String("instance-state-name"),
		Values: states,
	    },
	}
    }
    records := []Record{}
    pages := ec2.NewDescribeInstancesPaginator(client, input)
    for pages.HasMorePages() {
	res, err := pages.NextPage(ctx)
	if err != nil {
	    return nil, fmt.Errorf("DescribeInstances: %w", err)
	}
	for _, r := range res.Reservations {
	    for _, i := range r.Instances {
		rec, err := FromEC2(i)
		if err != nil {
		    return nil, fmt.Errorf("reservation %s: %w", aws.ToString(r.ReservationId), err)
		}
		records = append(records, rec)
	    }
	}
    }
    return records, nil
}
